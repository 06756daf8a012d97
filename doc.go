// Package zebin decodes compiled GPU kernel packages ("zebin") into kernel
// descriptors.
//
// A zebin is an ELF image whose .ze_info section holds YAML-like metadata
// describing every kernel: its execution environment, payload arguments,
// binding tables and memory needs. Decode accepts either the full ELF image
// or a bare .ze_info document.
//
// # Architecture Overview
//
//	zebin/             Entry point: Decode, DecodeContainer, DecodeZeInfo
//	├── elf/           ELF64 reader and image builder
//	├── container/     Section classification and IntelGT notes
//	├── yaml/          Tokenizer and node tree for the .ze_info notation
//	├── zeinfo/        Versioned schema decoder
//	├── kernel/        Decoded kernel and program descriptors
//	├── heap/          Surface and dynamic state heap generation
//	├── config/        HCL options file
//	├── dump/          Text, JSON, YAML and CBOR renderings
//	├── errors/        Structured errors, outcomes and warnings
//	└── cmd/zebininfo  Command line inspector
//
// # Quick Start
//
//	res, err := zebin.Decode(data, zebin.WithGRFSize(64))
//	for _, w := range res.Warnings.List() {
//	    log.Println("warning:", w)
//	}
//	if err != nil {
//	    log.Fatalf("%s: %v", res.Outcome, err)
//	}
//	for _, k := range res.Program.KernelInfos {
//	    fmt.Println(k.Name(), len(k.ISA))
//	}
//
// # Outcomes
//
// Every failure is classified: an incompatible schema version or target
// device is UnhandledBinary, anything else is InvalidBinary. Decoding is
// synchronous and keeps no shared state, so concurrent calls are safe.
package zebin
