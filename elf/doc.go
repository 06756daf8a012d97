// Package elf reads and writes the 64-bit little-endian ELF images that carry
// zebin programs.
//
// Only what a zebin needs is modelled: the file header, section headers with
// resolved names, symbol tables and REL/RELA tables. Program headers are
// parsed into the header counts but not decoded.
//
//	f, err := elf.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for _, s := range f.Sections {
//	    fmt.Println(s.Name, s.Header.Type, len(s.Data))
//	}
//
// Builder produces images for tests and tooling.
package elf
