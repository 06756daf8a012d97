// Package errors provides structured error types for the zebin decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the metadata path it relates to, the offending value and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidEnum).
//		Path("kernels", "my_kernel", "payload_arguments").
//		Value("arg_bogus").
//		Detail("unhandled %q arg_type", "arg_bogus").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Cardinality(errors.PhaseDecode, path, "kernels", "exactly", 1, 2)
//	err := errors.InvalidEnum(errors.PhaseDecode, path, "arg_bogus", "arg_type")
//
// Every error maps onto one of three decode outcomes (see OutcomeOf). Non-fatal
// diagnostics are collected separately in a Warnings value.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
