package errors

import (
	stderrors "errors"

	"go.uber.org/multierr"
)

// Outcome is the verdict of a decode call.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidBinary
	OutcomeUnhandledBinary
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeInvalidBinary:
		return "InvalidBinary"
	case OutcomeUnhandledBinary:
		return "UnhandledBinary"
	}
	return "unknown"
}

// OutcomeOf classifies err. An incompatible schema version or target anywhere
// in the chain makes the binary unhandled, any other failure makes it invalid.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	if unhandled(err) {
		return OutcomeUnhandledBinary
	}
	return OutcomeInvalidBinary
}

func unhandled(err error) bool {
	for _, e := range multierr.Errors(err) {
		for e != nil {
			if de, ok := e.(*Error); ok && (de.Kind == KindUnsupportedVersion || de.Kind == KindTargetMismatch) {
				return true
			}
			next := stderrors.Unwrap(e)
			if len(multierr.Errors(next)) > 1 {
				if unhandled(next) {
					return true
				}
				break
			}
			e = next
		}
	}
	return false
}

// Reason renders err as a newline separated list, one line per combined error.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	errs := multierr.Errors(err)
	out := make([]byte, 0, 64*len(errs))
	for i, e := range errs {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, e.Error()...)
	}
	return string(out)
}
