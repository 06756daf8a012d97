// Package dump renders decode results as text, JSON, YAML or CBOR.
//
// New flattens a zebin.Result into a Document. JSON output is validated
// against an embedded JSON schema before it is written; CBOR output uses the
// canonical encoding so it can be compared byte for byte.
package dump
