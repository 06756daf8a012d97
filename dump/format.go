package dump

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/zebin/errors"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat resolves a format name. The empty string is text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", errors.New(errors.PhaseDump, errors.KindInvalidInput).
		Value(s).
		Detail("unknown output format %q, expected one of %s", s, strings.Join(names, ", ")).
		Build()
}

// Write renders doc to w.
func Write(w io.Writer, doc *Document, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatText, "":
		return WriteText(w, doc)
	case FormatJSON:
		data, err = MarshalJSON(doc)
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	case FormatCBOR:
		data, err = MarshalCBOR(doc)
	default:
		_, err = ParseFormat(string(f))
		return err
	}
	if err != nil {
		return errors.Wrap(errors.PhaseDump, errors.KindInvalidData, err, fmt.Sprintf("encode %s", f))
	}
	_, err = w.Write(data)
	return err
}

//go:embed document.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

const schemaURL = "schema://zebin/document.json"

// Schema returns the compiled JSON schema of Document.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if schemaErr = c.AddResource(schemaURL, strings.NewReader(schemaJSON)); schemaErr != nil {
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// MarshalJSON encodes doc as indented JSON and validates the result against
// Schema.
func MarshalJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ValidateJSON checks an encoded document against Schema.
func ValidateJSON(data []byte) error {
	sch, err := Schema()
	if err != nil {
		return err
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := sch.Validate(v); err != nil {
		return errors.Wrap(errors.PhaseDump, errors.KindInvalidData, err, "document does not match schema")
	}
	return nil
}

// MarshalCBOR encodes doc with the canonical CBOR options, so equal
// documents encode to equal bytes.
func MarshalCBOR(doc *Document) ([]byte, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(doc)
}

// UnmarshalCBOR decodes a document written by MarshalCBOR.
func UnmarshalCBOR(data []byte) (*Document, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseDump, errors.KindInvalidData, err, "decode cbor document")
	}
	return &doc, nil
}
