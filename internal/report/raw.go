package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// RawFormat is the serialization used when the report is bypassed.
type RawFormat string

const (
	// RawJSON writes the document as indented JSON.
	RawJSON RawFormat = "json"
	// RawYAML writes the document as YAML.
	RawYAML RawFormat = "yaml"
)

// ParseRawFormat validates a raw output format name.
func ParseRawFormat(s string) (RawFormat, error) {
	switch RawFormat(s) {
	case RawJSON, RawYAML:
		return RawFormat(s), nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidOutputFormat, "%q", s)
	}
}

// RenderRaw returns doc unchanged. Raw output is the document itself.
func RenderRaw(doc *deploystatus.Document) *deploystatus.Document {
	return doc
}

// WriteRaw serializes doc to w with keys in document order. JSON output is
// the input re-indented, with no values changed.
func WriteRaw(w io.Writer, doc *deploystatus.Document, format RawFormat) error {
	switch format {
	case RawJSON:
		data, err := doc.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode deploy result as json: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indent deploy result: %w", err)
		}
		buf.WriteByte('\n')
		_, err = w.Write(buf.Bytes())
		return err
	case RawYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode deploy result as yaml: %w", err)
		}
		return enc.Close()
	default:
		return errors.Wrapf(errors.ErrInvalidOutputFormat, "%q", format)
	}
}
