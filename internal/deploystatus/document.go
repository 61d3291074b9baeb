// Package deploystatus reads deploy status documents returned by the metadata
// deploy API and extracts the summary fields and component records the report
// is built from.
//
// A Document keeps the payload as an ordered yaml.Node tree, so JSON and YAML
// inputs are handled the same way and map keys stay in document order. Field
// lookup is by name anywhere in the tree rather than by exact path, which keeps
// the report working when the platform nests the result differently (sf CLI
// envelope, REST deployRequest envelope, raw checkDeployStatus result).
//
// Nothing in this package fails on a partial document: missing fields resolve
// to an absent Value and missing collections to an empty slice.
package deploystatus

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// Format identifies the encoding a Document was parsed from.
type Format string

const (
	// FormatJSON is a JSON payload (sf CLI --json, REST API).
	FormatJSON Format = "json"
	// FormatYAML is a YAML payload (saved reports, fixtures).
	FormatYAML Format = "yaml"
)

// Document is a read-only, order-preserving view of a deploy status payload.
type Document struct {
	root   *yaml.Node
	raw    []byte
	format Format
}

// Parse builds a Document from a JSON or YAML payload. The encoding is picked
// from the first non-blank byte: '{' or '[' means JSON, anything else YAML.
// Blank input yields an empty Document.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Document{format: FormatJSON}, nil
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		root, err := parseJSON(trimmed)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidDocument, "json: %v", err)
		}
		return &Document{root: root, raw: trimmed, format: FormatJSON}, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidDocument, "yaml: %v", err)
	}
	return &Document{root: contentOf(&node), raw: trimmed, format: FormatYAML}, nil
}

// Root returns the top-level content node, or nil for an empty document.
func (d *Document) Root() *yaml.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Format returns the encoding the document was read from.
func (d *Document) Format() Format {
	if d == nil || d.format == "" {
		return FormatJSON
	}
	return d.format
}

// IsEmpty reports whether the document holds no content at all.
func (d *Document) IsEmpty() bool {
	return d.Root() == nil
}

// MarshalJSON encodes the document as JSON with keys in document order.
// A document parsed from JSON is returned as read.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("{}"), nil
	}
	if d.format == FormatJSON && d.raw != nil {
		return d.raw, nil
	}
	var buf bytes.Buffer
	if err := encodeJSON(&buf, d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler by handing back the node tree.
func (d *Document) MarshalYAML() (any, error) {
	if d.IsEmpty() {
		return map[string]any{}, nil
	}
	return d.root, nil
}

// contentOf unwraps a DocumentNode to its single content node.
func contentOf(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}
