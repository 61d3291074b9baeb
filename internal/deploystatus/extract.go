package deploystatus

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AbsentValue is how a missing field prints, as the sfdx plugin printed it.
const AbsentValue = "undefined"

// Value is an optional scalar read from a Document.
type Value struct {
	Text    string
	Present bool
}

// Present returns a present Value holding text.
func Present(text string) Value {
	return Value{Text: text, Present: true}
}

// String returns the text, or AbsentValue when the value is missing.
func (v Value) String() string {
	if !v.Present {
		return AbsentValue
	}
	return v.Text
}

// IsEmpty reports whether the value is missing or the empty string.
func (v Value) IsEmpty() bool {
	return !v.Present || v.Text == ""
}

// Position is a lineNumber or columnNumber exactly as the document holds it.
// Platforms report positions as numbers or as numeric strings, and the text
// is printed unchanged either way.
type Position struct {
	Value
	// Zero marks the number zero, which means no position was reported.
	Zero bool
}

// PositionOf returns a present, non-zero Position holding text.
func PositionOf(text string) Position {
	return Position{Value: Present(text)}
}

// IsSet reports whether a position was reported: present, not empty, and
// not the number zero.
func (p Position) IsSet() bool {
	return !p.IsEmpty() && !p.Zero
}

// Summary holds the top-line fields of a deploy result.
type Summary struct {
	CreatedByName            Value
	CreatedDate              Value
	CompletedDate            Value
	CheckOnly                Value
	RunTestsEnabled          Value
	Status                   Value
	NumberComponentsTotal    Value
	NumberComponentsDeployed Value
	NumberComponentErrors    Value
}

// Extract resolves each summary field independently with Field.
func Extract(doc *Document) Summary {
	return Summary{
		CreatedByName:            doc.Field("createdByName"),
		CreatedDate:              doc.Field("createdDate"),
		CompletedDate:            doc.Field("completedDate"),
		CheckOnly:                doc.Field("checkOnly"),
		RunTestsEnabled:          doc.Field("runTestsEnabled"),
		Status:                   doc.Field("status"),
		NumberComponentsTotal:    doc.Field("numberComponentsTotal"),
		NumberComponentsDeployed: doc.Field("numberComponentsDeployed"),
		NumberComponentErrors:    doc.Field("numberComponentErrors"),
	}
}

// Kind selects which component collection to read.
type Kind int

const (
	// Success reads componentSuccesses.
	Success Kind = iota
	// Failure reads componentFailures.
	Failure
)

// CollectionName returns the document key holding records of this kind.
func (k Kind) CollectionName() string {
	if k == Failure {
		return "componentFailures"
	}
	return "componentSuccesses"
}

func (k Kind) String() string {
	if k == Failure {
		return "failure"
	}
	return "success"
}

// ComponentRecord is one entry of componentSuccesses or componentFailures.
type ComponentRecord struct {
	FullName      Value
	ComponentType Value
	Problem       Value
	ProblemType   Value
	LineNumber    Position
	ColumnNumber  Position
}

// HasType reports whether the record carries a non-empty componentType.
func (r ComponentRecord) HasType() bool {
	return !r.ComponentType.IsEmpty()
}

// ExtractRecords returns the records of the first collection of the given
// kind found anywhere in doc, in document order.
//
// A collection wrapped in an extra sequence (a sequence whose first item is
// itself a sequence) yields that first item's records. A lone mapping, which
// is how SOAP-derived payloads encode a single component, counts as a
// one-record collection. Non-mapping items are skipped. The result is empty,
// never nil-with-error, when nothing usable is found.
func ExtractRecords(doc *Document, kind Kind) []ComponentRecord {
	node, ok := doc.Lookup(kind.CollectionName())
	if !ok {
		return []ComponentRecord{}
	}

	items := collectionItems(node)
	records := make([]ComponentRecord, 0, len(items))
	for _, item := range items {
		item = resolve(item)
		if item == nil || item.Kind != yaml.MappingNode {
			continue
		}
		records = append(records, decodeRecord(item))
	}
	return records
}

func collectionItems(node *yaml.Node) []*yaml.Node {
	node = resolve(node)
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) > 0 {
			if first := resolve(node.Content[0]); first != nil && first.Kind == yaml.SequenceNode {
				return first.Content
			}
		}
		return node.Content
	case yaml.MappingNode:
		return []*yaml.Node{node}
	default:
		return nil
	}
}

// decodeRecord reads the record's own keys; nested mappings are not searched.
func decodeRecord(node *yaml.Node) ComponentRecord {
	var rec ComponentRecord
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolve(node.Content[i])
		if key == nil {
			continue
		}
		value := node.Content[i+1]
		switch key.Value {
		case "fullName":
			rec.FullName = scalarValue(value)
		case "componentType":
			rec.ComponentType = scalarValue(value)
		case "problem":
			rec.Problem = scalarValue(value)
		case "problemType":
			rec.ProblemType = scalarValue(value)
		case "lineNumber":
			rec.LineNumber = positionValue(value)
		case "columnNumber":
			rec.ColumnNumber = positionValue(value)
		}
	}
	return rec
}

// positionValue keeps the scalar text as read and notes whether it is the
// number zero. A quoted "0" is text, not a number.
func positionValue(node *yaml.Node) Position {
	pos := Position{Value: scalarValue(node)}
	if !pos.Present {
		return pos
	}
	switch resolve(node).ShortTag() {
	case tagInt:
		n, err := strconv.ParseInt(strings.ReplaceAll(pos.Text, "_", ""), 0, 64)
		pos.Zero = err == nil && n == 0
	case tagFloat:
		f, err := strconv.ParseFloat(pos.Text, 64)
		pos.Zero = err == nil && f == 0
	}
	return pos
}
