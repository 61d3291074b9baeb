package deploystatus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags assigned to nodes built from JSON tokens.
const (
	tagMap   = "!!map"
	tagSeq   = "!!seq"
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
	tagNull  = "!!null"
)

var errTrailingData = errors.New("unexpected data after top-level value")

// parseJSON builds a yaml.Node tree from JSON by walking the token stream,
// which keeps object keys in order and numbers as their literal text.
func parseJSON(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return scalar(tagStr, t), nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return scalar(tagFloat, t.String()), nil
		}
		return scalar(tagInt, t.String()), nil
	case bool:
		return scalar(tagBool, strconv.FormatBool(t)), nil
	case nil:
		return scalar(tagNull, "null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalar(tagStr, key), value)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func decodeJSONArray(dec *json.Decoder) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}
	for dec.More() {
		item, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, item)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// encodeJSON writes node as compact JSON, keeping mapping order.
func encodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	node = resolve(node)
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		return encodeJSON(buf, contentOf(node))
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(resolve(node.Content[i]).Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return encodeJSONScalar(buf, node)
	}
	return nil
}

func encodeJSONScalar(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case tagNull:
		buf.WriteString("null")
		return nil
	case tagInt, tagFloat:
		// JSON-compatible literals are copied as-is; YAML-only forms (0x1F, .inf)
		// go through a decode.
		var n json.Number
		if err := json.Unmarshal([]byte(node.Value), &n); err == nil {
			buf.WriteString(node.Value)
			return nil
		}
		var v any
		if err := node.Decode(&v); err == nil {
			if out, err := json.Marshal(v); err == nil {
				buf.Write(out)
				return nil
			}
		}
	case tagBool:
		var b bool
		if err := node.Decode(&b); err == nil {
			buf.WriteString(strconv.FormatBool(b))
			return nil
		}
	}

	out, err := json.Marshal(node.Value)
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}
