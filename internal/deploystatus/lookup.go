package deploystatus

import "gopkg.in/yaml.v3"

// Lookup returns the value of the first mapping key equal to name.
//
// The search is depth-first in document order: within a mapping, each key is
// compared and its value fully searched before the next key is visited, and
// sequence items are visited in order. Key comparison is exact and
// case-sensitive. Aliases are followed.
func (d *Document) Lookup(name string) (*yaml.Node, bool) {
	node := find(d.Root(), name, 0)
	return node, node != nil
}

// Field resolves name to a scalar Value. Missing keys, nulls, and
// non-scalar values are absent.
func (d *Document) Field(name string) Value {
	node, ok := d.Lookup(name)
	if !ok {
		return Value{}
	}
	return scalarValue(node)
}

// maxAliases bounds how many aliases a single search path may follow, which
// stops alias cycles. Plain nesting is not bounded.
const maxAliases = 256

func find(node *yaml.Node, name string, aliases int) *yaml.Node {
	if node != nil && node.Kind == yaml.AliasNode {
		aliases++
	}
	node = resolve(node)
	if node == nil || aliases > maxAliases {
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			if found := find(child, name, aliases); found != nil {
				return found
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := resolve(node.Content[i]), node.Content[i+1]
			if key != nil && key.Value == name {
				return resolve(value)
			}
			if found := find(value, name, aliases); found != nil {
				return found
			}
		}
	}
	return nil
}

// resolve follows alias nodes to their anchor.
func resolve(node *yaml.Node) *yaml.Node {
	for i := 0; node != nil && node.Kind == yaml.AliasNode && i < maxAliases; i++ {
		node = node.Alias
	}
	return node
}

func scalarValue(node *yaml.Node) Value {
	node = resolve(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() == tagNull {
		return Value{}
	}
	return Value{Text: node.Value, Present: true}
}

// Child returns the value of a top-level key of a mapping document as its
// own Document. Unlike Lookup it does not search below the root.
func (d *Document) Child(name string) (*Document, bool) {
	root := d.Root()
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if key := resolve(root.Content[i]); key != nil && key.Value == name {
			return &Document{root: resolve(root.Content[i+1]), format: d.Format()}, true
		}
	}
	return nil, false
}

// Text returns the root as a scalar Value. Mapping, sequence, and null
// roots are absent.
func (d *Document) Text() Value {
	return scalarValue(d.Root())
}
