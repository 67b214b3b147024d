package service

import "gopkg.in/yaml.v3"

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// lookup walks mapping keys; it returns nil when any segment is missing.
func lookup(node *yaml.Node, keys ...string) *yaml.Node {
	current := node
	for _, key := range keys {
		if current == nil || current.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(current.Content); i += 2 {
			if current.Content[i].Value == key {
				next = current.Content[i+1]
				break
			}
		}
		current = next
	}
	return current
}

func scalar(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// ensureMapping returns the mapping stored at key, replacing a null or
// scalar placeholder with an empty mapping.
func ensureMapping(parent *yaml.Node, key string) *yaml.Node {
	if existing := lookup(parent, key); existing != nil && existing.Kind == yaml.MappingNode {
		return existing
	}
	mapping := newMapping()
	setValue(parent, key, mapping)
	return mapping
}

func setScalar(parent *yaml.Node, key, value string) {
	setValue(parent, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func setValue(parent *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key {
			parent.Content[i+1] = value
			return
		}
	}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}
