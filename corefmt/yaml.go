package corefmt

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML 輸出 YAML；最內層的一維陣列用 flow style（[a, b, c]），外層維度維持展開。
func WriteYAML(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
	case yaml.SequenceNode:
		// 含有 mapping 或子 sequence 的是外層維度
		leaf := true
		for _, c := range n.Content {
			if c != nil && (c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode) {
				leaf = false
			}
			styleReadableSequences(c)
		}
		if leaf {
			n.Style = yaml.FlowStyle
		}
	}
}
