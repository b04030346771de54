package content

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/scholar-sync/app/mapper"
)

// MarshalRecord renders an ordered record as a YAML mapping, keeping field
// order.
func MarshalRecord(rec mapper.Record) ([]byte, error) {
	node, err := nodeFromValue(rec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func nodeFromValue(v any) (*yaml.Node, error) {
	switch value := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}, nil
	case mapper.Date:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: string(value)}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}, nil
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range value {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s})
		}
		return seq, nil
	case []mapper.Record:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, rec := range value {
			child, err := nodeFromValue(rec)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case mapper.Record:
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, field := range value {
			child, err := nodeFromValue(field.Value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Key, err)
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Key},
				child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
