// Package artifact encodes a composed configuration tree for the build
// executor. JSON output is canonical: cty sorts object keys, so the same
// tree always yields the same bytes. YAML output keeps the tree's
// insertion order and carries a header comment.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"

	"github.com/vk/spabuild/internal/fragment"
)

// Format selects the artifact encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown artifact format %q: expected json or yaml", s)
}

// Header is the provenance written alongside YAML artifacts.
type Header struct {
	Mode        string
	Fingerprint string
	Source      string
}

func (h Header) comment() string {
	lines := []string{"# Generated by spabuild. Do not edit."}
	if h.Mode != "" {
		lines = append(lines, "# mode: "+h.Mode)
	}
	if h.Fingerprint != "" {
		lines = append(lines, "# fingerprint: "+h.Fingerprint)
	}
	if h.Source != "" {
		lines = append(lines, "# source: "+h.Source)
	}
	return strings.Join(lines, "\n")
}

// Canonical returns the compact canonical JSON encoding of tree.
func Canonical(tree *fragment.Fragment) ([]byte, error) {
	b, err := ctyjson.SimpleJSONValue{Value: tree.ToCty()}.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding configuration as JSON: %w", err)
	}
	return b, nil
}

// Encode writes tree to w in format.
func Encode(w io.Writer, format Format, h Header, tree *fragment.Fragment) error {
	switch format {
	case JSON:
		return encodeJSON(w, tree)
	case YAML:
		return encodeYAML(w, h, tree)
	}
	return fmt.Errorf("unknown artifact format %q", format)
}

func encodeJSON(w io.Writer, tree *fragment.Fragment) error {
	compact, err := Canonical(tree)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return fmt.Errorf("indenting JSON artifact: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func encodeYAML(w io.Writer, h Header, tree *fragment.Fragment) error {
	root, err := objectNode(tree)
	if err != nil {
		return err
	}
	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: h.comment(),
		Content:     []*yaml.Node{root},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML artifact: %w", err)
	}
	return enc.Close()
}

func objectNode(f *fragment.Fragment) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range f.Keys() {
		v, _ := f.Get(k)
		vn, err := valueNode(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
	}
	return n, nil
}

func valueNode(v fragment.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case fragment.KindObject:
		return objectNode(v.Fragment())
	case fragment.KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range v.Items() {
			in, err := valueNode(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			n.Content = append(n.Content, in)
		}
		return n, nil
	case fragment.KindScalar:
		return scalarNode(v.Cty())
	}
	return nil, fmt.Errorf("value has no kind")
}

func scalarNode(v cty.Value) (*yaml.Node, error) {
	if v.IsNull() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	switch v.Type() {
	case cty.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.AsString()}, nil
	case cty.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v.True())}, nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int(nil)
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: i.String()}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: bf.Text('g', -1)}, nil
	}
	return nil, fmt.Errorf("unsupported scalar type %s", v.Type().FriendlyName())
}
