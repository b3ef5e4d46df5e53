package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Aidix21/Conf-SH-A-R-Pr4/value"
	"gopkg.in/yaml.v3"
)

// Format selects an output rendering.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatTOML, FormatJSON, FormatYAML}

// ParseFormat resolves a user-supplied format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatTOML, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", name, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Render renders tbl in the given format.
func Render(f Format, tbl *value.Table) (string, error) {
	switch f {
	case FormatTOML:
		return TOML(tbl), nil
	case FormatJSON:
		return JSON(tbl)
	case FormatYAML:
		return YAML(tbl)
	}
	return "", fmt.Errorf("unknown output format %q", string(f))
}

// JSON renders tbl as an indented JSON object, keeping insertion order.
func JSON(tbl *value.Table) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, tbl); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", fmt.Errorf("indenting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.String(), nil
}

func writeJSON(buf *bytes.Buffer, v value.Value) error {
	switch x := v.(type) {
	case *value.Table:
		buf.WriteByte('{')
		for i, key := range x.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, _ := json.Marshal(key)
			buf.Write(k)
			buf.WriteByte(':')
			sub, _ := x.Get(key)
			if err := writeJSON(buf, sub); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case value.Int:
		buf.WriteString(x.String())
		return nil
	case value.Float:
		b, err := json.Marshal(float64(x))
		if err != nil {
			return fmt.Errorf("encoding %s: %w", x, err)
		}
		buf.Write(b)
		return nil
	}
	return fmt.Errorf("cannot encode %s as JSON", value.TypeName(v))
}

// YAML renders tbl as a YAML mapping, keeping insertion order.
func YAML(tbl *value.Table) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(tbl)); err != nil {
		return "", fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.String(), nil
}

func yamlNode(v value.Value) *yaml.Node {
	switch x := v.(type) {
	case *value.Table:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		x.Each(func(key string, sub value.Value) {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(sub),
			)
		})
		return n
	case value.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: x.String()}
	case value.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: x.String()}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}
}
