package yamlprops

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnencodable is returned when a value contains a line break and so
// cannot be written in the subset grammar.
var ErrUnencodable = errors.New("yamlprops: value cannot be encoded")

// Encode renders the document in the subset grammar, one flat dotted key per
// property, in input order. Parsing the output yields an equal document.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	for _, k := range d.keys {
		switch v := d.props[k].(type) {
		case Single:
			s, err := encodeValue(string(v))
			if err != nil {
				return nil, err
			}
			buf.WriteString(k)
			buf.WriteString(": ")
			buf.WriteString(s)
			buf.WriteByte('\n')
		case Multiple:
			buf.WriteString(k)
			buf.WriteString(":\n")
			for _, item := range v.Values.All() {
				s, err := encodeValue(item)
				if err != nil {
					return nil, err
				}
				buf.WriteString("  - ")
				buf.WriteString(s)
				buf.WriteByte('\n')
			}
		default:
			return nil, internalIssue(k, "unknown property value")
		}
	}
	return buf.Bytes(), nil
}

// WriteTo implements io.WriterTo with the output of Encode.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	b, err := d.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

func encodeValue(s string) (string, error) {
	if strings.ContainsAny(s, "\r\n") {
		return "", ErrUnencodable
	}
	if !needsQuotes(s) {
		return s, nil
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`, nil
}

// needsQuotes is conservative: dots are always quoted so the output is valid
// under the strict grammar too.
func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	r := []rune(s)
	if unicode.IsSpace(r[0]) || unicode.IsSpace(r[len(r)-1]) {
		return true
	}
	return strings.ContainsAny(s, `"#:-.`)
}

// plain returns the document as a map of strings and string slices.
func (d *Document) plain() map[string]any {
	m := make(map[string]any, len(d.keys))
	for k, v := range d.props {
		switch pv := v.(type) {
		case Single:
			m[k] = string(pv)
		case Multiple:
			m[k] = pv.Slice()
		}
	}
	return m
}

// MarshalJSON renders the document as a flat JSON object. Keys are sorted.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.plain())
}

// MarshalYAML renders the document as a flat YAML mapping in input order.
func (d *Document) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range d.keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		switch v := d.props[k].(type) {
		case Single:
			root.Content = append(root.Content, key, strNode(string(v)))
		case Multiple:
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, item := range v.Values.All() {
				seq.Content = append(seq.Content, strNode(item))
			}
			root.Content = append(root.Content, key, seq)
		}
	}
	return root, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
