package share

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParamsKey is the reserved document key holding the threshold parameters.
const ParamsKey = "keys"

// Format is the serialization of a share document.
type Format int

const (
	JSON = Format(0)
	YAML = Format(1)
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath returns [YAML] for paths ending in .yaml or .yml
// and [JSON] for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Record is the encoded value of one share.
type Record struct {
	// Base is the digit radix of Value.
	Base int
	// Value is the share value written in base Base.
	Value string
}

// Entry is a share record along with its document key.
type Entry struct {
	ID     string
	Record Record
}

// Document is the parsed, not yet decoded, content of a share document.
// Entries are stored in document order.
type Document struct {
	// Params is nil if the document has no [ParamsKey] entry.
	Params  *Params
	Entries []Entry
}

// ParseJSON parses a JSON share document.
func ParseJSON(data []byte) (doc *Document, err error) {

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("", "invalid JSON: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, malformed("", "document must be a JSON object")
	}

	p := newParser()

	for dec.More() {

		if tok, err = dec.Token(); err != nil {
			return nil, malformed("", "invalid JSON: %w", err)
		}

		key := tok.(string)

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return nil, malformed(key, "invalid JSON: %w", err)
		}

		if err = p.add(key, func(v any) error { return json.Unmarshal(raw, v) }); err != nil {
			return nil, err
		}
	}

	if _, err = dec.Token(); err != nil {
		return nil, malformed("", "invalid JSON: %w", err)
	}

	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("", "unexpected data after the document")
	}

	return p.doc, nil
}

// ParseYAML parses a YAML share document.
func ParseYAML(data []byte) (doc *Document, err error) {

	var root yaml.Node
	if err = yaml.Unmarshal(data, &root); err != nil {
		return nil, malformed("", "invalid YAML: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, malformed("", "empty document")
	}

	mapping := root.Content[0]

	if mapping.Kind != yaml.MappingNode {
		return nil, malformed("", "document must be a YAML mapping")
	}

	p := newParser()

	for i := 0; i+1 < len(mapping.Content); i += 2 {

		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return nil, malformed("", "line %d: keys must be scalars", keyNode.Line)
		}

		if err = p.add(keyNode.Value, valueNode.Decode); err != nil {
			return nil, err
		}
	}

	return p.doc, nil
}

// Parse parses data according to the given format.
func Parse(data []byte, format Format) (*Document, error) {
	switch format {
	case JSON:
		return ParseJSON(data)
	case YAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}
}

type parser struct {
	doc  *Document
	seen map[string]bool
}

func newParser() *parser {
	return &parser{
		doc:  &Document{},
		seen: map[string]bool{},
	}
}

func (p *parser) add(key string, decode func(v any) error) (err error) {

	if p.seen[key] {
		return malformed(key, "duplicate key")
	}
	p.seen[key] = true

	if key == ParamsKey {

		var params paramsRecord
		if err = decode(&params); err != nil {
			return malformed(key, "%w", err)
		}

		if params.N == nil || params.K == nil {
			return malformed(key, "fields \"n\" and \"k\" are required")
		}

		p.doc.Params = &Params{N: int(*params.N), K: int(*params.K)}

		return
	}

	var record shareRecord
	if err = decode(&record); err != nil {
		return malformed(key, "%w", err)
	}

	if record.Base == nil || record.Value == nil {
		return malformed(key, "fields \"base\" and \"value\" are required")
	}

	p.doc.Entries = append(p.doc.Entries, Entry{
		ID: key,
		Record: Record{
			Base:  int(*record.Base),
			Value: string(*record.Value),
		},
	})

	return
}

type paramsRecord struct {
	N *integer `json:"n" yaml:"n"`
	K *integer `json:"k" yaml:"k"`
}

type shareRecord struct {
	Base  *integer `json:"base" yaml:"base"`
	Value *text    `json:"value" yaml:"value"`
}

// integer is a machine integer written either
// as a number or as a decimal string.
type integer int

func (i *integer) UnmarshalJSON(b []byte) (err error) {

	s := string(b)

	if len(b) > 0 && b[0] == '"' {
		if err = json.Unmarshal(b, &s); err != nil {
			return
		}
	}

	return i.set(s)
}

func (i *integer) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", node.Line)
	}
	return i.set(node.Value)
}

func (i *integer) set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s is not an integer", s)
	}
	*i = integer(v)
	return nil
}

// text is a string written either as a string
// or as a bare number.
type text string

func (t *text) UnmarshalJSON(b []byte) error {

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%s is not a string", b)
	}

	*t = text(n)

	return nil
}

func (t *text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return fmt.Errorf("line %d: expected a string", node.Line)
	}
	*t = text(node.Value)
	return nil
}
