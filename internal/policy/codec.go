package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	burntoml "github.com/BurntSushi/toml"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the policy file looked up in a project root.
const FileName = "csharpkindsorter.json"

// Recognized document fields.
const (
	FieldKindOrder     = "KindOrder"
	FieldAccessOrder   = "AccessOrder"
	FieldConstFirst    = "ConstFirst"
	FieldStaticFirst   = "StaticFirst"
	FieldReadonlyFirst = "ReadonlyFirst"
	FieldOverrideFirst = "OverrideFirst"
	FieldAlphabetical  = "Alphabetical"
)

// document is the wire shape of a policy. Field order fixes the serialized order.
type document struct {
	KindOrder     []string `json:"KindOrder" yaml:"KindOrder" toml:"KindOrder"`
	AccessOrder   []string `json:"AccessOrder" yaml:"AccessOrder" toml:"AccessOrder"`
	ConstFirst    bool     `json:"ConstFirst" yaml:"ConstFirst" toml:"ConstFirst"`
	StaticFirst   bool     `json:"StaticFirst" yaml:"StaticFirst" toml:"StaticFirst"`
	ReadonlyFirst bool     `json:"ReadonlyFirst" yaml:"ReadonlyFirst" toml:"ReadonlyFirst"`
	OverrideFirst bool     `json:"OverrideFirst" yaml:"OverrideFirst" toml:"OverrideFirst"`
	Alphabetical  bool     `json:"Alphabetical" yaml:"Alphabetical" toml:"Alphabetical"`
}

func toDocument(p Policy) document {
	p = p.Resolved()
	return document{
		KindOrder:     orderList(p.kindOrder),
		AccessOrder:   orderList(p.accessOrder),
		ConstFirst:    p.constFirst,
		StaticFirst:   p.staticFirst,
		ReadonlyFirst: p.readonlyFirst,
		OverrideFirst: p.overrideFirst,
		Alphabetical:  p.alphabetical,
	}
}

// Resolve builds a policy from a decoded configuration document. Each field is taken
// from raw when present and well-typed and falls back to its default otherwise.
func Resolve(raw map[string]any) Policy {
	p := Default()
	if kinds, ok := stringList(raw[FieldKindOrder]); ok {
		p.kindOrder = kinds
	}
	if levels, ok := stringList(raw[FieldAccessOrder]); ok {
		p.accessOrder = levels
	}
	if v, ok := raw[FieldConstFirst].(bool); ok {
		p.constFirst = v
	}
	if v, ok := raw[FieldStaticFirst].(bool); ok {
		p.staticFirst = v
	}
	if v, ok := raw[FieldReadonlyFirst].(bool); ok {
		p.readonlyFirst = v
	}
	if v, ok := raw[FieldOverrideFirst].(bool); ok {
		p.overrideFirst = v
	}
	if v, ok := raw[FieldAlphabetical].(bool); ok {
		p.alphabetical = v
	}
	return p
}

// stringList accepts a list whose every element is a string.
func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return orderList(list), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Parse decodes a JSON policy document. Anything that is not a JSON object yields the
// default policy.
func Parse(text []byte) Policy {
	var raw map[string]any
	if err := json.Unmarshal(text, &raw); err != nil {
		return Default()
	}
	return Resolve(raw)
}

// Serialize renders p as an indented JSON document. The output is deterministic, and
// Deserialize(Serialize(p)) equals p.
func Serialize(p Policy) string {
	data, err := json.MarshalIndent(toDocument(p), "", "  ")
	if err != nil {
		// document only holds strings and bools
		panic(fmt.Sprintf("policy: marshal: %v", err))
	}
	return string(data)
}

// Deserialize is the inverse of Serialize.
func Deserialize(text string) Policy {
	return Parse([]byte(text))
}

// Format is an on-disk policy encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension; unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode resolves a policy document in the given encoding. The returned error is
// informational: the policy is always usable and falls back to Default() when the
// document cannot be decoded.
func Decode(data []byte, format Format) (Policy, error) {
	var raw map[string]any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		_, err = burntoml.Decode(string(data), &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return Default(), fmt.Errorf("decode %s policy: %w", format, err)
	}
	return Resolve(raw), nil
}

// LoadFile reads a policy file, choosing the decoder from its extension. A missing or
// malformed file yields Default() together with the error that caused the fallback.
func LoadFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read policy file: %w", err)
	}
	return Decode(data, FormatFromPath(path))
}

// Encode renders p in the given encoding.
func Encode(p Policy, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return []byte(Serialize(p)), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(toDocument(p)); err != nil {
			return nil, fmt.Errorf("encode yaml policy: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml policy: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(toDocument(p))
		if err != nil {
			return nil, fmt.Errorf("encode toml policy: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported policy format: %s", format)
	}
}
