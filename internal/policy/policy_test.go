package policy

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()
	if !p.IsResolved() {
		t.Fatal("Default() is not resolved")
	}
	if got := p.KindOrder(); len(got) != 13 || got[0] != "Fields" || got[12] != "Classes" {
		t.Errorf("KindOrder() = %v", got)
	}
	if got := p.AccessOrder(); !slices.Equal(got, defaultAccessOrder) {
		t.Errorf("AccessOrder() = %v, want %v", got, defaultAccessOrder)
	}
	if !p.ConstFirst() || !p.StaticFirst() || !p.ReadonlyFirst() || p.OverrideFirst() || !p.Alphabetical() {
		t.Errorf("unexpected default flags: %+v", p)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := Default()
	kinds := p.KindOrder()
	kinds[0] = "Methods"
	if p.KindOrder()[0] != "Fields" {
		t.Error("mutating KindOrder() result changed the policy")
	}
	levels := []string{"private", "public"}
	q := p.WithAccessOrder(levels...)
	levels[0] = "internal"
	if q.AccessOrder()[0] != "private" {
		t.Error("WithAccessOrder kept a reference to its argument")
	}
}

func TestZeroValueResolvesToDefault(t *testing.T) {
	var p Policy
	if p.IsResolved() {
		t.Error("zero Policy reports resolved")
	}
	if !p.Equal(Default()) {
		t.Error("zero Policy does not equal Default()")
	}
	if !p.WithAlphabetical(false).ConstFirst() {
		t.Error("builder on zero Policy lost defaults")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, p Policy)
	}{
		{
			name:  "empty object",
			input: `{}`,
			check: func(t *testing.T, p Policy) {
				if !p.Equal(Default()) {
					t.Errorf("got %s, want default", Serialize(p))
				}
			},
		},
		{
			name:  "unparsable",
			input: `{"KindOrder": [`,
			check: func(t *testing.T, p Policy) {
				if !p.Equal(Default()) {
					t.Errorf("got %s, want default", Serialize(p))
				}
			},
		},
		{
			name:  "not an object",
			input: `[1, 2, 3]`,
			check: func(t *testing.T, p Policy) {
				if !p.Equal(Default()) {
					t.Errorf("got %s, want default", Serialize(p))
				}
			},
		},
		{
			name:  "partial override",
			input: `{"Alphabetical": false, "OverrideFirst": true}`,
			check: func(t *testing.T, p Policy) {
				if p.Alphabetical() {
					t.Error("Alphabetical = true, want false")
				}
				if !p.OverrideFirst() {
					t.Error("OverrideFirst = false, want true")
				}
				if !slices.Equal(p.KindOrder(), defaultKindOrder) {
					t.Errorf("KindOrder = %v, want default", p.KindOrder())
				}
			},
		},
		{
			name:  "wrong types fall back per field",
			input: `{"ConstFirst": "no", "KindOrder": "Methods", "AccessOrder": ["private", 3], "StaticFirst": false}`,
			check: func(t *testing.T, p Policy) {
				if !p.ConstFirst() {
					t.Error("ConstFirst = false, want default true")
				}
				if p.StaticFirst() {
					t.Error("StaticFirst = true, want false")
				}
				if !slices.Equal(p.KindOrder(), defaultKindOrder) {
					t.Errorf("KindOrder = %v, want default", p.KindOrder())
				}
				if !slices.Equal(p.AccessOrder(), defaultAccessOrder) {
					t.Errorf("AccessOrder = %v, want default", p.AccessOrder())
				}
			},
		},
		{
			name:  "empty list is a value",
			input: `{"KindOrder": []}`,
			check: func(t *testing.T, p Policy) {
				if got := p.KindOrder(); len(got) != 0 {
					t.Errorf("KindOrder = %v, want empty", got)
				}
			},
		},
		{
			name:  "unknown fields ignored",
			input: `{"Indent": 4, "KindOrder": ["Methods", "Fields"]}`,
			check: func(t *testing.T, p Policy) {
				if got := p.KindOrder(); !slices.Equal(got, []string{"Methods", "Fields"}) {
					t.Errorf("KindOrder = %v", got)
				}
			},
		},
		{
			name:  "field names are case sensitive",
			input: `{"alphabetical": false}`,
			check: func(t *testing.T, p Policy) {
				if !p.Alphabetical() {
					t.Error("lowercase key was honoured")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse([]byte(tt.input))
			if !p.IsResolved() {
				t.Fatal("Parse returned an unresolved policy")
			}
			tt.check(t, p)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	policies := []Policy{
		Default(),
		Default().WithAlphabetical(false).WithOverrideFirst(true),
		Default().WithKindOrder().WithAccessOrder("internal", "public"),
		Default().WithKindOrder("Methods", "Fields").WithConstFirst(false).WithStaticFirst(false).WithReadonlyFirst(false),
	}
	for i, p := range policies {
		text := Serialize(p)
		if got := Deserialize(text); !got.Equal(p) {
			t.Errorf("policy %d: round trip mismatch\n got: %s\nwant: %s", i, Serialize(got), text)
		}
		if again := Serialize(Deserialize(text)); again != text {
			t.Errorf("policy %d: Serialize is not deterministic\n got: %s\nwant: %s", i, again, text)
		}
	}
}

func TestSerializeLayout(t *testing.T) {
	text := Serialize(Default())
	if !strings.HasPrefix(text, "{\n  \"KindOrder\": [\n    \"Fields\",") {
		t.Errorf("unexpected layout:\n%s", text)
	}
	if strings.Index(text, "ConstFirst") > strings.Index(text, "Alphabetical") {
		t.Error("fields are not in declaration order")
	}
}

func TestLegacyAccessSpelling(t *testing.T) {
	p := Parse([]byte(`{"AccessOrder": ["public", "public explicit", "internal", "protected internal", "protected", "private"]}`))
	if got := p.AccessOrder()[1]; got != "public explicit" {
		t.Errorf("AccessOrder()[1] = %q, want the spelling as written", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"p.json": `{"Alphabetical": false}`,
		"p.yaml": "Alphabetical: false\nKindOrder:\n  - Methods\n  - Fields\n",
		"p.toml": "Alphabetical = false\nKindOrder = [\"Methods\", \"Fields\"]\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		p, err := LoadFile(path)
		if err != nil {
			t.Errorf("LoadFile(%s) error = %v", name, err)
			continue
		}
		if p.Alphabetical() {
			t.Errorf("LoadFile(%s).Alphabetical() = true, want false", name)
		}
		if name != "p.json" && p.KindOrder()[0] != "Methods" {
			t.Errorf("LoadFile(%s).KindOrder() = %v", name, p.KindOrder())
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	p, err := LoadFile(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Error("LoadFile on a missing file returned nil error")
	}
	if !p.Equal(Default()) {
		t.Error("LoadFile on a missing file did not return Default()")
	}
}

func TestEncode(t *testing.T) {
	p := Default().WithAlphabetical(false)
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		data, err := Encode(p, f)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", f, err)
		}
		got, err := Decode(data, f)
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", f, err)
		}
		if !got.Equal(p) {
			t.Errorf("%s round trip mismatch: %s", f, data)
		}
	}
	if _, err := Encode(p, Format("ini")); err == nil {
		t.Error("Encode(ini) returned nil error")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":                FormatJSON,
		"a.YML":                 FormatYAML,
		"a.yaml":                FormatYAML,
		"dir/a.toml":            FormatTOML,
		"noext":                 FormatJSON,
		"csharpkindsorter.json": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}
