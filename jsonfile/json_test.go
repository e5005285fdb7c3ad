package jsonfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/minios-linux/i18nkit/catalog"
)

func TestParse_PreservesOrder(t *testing.T) {
	set, err := Parse([]byte(`{"zeta": "last", "alpha": "first", "mid": ""}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got, want := set.Keys(), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if got, _ := set.Get("alpha"); got != "first" {
		t.Errorf("alpha = %q, want %q", got, "first")
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"broken":        `{"broken":`,
		"empty":         ``,
		"array root":    `["a", "b"]`,
		"string root":   `"text"`,
		"nested object": `{"a": {"b": "c"}}`,
		"nested array":  `{"a": ["b"]}`,
		"trailing data": `{"a": "b"} {}`,
	}
	for name, input := range cases {
		_, err := Parse([]byte(input))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%s: error %v should wrap ErrFormat", name, err)
		}
	}
}

func TestParse_ScalarValuesAsText(t *testing.T) {
	set, err := Parse([]byte(`{"count":5,"enabled":true,"off":false,"none":null,"title":"Hi","ratio":1.50,"big":1e21,"tiny":1e-7,"neg":-0.25}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	want := []catalog.Entry{
		{Key: "count", Value: "5"},
		{Key: "enabled", Value: "true"},
		{Key: "off", Value: "false"},
		{Key: "none", Value: "null"},
		{Key: "title", Value: "Hi"},
		{Key: "ratio", Value: "1.5"},
		{Key: "big", Value: "1e+21"},
		{Key: "tiny", Value: "1e-7"},
		{Key: "neg", Value: "-0.25"},
	}
	if got := set.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
}

func TestNumberText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"10", "10"},
		{"100.0", "100"},
		{"0.000001", "0.000001"},
		{"123456789012345678901", "123456789012345680000"},
		{"1.5e300", "1.5e+300"},
		{"-2.5e-8", "-2.5e-8"},
	}
	for _, tt := range tests {
		if got := numberText(json.Number(tt.in)); got != tt.want {
			t.Errorf("numberText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_EmptyObject(t *testing.T) {
	set, err := Parse([]byte(" {} \n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestParse_DuplicateKeyLastValueFirstPosition(t *testing.T) {
	set, err := Parse([]byte(`{"a":"1","b":"2","a":"3"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := set.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if got, _ := set.Get("a"); got != "3" {
		t.Errorf("a = %q, want 3", got)
	}
}

func TestMarshal_CompactAndEscaped(t *testing.T) {
	set := catalog.FromEntries(
		catalog.Entry{Key: "quote", Value: `say "hi"`},
		catalog.Entry{Key: "multi", Value: "line1\nline2\ttab"},
		catalog.Entry{Key: "html", Value: "<b>&</b>"},
		catalog.Entry{Key: "back\\slash", Value: "é"},
	)
	out, err := Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"quote":"say \"hi\"","multi":"line1\nline2\ttab","html":"<b>&</b>","back\\slash":"é"}`
	if string(out) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", out, want)
	}
	if !json.Valid(out) {
		t.Error("output is not valid JSON")
	}
}

func TestMarshal_Empty(t *testing.T) {
	out, err := Marshal(catalog.New())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "{}" {
		t.Errorf("Marshal(empty) = %q, want {}", out)
	}
}

func TestRoundTrip(t *testing.T) {
	set := catalog.FromEntries(
		catalog.Entry{Key: "a", Value: "1"},
		catalog.Entry{Key: "eq=key", Value: "x=y"},
		catalog.Entry{Key: "ctl", Value: "\x01 "},
	)
	out, err := Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(set) {
		t.Errorf("round-trip = %v, want %v", got.Entries(), set.Entries())
	}
}

func TestWriteFile_AndParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.i18n.json")
	set := catalog.FromEntries(catalog.Entry{Key: "k", Value: "v"})
	if err := WriteFile(set, path); err != nil {
		t.Fatal(err)
	}
	got, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(set) {
		t.Errorf("ParseFile() = %v", got.Entries())
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.i18n.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error %v should wrap fs.ErrNotExist", err)
	}
	if errors.Is(err, ErrFormat) {
		t.Error("missing file must not be reported as a format error")
	}
}
