// Package jsonfile implements reading and writing of JSON translation files
// (.i18n.json).
//
// The expected file format is a single flat object:
//
//	{"greeting":"Hello","farewell":"Goodbye","count":5}
//
// Numbers, booleans and null are read as their text form ("5", "true",
// "null"). Nested objects and arrays are rejected. Key order is taken from
// the document and preserved on output. Output is compact (no indentation)
// with standard JSON string escaping; HTML characters are not escaped.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/minios-linux/i18nkit/catalog"
)

// ErrFormat is wrapped by every error caused by file content rather than I/O.
var ErrFormat = errors.New("malformed JSON translation file")

// ParseFile reads and parses a JSON translation file.
func ParseFile(path string) (*catalog.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes a JSON object into a Set, keeping key order.
func Parse(data []byte) (*catalog.Set, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	// Read opening brace.
	t, err := dec.Token()
	if err != nil {
		return nil, formatErr(err)
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: root must be an object, got %v", ErrFormat, t)
	}

	set := catalog.New()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, formatErr(err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string key, got %T", ErrFormat, kt)
		}

		vt, err := dec.Token()
		if err != nil {
			return nil, formatErr(err)
		}
		value, err := scalarText(vt)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrFormat, key, err)
		}
		set.Set(key, value)
	}

	// Closing brace, then nothing but whitespace.
	if _, err := dec.Token(); err != nil {
		return nil, formatErr(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after object", ErrFormat)
	}

	return set, nil
}

// scalarText returns the text form of a JSON scalar token.
func scalarText(t json.Token) (string, error) {
	switch v := t.(type) {
	case string:
		return v, nil
	case json.Number:
		return numberText(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "null", nil
	case json.Delim:
		return "", fmt.Errorf("nested %v values are not supported", v)
	default:
		return "", fmt.Errorf("unexpected token %v", v)
	}
}

// numberText formats n the way JavaScript's String(number) does: shortest
// round-trip digits, plain notation for magnitudes in [1e-6, 1e21) and
// exponent notation outside it.
func numberText(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatErr(err error) error {
	if err == io.EOF {
		return fmt.Errorf("%w: unexpected end of input", ErrFormat)
	}
	return fmt.Errorf("%w: %v", ErrFormat, err)
}

// Marshal produces a compact JSON object in set order.
func Marshal(set *catalog.Set) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range set.Entries() {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := jsonString(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := jsonString(e.Value)
		if err != nil {
			return nil, err
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// WriteFile serialises set and writes it to path.
func WriteFile(set *catalog.Set, path string) error {
	data, err := Marshal(set)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// jsonString returns s as a JSON string literal.
func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encoding %q: %w", s, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
