// Package flatfile implements reading and writing of flat key=value
// translation files (.i18n, .i18n.properties, .i18n.ini).
//
// Format: one entry per line, split at the first '='. Everything after the
// first '=' belongs to the value, so values may contain '=' but keys cannot.
// Lines without '=' are dropped silently. There is no escaping, no comment
// syntax and no whitespace trimming. Both \n and \r\n line endings are
// accepted; output always uses \n without a trailing newline.
package flatfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/minios-linux/i18nkit/catalog"
)

// ParseFile reads and parses a flat translation file from disk.
func ParseFile(path string) (*catalog.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}

// Parse parses flat key=value content. A repeated key keeps its first
// position and takes the later value.
func Parse(data []byte) *catalog.Set {
	set := catalog.New()

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, raw := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			continue
		}
		set.Set(key, value)
	}

	return set
}

// Marshal serialises set back to key=value lines joined by \n.
func Marshal(set *catalog.Set) []byte {
	var b strings.Builder
	for i, e := range set.Entries() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
	}
	return []byte(b.String())
}

// WriteFile serialises set and writes it to path. The parent directory
// must already exist.
func WriteFile(set *catalog.Set, path string) error {
	if err := os.WriteFile(path, Marshal(set), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteLines writes lines joined by \n to path, without a trailing newline.
// It backs the key and value extraction outputs.
func WriteLines(lines []string, path string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
