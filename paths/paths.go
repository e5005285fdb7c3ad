// Package paths resolves where a language's translation file lives.
//
// Naming convention inside a base directory:
//
//	base_dir/en.i18n             (flat, preferred)
//	base_dir/en.i18n.properties  (flat)
//	base_dir/en.i18n.ini         (flat, default for new files)
//	base_dir/en.i18n.json        (JSON)
package paths

import (
	"os"
	"path/filepath"
)

// Format selects the file naming convention.
type Format int

const (
	FormatFlat Format = iota // key=value text
	FormatJSON               // JSON object
)

// Flat file extensions, in probing order. The last one is the default.
var flatExtensions = []string{".i18n", ".i18n.properties", ".i18n.ini"}

const jsonExtension = ".i18n.json"

// Resolve returns the file path for lang inside baseDir.
//
// A non-empty override is returned as is. For FormatFlat the existing files
// are probed in priority order; when none exists the .i18n.ini path is
// returned so it can be used as a write target. No errors are reported here:
// a missing file surfaces when it is read.
func Resolve(lang, baseDir, override string, format Format) string {
	if override != "" {
		return override
	}
	if format == FormatJSON {
		return filepath.Join(baseDir, lang+jsonExtension)
	}
	last := len(flatExtensions) - 1
	for _, ext := range flatExtensions[:last] {
		p := filepath.Join(baseDir, lang+ext)
		if fileExists(p) {
			return p
		}
	}
	return filepath.Join(baseDir, lang+flatExtensions[last])
}

// KeysFile is the default output of key extraction.
func KeysFile(baseDir string) string {
	return filepath.Join(baseDir, "keys.txt")
}

// ValuesFile is the default output of value extraction for lang.
func ValuesFile(lang, baseDir string) string {
	return filepath.Join(baseDir, lang+".txt")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
