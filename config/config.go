// Package config — .i18nkit.yaml configuration file support.
//
// The file is optional. When present it supplies defaults for the
// translate command; command-line flags always take precedence.
//
//	provider: libretranslate
//	base_url: https://libretranslate.example.org
//	api_key: secret
//	max_concurrent: 4
//	timeout: 30s
//	proxy: http://proxy:3128
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name, looked up in the base directory.
const FileName = ".i18nkit.yaml"

// DefaultMaxConcurrent is the in-flight request cap used when neither the
// config file nor the command line sets one.
const DefaultMaxConcurrent = 10

// File is the .i18nkit.yaml structure.
type File struct {
	// Provider is the translation service ID (google, libretranslate).
	Provider string `yaml:"provider,omitempty"`
	// BaseURL is the service endpoint (LibreTranslate).
	BaseURL string `yaml:"base_url,omitempty"`
	// APIKey authenticates against the service.
	APIKey string `yaml:"api_key,omitempty"`
	// MaxConcurrent caps in-flight translation requests; 0 keeps the
	// default, negative means unbounded.
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
	// Timeout bounds a whole translate command, e.g. "90s". Empty means none.
	Timeout string `yaml:"timeout,omitempty"`
	// Proxy is an HTTP/HTTPS proxy URL.
	Proxy string `yaml:"proxy,omitempty"`

	path string
}

// Load reads the config file at path. A missing file yields an empty File
// and no error; an explicitly named file that is missing is still not an
// error here, callers decide.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f := &File{path: path}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, err := f.TimeoutDuration(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadDir reads FileName from dir.
func LoadDir(dir string) (*File, error) {
	return Load(filepath.Join(dir, FileName))
}

// Path returns the path the file was loaded from, or "" when no file
// was found.
func (f *File) Path() string {
	return f.path
}

// TimeoutDuration parses Timeout. Empty means zero (no timeout).
func (f *File) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", f.Timeout)
	}
	return d, nil
}

// EffectiveMaxConcurrent returns MaxConcurrent or the default when unset.
func (f *File) EffectiveMaxConcurrent() int {
	if f.MaxConcurrent != 0 {
		return f.MaxConcurrent
	}
	return DefaultMaxConcurrent
}
