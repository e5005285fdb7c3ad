// Package langmeta derives display metadata (native and English names) for
// language codes, used in CLI log lines. Codes themselves are never changed:
// file names and translator parameters always use the code as given.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	// Code is the canonical BCP 47 form (pt_br → pt-BR), or the input when
	// it does not parse.
	Code string
	// Name is the language's name in itself ("Deutsch").
	Name string
	// English is the English name ("German").
	English string
	// Known is false when the code is not a well-formed BCP 47 tag.
	Known bool
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 && len(parts[1]) == 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort metadata for lang, accepting variants like
// pt_BR and pt-br.
func Resolve(lang string) Meta {
	tag, err := language.Parse(canonicalize(lang))
	if err != nil {
		return Meta{Code: lang, Name: lang, English: lang}
	}
	m := Meta{
		Code:    tag.String(),
		Name:    display.Self.Name(tag),
		English: display.Tags(language.English).Name(tag),
		Known:   true,
	}
	if m.English == "" {
		m.English = lang
	}
	if m.Name == "" {
		m.Name = m.English
	}
	return m
}

// Label formats lang for log output, e.g. "de (Deutsch)". Unknown codes are
// returned unchanged.
func Label(lang string) string {
	m := Resolve(lang)
	if !m.Known || m.Name == lang {
		return lang
	}
	return lang + " (" + m.Name + ")"
}
