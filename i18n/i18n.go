// Package i18n translates i18nkit's own CLI messages.
//
// Catalogs are embedded from locales/<lang>/LC_MESSAGES/i18nkit.po. The
// user's locale is matched against the embedded languages with a
// golang.org/x/text/language matcher, so "de_AT.UTF-8" picks the German
// catalog and unsupported locales fall back to the untranslated English
// messages.
package i18n

import (
	"embed"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

//go:embed all:locales
var locales embed.FS

const (
	domain    = "i18nkit"
	localeDir = "locales"
)

var po *gotext.Locale

// Init loads the catalog that best matches lang. An empty lang is taken
// from LANGUAGE, LC_ALL, LC_MESSAGES and LANG.
func Init(lang string) {
	var prefs []language.Tag
	if lang != "" {
		prefs = parsePrefs([]string{lang})
	} else {
		prefs = envPrefs()
	}

	po = gotext.NewLocaleFSWithPath(match(prefs), locales, localeDir)
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, or returns it unchanged.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// Languages returns the embedded catalog languages, sorted.
func Languages() []string {
	entries, err := fs.ReadDir(locales, localeDir)
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(locales, localeDir+"/"+e.Name()+"/LC_MESSAGES/"+domain+".po"); err == nil {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// match picks the catalog directory for prefs. English is the source
// language and wins when nothing better matches.
func match(prefs []language.Tag) string {
	names := append([]string{"en"}, Languages()...)
	supported := make([]language.Tag, 0, len(names))
	for _, name := range names {
		supported = append(supported, language.Make(name))
	}

	_, idx, conf := language.NewMatcher(supported).Match(prefs...)
	if conf == language.No {
		return "en"
	}
	return names[idx]
}

// envPrefs reads the locale environment in gettext order: the LANGUAGE
// priority list first, then the first of LC_ALL, LC_MESSAGES and LANG.
func envPrefs() []language.Tag {
	var raw []string
	if v := os.Getenv("LANGUAGE"); v != "" {
		raw = append(raw, strings.Split(v, ":")...)
	}
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && !isPortable(v) {
			raw = append(raw, v)
			break
		}
	}
	return parsePrefs(raw)
}

// isPortable reports whether locale is the untranslated C/POSIX locale.
func isPortable(locale string) bool {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return locale == "C" || locale == "POSIX"
}

// parsePrefs turns POSIX locale names (ru_RU.UTF-8, sr@latin) into tags,
// dropping C, POSIX and anything unparsable.
func parsePrefs(raw []string) []language.Tag {
	var tags []language.Tag
	for _, v := range raw {
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || isPortable(v) {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
