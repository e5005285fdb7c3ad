// Package pipeline implements the file-level commands: format conversion,
// batch translation and extraction. Each command is a single linear pass:
// resolve the input path, load it, transform in memory, resolve the output
// path and write once. Nothing is retried and partially written output is
// left in place on failure.
package pipeline

import (
	"context"

	"github.com/minios-linux/i18nkit/flatfile"
	"github.com/minios-linux/i18nkit/jsonfile"
	"github.com/minios-linux/i18nkit/paths"
	"github.com/minios-linux/i18nkit/translate"
)

// Options selects the files a command works on.
type Options struct {
	// BaseLanguage names the input file and is the translation source.
	BaseLanguage string
	// TargetLanguage names the translation output file.
	TargetLanguage string
	// BaseDir is where files are looked up by language code.
	BaseDir string
	// InputFile overrides the resolved input path.
	InputFile string
	// OutputFile overrides the resolved output path.
	OutputFile string
}

// Summary describes what a command read and wrote.
type Summary struct {
	Input   string
	Output  string
	Entries int
}

// TranslateSummary adds the per-entry failures of a translate run.
type TranslateSummary struct {
	Summary
	// Failed lists keys written as translate.ErrorSentinel.
	Failed []string
	// Errors maps each failed key to its error.
	Errors map[string]error
}

// ToJSON converts the base language's flat file to JSON.
func ToJSON(opts Options) (*Summary, error) {
	in := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.InputFile, paths.FormatFlat)
	set, err := flatfile.ParseFile(in)
	if err != nil {
		return nil, err
	}

	out := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.OutputFile, paths.FormatJSON)
	if err := jsonfile.WriteFile(set, out); err != nil {
		return nil, err
	}
	return &Summary{Input: in, Output: out, Entries: set.Len()}, nil
}

// FromJSON converts the base language's JSON file to the flat format.
func FromJSON(opts Options) (*Summary, error) {
	in := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.InputFile, paths.FormatJSON)
	set, err := jsonfile.ParseFile(in)
	if err != nil {
		return nil, err
	}

	out := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.OutputFile, paths.FormatFlat)
	if err := flatfile.WriteFile(set, out); err != nil {
		return nil, err
	}
	return &Summary{Input: in, Output: out, Entries: set.Len()}, nil
}

// Translate loads the base language's flat file, translates every value
// into the target language and writes the target language's flat file.
// Entries that fail to translate are written as translate.ErrorSentinel
// and reported in the summary; they do not make Translate fail.
//
// topts.From and topts.To are filled from opts.
func Translate(ctx context.Context, opts Options, topts translate.Options) (*TranslateSummary, error) {
	in := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.InputFile, paths.FormatFlat)
	set, err := flatfile.ParseFile(in)
	if err != nil {
		return nil, err
	}

	topts.From = opts.BaseLanguage
	topts.To = opts.TargetLanguage
	res := translate.TranslateSet(ctx, set, topts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := paths.Resolve(opts.TargetLanguage, opts.BaseDir, opts.OutputFile, paths.FormatFlat)
	if err := flatfile.WriteFile(res.Set, out); err != nil {
		return nil, err
	}
	return &TranslateSummary{
		Summary: Summary{Input: in, Output: out, Entries: res.Set.Len()},
		Failed:  res.Failed,
		Errors:  res.Errors,
	}, nil
}

// ExtractKeys writes the base language's keys, one per line, to
// OutputFile or base_dir/keys.txt.
func ExtractKeys(opts Options) (*Summary, error) {
	in := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.InputFile, paths.FormatFlat)
	set, err := flatfile.ParseFile(in)
	if err != nil {
		return nil, err
	}

	out := opts.OutputFile
	if out == "" {
		out = paths.KeysFile(opts.BaseDir)
	}
	if err := flatfile.WriteLines(set.Keys(), out); err != nil {
		return nil, err
	}
	return &Summary{Input: in, Output: out, Entries: set.Len()}, nil
}

// ExtractTranslations writes the base language's values, one per line, to
// OutputFile or base_dir/<lang>.txt.
func ExtractTranslations(opts Options) (*Summary, error) {
	in := paths.Resolve(opts.BaseLanguage, opts.BaseDir, opts.InputFile, paths.FormatFlat)
	set, err := flatfile.ParseFile(in)
	if err != nil {
		return nil, err
	}

	out := opts.OutputFile
	if out == "" {
		out = paths.ValuesFile(opts.BaseLanguage, opts.BaseDir)
	}
	if err := flatfile.WriteLines(set.Values(), out); err != nil {
		return nil, err
	}
	return &Summary{Input: in, Output: out, Entries: set.Len()}, nil
}
