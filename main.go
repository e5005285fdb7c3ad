// i18nkit — convert flat key=value translation files to and from JSON and
// machine-translate them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/minios-linux/i18nkit/config"
	"github.com/minios-linux/i18nkit/i18n"
	"github.com/minios-linux/i18nkit/langmeta"
	"github.com/minios-linux/i18nkit/pipeline"
	"github.com/minios-linux/i18nkit/translate"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	baseDir    string
	inputFile  string
	outputFile string
	configPath string
)

// fileOptions builds pipeline options from the global flags.
func fileOptions(baseLang, targetLang string) pipeline.Options {
	return pipeline.Options{
		BaseLanguage:   baseLang,
		TargetLanguage: targetLang,
		BaseDir:        baseDir,
		InputFile:      inputFile,
		OutputFile:     outputFile,
	}
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "i18nkit",
		Short: i18n.T("Convert and machine-translate key=value translation files"),
		Long: `i18nkit — convert and machine-translate key=value translation files.

Files are looked up in --base-dir by language code:
  <lang>.i18n, <lang>.i18n.properties, <lang>.i18n.ini   flat key=value
  <lang>.i18n.json                                       JSON object

Commands:
  to-json               Convert i18n file to JSON file
  from-json             Convert JSON file to i18n file
  translate             Translate i18n file
  extract-keys          Extract translation keys to file
  extract-translations  Extract translations (without keys) to file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags — inherited by all subcommands
	root.PersistentFlags().StringVarP(&baseDir, "base-dir", "b", ".", "Directory with translation files")
	root.PersistentFlags().StringVarP(&inputFile, "input-file", "i", "", "Input file (overrides lookup by language)")
	root.PersistentFlags().StringVarP(&outputFile, "output-file", "o", "", "Output file (overrides lookup by language)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <base-dir>/"+config.FileName+")")

	root.AddCommand(
		newToJSONCmd(),
		newFromJSONCmd(),
		newTranslateCmd(),
		newExtractKeysCmd(),
		newExtractTranslationsCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Long:  `Display version, commit hash, and build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("i18nkit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// to-json / from-json
// ---------------------------------------------------------------------------

func newToJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-json <base-language>",
		Short: i18n.T("Convert i18n file to JSON file"),
		Long: `Convert the flat key=value file of a language to JSON.

Reads <base-dir>/<lang>.i18n (or .i18n.properties, .i18n.ini) and writes
<base-dir>/<lang>.i18n.json unless --input-file/--output-file are given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := pipeline.ToJSON(fileOptions(args[0], ""))
			if err != nil {
				return err
			}
			reportWritten(sum)
			return nil
		},
	}
}

func newFromJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-json <base-language>",
		Short: i18n.T("Convert JSON file to i18n file"),
		Long: `Convert the JSON file of a language to the flat key=value format.

Reads <base-dir>/<lang>.i18n.json and writes the existing flat file of the
language, or <base-dir>/<lang>.i18n.ini when there is none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := pipeline.FromJSON(fileOptions(args[0], ""))
			if err != nil {
				return err
			}
			reportWritten(sum)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// extract-keys / extract-translations
// ---------------------------------------------------------------------------

func newExtractKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract-keys <base-language>",
		Short: i18n.T("Extract translation keys to file"),
		Long:  `Write the keys of a language file, one per line, to --output-file or <base-dir>/keys.txt.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := pipeline.ExtractKeys(fileOptions(args[0], ""))
			if err != nil {
				return err
			}
			reportWritten(sum)
			return nil
		},
	}
}

func newExtractTranslationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract-translations <base-language>",
		Short: i18n.T("Extract translations (without keys) to file"),
		Long:  `Write the values of a language file, one per line, to --output-file or <base-dir>/<lang>.txt.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := pipeline.ExtractTranslations(fileOptions(args[0], ""))
			if err != nil {
				return err
			}
			reportWritten(sum)
			return nil
		},
	}
}

func reportWritten(sum *pipeline.Summary) {
	logSuccess(i18n.N("Wrote %s (%d entry)", "Wrote %s (%d entries)", sum.Entries), sum.Output, sum.Entries)
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateArgs struct {
	provider, apiKey, baseURL, proxy string
	maxConcurrent                    int
	timeout, requestTimeout          time.Duration
	verbose                          bool
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate <base-language> <target-language>",
		Short: i18n.T("Translate i18n file"),
		Long: `Machine-translate every value of the base language file into the
target language and write the target language file.

Values that cannot be translated are written as "Translation error"; the
command still succeeds and reports how many failed (--verbose lists them).

Examples:
  # Translate en.i18n into fr.i18n.ini using Google Translate
  i18nkit translate en fr

  # Use a self-hosted LibreTranslate server, 4 requests at a time
  i18nkit translate en de --provider libretranslate --base-url http://localhost:5000 --max-concurrent 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if p := cfg.Path(); p != "" {
				logInfo("Using config %s", p)
			}
			resolved, err := applyConfig(cmd, a, cfg)
			if err != nil {
				return err
			}
			return runTranslate(args[0], args[1], resolved)
		},
	}

	// Provider selection
	cmd.Flags().StringVar(&a.provider, "provider", translate.ProviderGoogle, "Translation provider: google, libretranslate")
	cmd.Flags().StringVar(&a.baseURL, "base-url", "", "Custom API base URL (libretranslate)")
	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key (or I18NKIT_API_KEY env var)")

	// Parallelization
	cmd.Flags().IntVar(&a.maxConcurrent, "max-concurrent", config.DefaultMaxConcurrent, "Maximum concurrent requests (0 = unbounded)")

	// Network
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, "Abort the whole command after this duration (0 = never)")
	cmd.Flags().DurationVar(&a.requestTimeout, "request-timeout", 0, "Fail a single entry after this duration (0 = never)")
	cmd.Flags().StringVar(&a.proxy, "proxy", "", "HTTP/HTTPS proxy URL (libretranslate)")

	cmd.Flags().BoolVar(&a.verbose, "verbose", false, "Log every completed entry and each failure")

	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"google\tGoogle Translate (free web endpoint)",
			"libretranslate\tLibreTranslate server",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// loadConfig reads --config, or the default file in --base-dir when present.
func loadConfig() (*config.File, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return config.Load(configPath)
	}
	return config.LoadDir(baseDir)
}

// applyConfig fills every flag the user did not set from the config file
// and the environment. Explicit flags always win.
func applyConfig(cmd *cobra.Command, a translateArgs, cfg *config.File) (translateArgs, error) {
	flags := cmd.Flags()

	if !flags.Changed("provider") && cfg.Provider != "" {
		a.provider = cfg.Provider
	}
	if !flags.Changed("base-url") && cfg.BaseURL != "" {
		a.baseURL = cfg.BaseURL
	}
	if !flags.Changed("api-key") {
		if key := os.Getenv("I18NKIT_API_KEY"); key != "" {
			a.apiKey = key
		} else if cfg.APIKey != "" {
			a.apiKey = cfg.APIKey
		}
	}
	if !flags.Changed("proxy") && cfg.Proxy != "" {
		a.proxy = cfg.Proxy
	}
	if !flags.Changed("max-concurrent") {
		a.maxConcurrent = cfg.EffectiveMaxConcurrent()
	}
	if !flags.Changed("timeout") {
		d, err := cfg.TimeoutDuration()
		if err != nil {
			return a, err
		}
		a.timeout = d
	}
	if a.timeout < 0 {
		return a, fmt.Errorf("--timeout must not be negative")
	}
	if a.requestTimeout < 0 {
		return a, fmt.Errorf("--request-timeout must not be negative")
	}
	return a, nil
}

// resolveProvider merges the built-in definition of name with overrides.
func resolveProvider(name, baseURL, apiKey, proxy string) (translate.Provider, error) {
	prov, ok := translate.DefaultProviders()[name]
	if !ok {
		return translate.Provider{}, fmt.Errorf("unknown provider %q (available: %s, %s)",
			name, translate.ProviderGoogle, translate.ProviderLibreTranslate)
	}
	if baseURL != "" {
		prov.BaseURL = baseURL
	}
	prov.APIKey = apiKey
	prov.Proxy = proxy
	return prov, nil
}

func runTranslate(baseLang, targetLang string, a translateArgs) error {
	prov, err := resolveProvider(a.provider, a.baseURL, a.apiKey, a.proxy)
	if err != nil {
		return err
	}
	prov.Timeout = a.requestTimeout
	tr, err := translate.NewTranslator(prov)
	if err != nil {
		return err
	}

	// Setup signal handling for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logWarning("Interrupted, waiting for pending requests...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if a.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.timeout)
		defer cancelTimeout()
	}

	logInfo("Provider: %s (%s)", prov.Name, prov.ID)
	if a.maxConcurrent > 0 {
		logInfo("Max concurrent: %d", a.maxConcurrent)
	} else {
		logInfo("Max concurrent: unbounded")
	}
	logInfo(i18n.T("Translating %s to %s"), langmeta.Label(baseLang), langmeta.Label(targetLang))

	progress := &progressReporter{verbose: a.verbose, desc: baseLang + " → " + targetLang}
	sum, err := pipeline.Translate(ctx, fileOptions(baseLang, targetLang), translate.Options{
		Translator:    tr,
		MaxConcurrent: a.maxConcurrent,
		OnProgress:    progress.update,
	})
	progress.finish()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("translation aborted, nothing written: %w", err)
		}
		return err
	}

	reportFailures(sum, a.verbose)
	reportWritten(&sum.Summary)
	return nil
}

// reportFailures warns about entries written as the error sentinel. The
// keys themselves are listed only in verbose mode.
func reportFailures(sum *pipeline.TranslateSummary, verbose bool) {
	n := len(sum.Failed)
	if n == 0 {
		return
	}
	logWarning(i18n.N("%d entry could not be translated and was written as %q",
		"%d entries could not be translated and were written as %q", n), n, translate.ErrorSentinel)
	if verbose {
		for _, key := range sum.Failed {
			logWarning("  %s: %v", key, sum.Errors[key])
		}
	}
}

// ---------------------------------------------------------------------------
// Progress
// ---------------------------------------------------------------------------

// progressReporter shows a progress bar, or one log line per entry in
// verbose mode. update is safe for concurrent use.
type progressReporter struct {
	verbose bool
	desc    string

	once sync.Once
	bar  *progressbar.ProgressBar
}

func (p *progressReporter) update(done, total int) {
	if p.verbose {
		logInfo("  %d/%d", done, total)
		return
	}
	p.once.Do(func() {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", p.desc)),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	})
	_ = p.bar.Add(1)
}

func (p *progressReporter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
}
