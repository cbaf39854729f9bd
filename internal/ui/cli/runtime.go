package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tangutlex/internal/app"
	"tangutlex/internal/core/config"
	"tangutlex/internal/lexicon"
	"tangutlex/internal/shared/observability"
)

func Run(args []string) int {
	return run(args, os.Stdin, os.Stdout)
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "tangutlex v%s\n", versionString)
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		cleanup := configureLogging(false, opts.verbose)
		defer cleanup()
		slog.Error("failed to load config", "path", opts.configPath, "error", err)
		return 1
	}

	if err := applyModeOptions(&opts, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	uiMode := cfg.UI.Mode == config.UIModeTUI && !oneShot(opts)
	cleanupLogs := configureLogging(uiMode, opts.verbose)
	defer cleanupLogs()

	ctx := context.Background()
	if cfg.Observability.Tracing {
		shutdown := observability.SetupTracing(slog.Default())
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to load dataset", "path", cfg.Dataset.Path, "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(ctx); err != nil {
			slog.Warn("shutdown finished with errors", "error", err)
		}
	}()
	logSummary(a.Summary(), a.Collection())

	if stop, code := runSingleCommand(ctx, a, opts, stdout); stop {
		return code
	}

	if cfg.Watch.Enabled {
		if err := a.StartWatcher(); err != nil {
			slog.Error("failed to start watcher", "error", err)
			return 1
		}
	}

	if uiMode {
		if err := runUI(a); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "Summary: %s\n", a.Summary())
	session := newSession(a, stdin, stdout, newColorStyle(cfg.UI.Color))
	if err := session.Run(ctx); err != nil {
		slog.Error("session ended with error", "error", err)
		return 1
	}
	return 0
}

func oneShot(opts cliOptions) bool {
	return opts.toEnglish != "" || opts.toScript != "" || opts.history
}

func runSingleCommand(ctx context.Context, a *app.App, opts cliOptions, stdout io.Writer) (bool, int) {
	if opts.history {
		queries, err := a.RecentQueries(ctx)
		if err != nil {
			slog.Error("failed to read query history", "error", err)
			return true, 1
		}
		if queries == nil {
			fmt.Fprintln(stdout, "Query history is disabled (history.path is empty).")
			return true, 0
		}
		if len(queries) == 0 {
			fmt.Fprintln(stdout, "No queries recorded yet.")
			return true, 0
		}
		for _, q := range queries {
			fmt.Fprintf(stdout, "%s  %-17s  %s  (%d/%d unmatched)\n",
				q.Timestamp.Local().Format("2006-01-02 15:04:05"), q.Direction, q.Input, q.Unmatched, q.Segments)
		}
		return true, 0
	}

	var dir lexicon.Direction
	var query string
	switch {
	case opts.toEnglish != "":
		dir, query = lexicon.ScriptToEnglish, opts.toEnglish
	case opts.toScript != "":
		dir, query = lexicon.EnglishToScript, opts.toScript
	default:
		return false, 0
	}

	result, err := a.Translate(ctx, dir, query)
	if err != nil {
		slog.Error("lookup failed", "direction", dir.String(), "error", err)
		return true, 1
	}
	fmt.Fprint(stdout, result.Render(newColorStyle(a.Config.UI.Color)))
	return true, 0
}

func applyModeOptions(opts *cliOptions, cfg *config.Config) error {
	if opts.ui && opts.plain {
		return fmt.Errorf("-ui and -plain cannot be combined")
	}
	if opts.toEnglish != "" && opts.toScript != "" {
		return fmt.Errorf("-to-english and -to-script cannot be combined")
	}
	if opts.history && (opts.toEnglish != "" || opts.toScript != "") {
		return fmt.Errorf("-history cannot be combined with a one-shot lookup")
	}
	if len(opts.args) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(opts.args, " "))
	}

	if strings.TrimSpace(opts.dataset) != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if strings.TrimSpace(opts.format) != "" {
		format, err := lexicon.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		cfg.Dataset.Format = string(format)
	}
	if opts.ui {
		cfg.UI.Mode = config.UIModeTUI
	}
	if opts.plain {
		cfg.UI.Mode = config.UIModePlain
	}
	if opts.noColor {
		cfg.UI.Color = false
	}
	if opts.watch {
		cfg.Watch.Enabled = true
	}
	return cfg.Validate()
}

// loadConfig reads path. When the default path is absent the example file
// is tried, then built-in defaults are used.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path != defaultConfigPath || !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err = config.Load(exampleConfigPath)
	if err == nil {
		slog.Debug("using example config", "path", exampleConfigPath)
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return config.DefaultConfig(), nil
}

func logSummary(summary lexicon.Summary, c *lexicon.Collection) {
	attrs := []any{
		"records", summary.Records,
		"entries", summary.Total,
		"missing_phonetics", summary.MissingPhonetics,
		"skipped", summary.Skipped,
	}
	if c != nil {
		attrs = append(attrs, "characters", c.CharacterCount(), "keywords", c.KeywordCount())
	}
	slog.Info("dataset loaded", attrs...)
	for _, ch := range summary.MissingPhoneticChars {
		slog.Debug("entry has no phonetic", "character", ch)
	}
	for _, err := range summary.SkippedErrors() {
		slog.Debug("skipped malformed record", "error", err)
	}
}

func configureLogging(uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	var closeFn func() = func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tangutlex", "tangutlex.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "tangutlex", "tangutlex.log")
	}

	return "tangutlex.log"
}
