// Package cli implements the pkgtrust command-line interface.
//
// The root command scores a batch of package references:
//
//	pkgtrust urls.txt scores.ndjson
//
// Subcommands:
//   - report: Render an export as a table, or convert it to Parquet
//   - serve: Score single references over HTTP
//   - cache: Manage the HTTP response cache
//   - completion: Generate shell completion scripts
//
// Configuration is read from flags, PKGTRUST_* environment variables and an
// optional .pkgtrust.yaml, in that order of precedence. GITHUB_TOKEN,
// LOG_FILE and LOG_LEVEL are honoured without the prefix.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgtrust/pkg/buildinfo"
	"github.com/matzehuels/pkgtrust/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "pkgtrust"

// LogInfo is the initial log level; LOG_LEVEL and --verbose adjust it.
const LogInfo = log.InfoLevel

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stderr   io.Writer
	settings *settings
	logSink  logSink
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), stderr: w}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pkgtrust <inputFile> <outputFile>",
		Short: "pkgtrust scores open-source packages on trust signals",
		Long: `pkgtrust reads GitHub repository URLs and npm package URLs, one per line,
scores each package on BusFactor, ResponsiveMaintainer, License, RampUp and
Correctness, and writes one NDJSON record per line to the output file and
standard output.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              usageArgs(2),
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = c.logSink.Close() },
		RunE:              c.runScore,
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "enable verbose logging")
	pf.String("config", "", "config file (default ./.pkgtrust.yaml or $HOME/.pkgtrust.yaml)")
	pf.String("cache-backend", string(cache.BackendNone), fmt.Sprintf("HTTP response cache backend %v", cache.Backends))
	pf.String("cache-dsn", "", "cache connection string: sqlite path, mysql/postgres DSN, redis address or mongo URI")
	pf.String("cache-dir", "", "directory for the file and sqlite cache backends")
	pf.Duration("cache-ttl", defaultCacheTTL, "lifetime of cached HTTP responses")
	pf.Float64("rate", 0, "maximum hosting API requests per second (0 = unlimited)")
	pf.Bool("concurrent", false, "run the metrics of each package in parallel")
	pf.String("profile", "", "scoring profile (TOML)")
	pf.String("work-dir", "", "parent directory for temporary clones (default system temp dir)")

	root.Flags().Bool("progress", false, "show a live progress view when stderr is a terminal")

	root.AddCommand(c.reportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// usageArgs requires exactly n positional arguments and prints usage
// when the count is wrong.
func usageArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			_ = cmd.Usage()
			return fmt.Errorf("accepts %d arg(s), received %d", n, len(args))
		}
		return nil
	}
}

// setup loads settings and configures logging before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	sink, err := openLogSink(c.stderr, s.LogFile, s.LogLevel, s.Verbose)
	if err != nil {
		return err
	}
	c.settings = s
	c.logSink = sink
	c.Logger.SetOutput(sink.w)
	c.Logger.SetLevel(sink.level)
	installLogHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// openCache opens the configured response cache.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.settings.cacheConfig()
	cc, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	loggerFromContext(ctx).Debug("cache opened", "backend", cfg.Backend)
	return cc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pkgtrust/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
