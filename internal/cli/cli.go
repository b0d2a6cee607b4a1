// Package cli implements the heatmatrix command-line interface.
//
// The CLI turns COMETS results objects into render-ready heatmap figures.
// It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: compute the heatmap (and dendrogram) figures of one or more inputs
//   - import: convert an XLSX or CSV effect table into a results object
//   - inspect: summarise a results object before drawing it
//   - preview: explore a results object interactively in the terminal
//   - cache: manage the figure and import cache
//
// # Configuration
//
// Settings come from a TOML or YAML file (--config), then a .env file and
// HEATMATRIX_* environment variables, then command flags.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cometsanalytics/heatmatrix/internal/config"
	"github.com/cometsanalytics/heatmatrix/pkg/buildinfo"
	"github.com/cometsanalytics/heatmatrix/pkg/cache"
	"github.com/cometsanalytics/heatmatrix/pkg/observability"
	"github.com/cometsanalytics/heatmatrix/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "heatmatrix"

	// defaultConfigFile is read when --config is not given. A missing file
	// yields the built-in defaults.
	defaultConfigFile = "heatmatrix.toml"

	// defaultEnvFile is read when --env-file is not given.
	defaultEnvFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.DefaultConfig(),
	}
}

// newLogger creates a logger with timestamps formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath, envFile string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Heatmatrix lays out COMETS results as heatmap figures",
		Long:         `Heatmatrix turns the effect records of a COMETS results object into render-ready heatmap and dendrogram figures.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(configPath, envFile); err != nil {
				return err
			}
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile, "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file with HEATMATRIX_* settings")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(path, envFile string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(envFile); err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cache, nil, c.Logger)
	runner.TTL = c.Config.CacheTTL()
	return runner, nil
}

// newCache opens the configured cache backend. An unreachable Redis server
// or an unknown home directory disables caching instead of failing.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		mc, err := cache.NewMemoryCache(c.Config.Cache.MemoryEntries)
		if err != nil {
			return nil, err
		}
		return mc, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
		if stderrors.Is(err, cache.ErrUnavailable) {
			c.Logger.Warn("caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		if err != nil {
			return nil, err
		}
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/heatmatrix/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
