package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgtrust/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		Args:  usageArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings.cacheConfig()
			if cfg.Backend == cache.BackendNone {
				printInfo("Caching is disabled (--cache-backend none)")
				return nil
			}

			cc, err := c.openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", cfg.Backend)
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear %s cache: %w", cfg.Backend, err)
			}
			prog.done("cache cleared")

			printSuccess("Cleared %s cache", cfg.Backend)
			printDetail("Location: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  usageArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(c.settings.cacheConfig()))
			return err
		},
	}
}

// cacheLocation describes where a backend keeps its entries.
func cacheLocation(cfg cache.Config) string {
	switch cfg.Backend {
	case cache.BackendFile:
		return filepath.Join(cfg.Dir, "http")
	case cache.BackendSQLite:
		if cfg.DSN != "" {
			return cfg.DSN
		}
		return filepath.Join(cfg.Dir, "cache.db")
	case cache.BackendNone:
		return cfg.Dir
	default:
		return cfg.DSN
	}
}
