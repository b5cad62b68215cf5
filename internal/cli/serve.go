package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordgrove/wordgrove/pkg/pipeline"
	"github.com/wordgrove/wordgrove/pkg/server"
)

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server computes, stores, and renders layouts over HTTP. Backends are
configured via a TOML file at ~/.config/wordgrove/config.toml (or --config):

	addr = ":8080"

	[cache]
	backend = "file"        # file, redis, none
	# url = "redis://localhost:6379/0"

	[store]
	backend = "memory"      # memory, mongo
	# uri = "mongodb://localhost:27017"

Without a config file the server uses the file cache and an in-memory store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path")

	return cmd
}

// runServe assembles the backends and runs the server until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr, configFile string) error {
	cfg, err := loadServeConfig(configFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	cacheBackend, err := cfg.Cache.openCache()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cacheBackend.Close()

	layoutStore, err := cfg.Store.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer layoutStore.Close(ctx)

	c.Logger.Info("starting server",
		"addr", cfg.Addr,
		"cache", backendName(cfg.Cache.Backend, "file"),
		"store", backendName(cfg.Store.Backend, "memory"))

	srv := server.New(server.Config{
		Addr:   cfg.Addr,
		Store:  layoutStore,
		Runner: pipeline.NewRunner(cacheBackend, nil, c.Logger),
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx)
}

// backendName resolves the display name for an optional backend setting.
func backendName(configured, fallback string) string {
	if configured == "" {
		return fallback
	}
	return configured
}
