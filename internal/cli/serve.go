package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/growthchart/internal/server"
	"github.com/matzehuels/growthchart/pkg/cache"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and charts over HTTP",
		Long: `Serve layouts and charts over HTTP.

Endpoints:
  GET  /healthz
  GET  /version
  POST /v1/layout            {"data": ..., "config": {...}}
  POST /v1/render/{format}   same body; ?title=...&scale=...

The request config is merged over the [layout] section of the config file.
A request whose layout fails gets status 422.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			ch, err := newCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "server:"), loggerFromContext(ctx))
			runner.LayoutTTL = cfg.Cache.TTLOr(cache.TTLLayout)
			defer runner.Close()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			if addr == "" {
				addr = server.DefaultAddr
			}
			backend := cfg.Cache.Backend
			if noCache {
				backend = cache.BackendNone
			} else if backend == "" {
				backend = cache.BackendFile
			}
			printInfo("Listening on %s", StyleLink.Render("http://"+addr))
			printKeyValue("Cache", backend)
			printKeyValue("Chart type", cfg.Layout.Chart.Type)
			return server.New(runner, cfg, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
