// Package serve provides the command that runs the quotebook HTTP server.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/quotebook/internal/appcontext"
	"github.com/agentstation/quotebook/internal/server"
	"github.com/agentstation/quotebook/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "remote",
		Short:   "Serve the collection over HTTP with live updates",
		Long: `Serve exposes the collection as a REST API with WebSocket (/ws) and
Server-Sent Events (/events) streams of list changes. Periodic syncs run
while serving unless auto_sync is false or --no-sync is given.

The GET /quotes endpoint returns {"data": [...]}, so another quotebook can
use this server as its remote with remote_items_path "data" and
remote_text_path "text".`,
		Example: `  quotebook serve
  quotebook serve --addr :3000 --token secret
  quotebook serve --cors-origins https://example.com --rate-limit 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	defaults := server.DefaultConfig()
	cfg := app.Config()

	cmd.Flags().String("addr", cfg.ServeAddr, "listen address")
	cmd.Flags().String("token", "", "API token required for mutating requests (default from QUOTEBOOK_SERVE_TOKEN)")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "authentication header name")
	cmd.Flags().StringSlice("cors-origins", defaults.CORSOrigins, "allowed CORS origins")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "response cache TTL")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("no-sync", false, "do not run periodic syncs")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface) error {
	c, err := app.Client()
	if err != nil {
		return err
	}
	cfg, noSync := parseConfig(cmd, app)
	logger := app.Logger()

	if app.Config().AutoSync && !noSync {
		if err := c.AutoUpdatesOn(); err != nil {
			return err
		}
		logger.Info().Dur("interval", app.Config().SyncInterval).Msg("Periodic sync enabled")
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Bool("auth", cfg.Token != "").
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting quotebook server")

	srv := server.New(c, nil, logger, cfg)
	return srv.ListenAndServe(cmd.Context(), constants.ShutdownTimeout)
}

// parseConfig reads the flags into a server configuration.
func parseConfig(cmd *cobra.Command, app appcontext.Interface) (server.Config, bool) {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()

	cfg.Addr, _ = flags.GetString("addr")
	if !flags.Changed("addr") {
		// --config may have been applied after the flag defaults were set.
		cfg.Addr = app.Config().ServeAddr
	}
	cfg.Token, _ = flags.GetString("token")
	if cfg.Token == "" {
		cfg.Token = app.Config().ServeToken
	}
	cfg.AuthHeader, _ = flags.GetString("auth-header")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	cfg.RateLimit, _ = flags.GetInt("rate-limit")
	cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")
	cfg.Version = app.Version()
	noSync, _ := flags.GetBool("no-sync")

	return cfg, noSync
}
