package cli

import (
	"fmt"

	"careerpath/internal/config"
	"careerpath/internal/server"
	"careerpath/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume analysis",
	Long: `Start an HTTP server that provides REST API endpoints for resume analysis.

Available endpoints:
- POST /score: Score a resume against ATS criteria
- POST /match: Match a resume against a job description
- POST /analyze: Parse an uploaded document and score it
- POST /roadmap: Generate a career roadmap
- GET /history: Recent stored results for a session
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS is controlled with --tls-mode (disabled, server, mutual) together with
--cert-file and --key-file; --ca-file enables client certificate checks in
mutual mode.`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.StringP("port", "p", "", "Port to listen on (default from config)")
	flags.String("host", "", "Host to bind to (default from config)")
	flags.String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	flags.String("cert-file", "", "Server certificate file (PEM, overrides config)")
	flags.String("key-file", "", "Server private key file (PEM, overrides config)")
	flags.String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Flag values override both config file and environment
	for key, flagName := range map[string]string{
		"server.port":         "port",
		"server.host":         "host",
		"server.tls.mode":     "tls-mode",
		"server.tls.certfile": "cert-file",
		"server.tls.keyfile":  "key-file",
		"server.tls.cafile":   "ca-file",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			panic(err)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Re-validate TLS settings since flags may have changed them
	overridden := &config.Config{Server: cfg.Server}
	if err := overridden.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	// Open the history store when storage is enabled; the server treats
	// a nil store as history disabled.
	var st *store.Store
	if cfg.Storage.Enabled {
		var err error
		st, err = store.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Warn("Failed to close history store", "error", err.Error())
			}
		}()
		logger.Info("History storage enabled", "path", cfg.Storage.Path)
	} else {
		logger.Info("History storage disabled")
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: int64(cfg.App.MaxFileSize),
		RateLimit:      &cfg.Server.RateLimit,
	}
	return server.NewServer(cfg, serverCfg, st, logger).Start()
}
