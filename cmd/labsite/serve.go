package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/config"
	"github.com/matsen/labsite/internal/contact"
	"github.com/matsen/labsite/internal/content"
	"github.com/matsen/labsite/internal/server"
	"github.com/matsen/labsite/internal/theme"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the publications API and interactive section fragments",
	Long: `Serve the lab site over HTTP.

Routes:
  GET  /healthz
  GET  /api/publications?orcid=ID
  GET  /api/theme, POST /api/theme
  POST /api/contact
  GET  /fragments/{publications,faq,projects,opportunities,team,header}`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	var runner chain.Runner = newChain(cfg, logger)
	ttl, _ := cfg.CacheTTL()
	if ttl > 0 {
		runner = chain.NewCachedRunner(runner, ttl, logger)
	}

	var themes theme.Scoper
	if cfg.ThemeDB != "" {
		store, err := theme.OpenSQLite(config.ExpandPath(cfg.ThemeDB))
		if err != nil {
			exitWithError(ExitConfigError, "opening theme database: %v", err)
		}
		defer store.Close()
		themes = store
	} else {
		themes = theme.NewMemoryStore()
	}

	site, err := content.Load(config.ExpandPath(cfg.ContentFile))
	if err != nil {
		exitWithError(ExitConfigError, "loading content: %v", err)
	}

	var submitter *contact.Submitter
	if cfg.Contact.Endpoint != "" {
		submitter = contact.NewSubmitter(cfg.Contact.Endpoint, contact.WithLogger(logger))
	}

	srv := server.New(server.Config{
		Port:         cfg.Server.Port,
		AllowAll:     cfg.Server.AllowAllOrigins,
		DefaultORCID: cfg.ORCIDID,
	}, server.Deps{
		Runner:  runner,
		Themes:  themes,
		Content: site,
		Contact: submitter,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("server shutdown")
		}
	}()

	logger.WithField("theme_db", cfg.ThemeDB).WithField("cache_ttl", ttl.String()).Debug("server configured")
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitWithError(ExitError, "server: %v", err)
	}
}
