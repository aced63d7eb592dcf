package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/api"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/config"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/logging"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/presence"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/snapshot"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "growthpro-server",
	Short:         "Business dashboard API serving simulated online presence snapshots",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.Flags().String("port", "", "listen port (default 5001, env PORT)")
	rootCmd.Flags().StringP("loglevel", "l", "", "log level: debug, info, warn, error, fatal (env LOG_LEVEL)")
	rootCmd.Flags().String("catalog", "", "YAML headline catalog file, reloaded on change (env HEADLINE_CATALOG)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("Server failed: %v", err)
	}
}

// bindFlags lets flags take precedence over env and config file values
// when they are set on the command line.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		config.KeyPort:            "port",
		config.KeyLogLevel:        "loglevel",
		config.KeyHeadlineCatalog: "catalog",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", flag, err)
		}
	}
	return nil
}

func runServer(cmd *cobra.Command, args []string) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)
	log := logging.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rnd := presence.DefaultRandom()
	catalog := presence.DefaultCatalog()
	if cfg.HeadlineCatalog != "" {
		catalog, err = presence.LoadCatalog(cfg.HeadlineCatalog)
		if err != nil {
			return err
		}
	}
	templates := presence.NewHeadlineGenerator(rnd, catalog)

	var headlines presence.HeadlineWriter = templates
	if cfg.GeminiEnabled() {
		gemini, err := presence.NewGeminiWriter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer gemini.Close()
		headlines = presence.NewFallbackWriter(gemini, templates, log)
		log.WithField("model", cfg.GeminiModel).Info("AI headlines enabled")
	}

	svc := snapshot.NewService(presence.NewMetricsGenerator(rnd), headlines, snapshot.Options{
		SnapshotDelay: cfg.SnapshotDelay,
		HeadlineDelay: cfg.HeadlineDelay,
		Logger:        log,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(api.NewHandler(svc, log)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Business Dashboard API listening on %s", cfg.Addr())
		log.Infof("POST http://localhost:%s/business-data", cfg.Port)
		log.Infof("GET  http://localhost:%s/regenerate-headline", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if cfg.HeadlineCatalog != "" {
		watcher, err := presence.NewCatalogWatcher(cfg.HeadlineCatalog, templates, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return watcher.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
