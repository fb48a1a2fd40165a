package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kgrid-demos/score/assessments"
	"github.com/kgrid-demos/score/config"
	"github.com/kgrid-demos/score/logging"
	"github.com/kgrid-demos/score/score"
	"github.com/kgrid-demos/score/server"
	"github.com/kgrid-demos/score/service"
	"github.com/spf13/cobra"
	"gopkg.in/mgo.v2"
)

func newServeCmd() *cobra.Command {
	var configPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the SCORE risk service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	return serveCmd
}

func serve(ctx context.Context, cfg config.Config) error {
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	appLogger := logging.Logger(logging.SourceApp)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	region, _ := score.ParseRiskCategory(cfg.RiskRegion)
	svc := service.NewReferenceRiskService(store)
	svc.RegisterPlugin(assessments.NewSCOREPlugin(region))

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = discoverSelf(cfg.Listen)
	}
	basePieURL := strings.TrimSuffix(baseURL, "/") + "/pies"

	fnDelayer := server.NewFunctionDelayer(cfg.CalculateDelay)
	defer fnDelayer.Stop()

	e := server.New()
	server.RegisterRoutes(e, store, basePieURL, svc, fnDelayer, server.NewMetrics())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("listening", "addr", cfg.Listen, "pies", basePieURL, "store", cfg.Store, "region", cfg.RiskRegion)
		errCh <- e.Start(cfg.Listen)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStore(cfg config.Config) (service.AssessmentStore, func(), error) {
	if cfg.Store == config.StoreMemory {
		return service.NewMemoryStore(), func() {}, nil
	}

	session, err := mgo.DialWithTimeout(cfg.Mongo.Host, 10*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("can't connect to the database at %s: %w", cfg.Mongo.Host, err)
	}
	store := service.NewMongoStore(session.DB(cfg.Mongo.Database))
	if err := store.EnsureIndexes(); err != nil {
		session.Close()
		return nil, nil, err
	}
	return store, session.Close, nil
}

// discoverSelf guesses the URL other hosts can reach this service at from
// the host's IPv4 address and the port the service listens on.
func discoverSelf(listen string) string {
	_, port, err := net.SplitHostPort(listen)
	if err != nil || port == "" {
		port = "9000"
	}
	selfURL := "http://localhost:" + port + "/"

	host, err := os.Hostname()
	if err != nil {
		return selfURL
	}
	addrs, err := net.LookupIP(host)
	if err != nil {
		logging.Logger(logging.SourceApp).Warn("Unable to lookup IP based on hostname, defaulting to localhost.", "host", host)
		return selfURL
	}
	for _, addr := range addrs {
		if ipv4 := addr.To4(); ipv4 != nil && !ipv4.IsLoopback() {
			selfURL = "http://" + ipv4.String() + ":" + port + "/"
		}
	}
	return selfURL
}
