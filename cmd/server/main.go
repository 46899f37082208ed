package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/liveguide/internal/api"
	"github.com/good-yellow-bee/liveguide/internal/api/health"
	"github.com/good-yellow-bee/liveguide/internal/guide"
	"github.com/good-yellow-bee/liveguide/internal/metrics"
	"github.com/good-yellow-bee/liveguide/internal/seed"
	"github.com/good-yellow-bee/liveguide/internal/storage"
	"github.com/good-yellow-bee/liveguide/pkg/config"
)

var (
	configFile string
	httpAddr   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "liveguide-server",
	Short: "LiveGuide Server - component guide backend",
	Long: `LiveGuide Server holds the component guide state machine and serves
the project, preview, export, and share APIs.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("liveguide-server %s\n", config.Version)
		fmt.Printf("  commit: %s\n", config.Commit)
		fmt.Printf("  built:  %s\n", config.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP API listen address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg *Config

	// Load configuration from file if provided
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = DefaultConfig()
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.Server.Address = httpAddr
	}
	cfg.Verbose = verbose

	// Get JWT secret from environment
	jwtSecret := os.Getenv("LIVEGUIDE_JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("LIVEGUIDE_JWT_SECRET environment variable is required")
	}
	if cfg.Auth.Username == "" || cfg.Auth.PasswordHash == "" {
		return fmt.Errorf("auth.username and auth.password_hash are required (generate a hash with `guidectl hash`)")
	}

	// Auto-create state directory
	stateDir := filepath.Dir(cfg.Storage.StatePath)
	if err := os.MkdirAll(stateDir, 0750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	// Local state store and optional SQLite mirror
	state := storage.NewLocalStore(cfg.Storage.StatePath)

	var mirror storage.Mirror
	if cfg.Storage.MirrorPath != "" {
		m := storage.NewSQLiteMirror(cfg.Storage.MirrorPath)
		if err := m.Open(); err != nil {
			return fmt.Errorf("open mirror: %w", err)
		}
		defer m.Close()
		mirror = m
		log.Printf("mirror initialized at %s", cfg.Storage.MirrorPath)
	}

	// Template seeds and the guide store
	seeds := seed.NewLoader(cfg.Templates.Dir)
	store := guide.NewStore(seeds, state, mirror)
	if err := store.Open(); err != nil {
		return fmt.Errorf("open guide store: %w", err)
	}
	log.Printf("guide state loaded from %s", cfg.Storage.StatePath)

	// Build API server config
	apiCfg := &api.Config{
		Address:          cfg.Server.Address,
		JWTSecret:        []byte(jwtSecret),
		AuthUsername:     cfg.Auth.Username,
		AuthPasswordHash: cfg.Auth.PasswordHash,
		HTTPTLSEnabled:   cfg.Server.TLS.Enabled,
		HTTPTLSCertFile:  cfg.Server.TLS.CertFile,
		HTTPTLSKeyFile:   cfg.Server.TLS.KeyFile,
		AccessTokenTTL:   mustDuration(cfg.Auth.AccessTokenTTL),
		RefreshTokenTTL:  mustDuration(cfg.Auth.RefreshTokenTTL),
		RateLimitPerIP:   cfg.Auth.RateLimitPerIP,
		RateLimitPerUser: cfg.Auth.RateLimitPerUser,
		LockoutThreshold: cfg.Auth.LockoutThreshold,
		LockoutDuration:  mustDuration(cfg.Auth.LockoutDuration),
		Verbose:          cfg.Verbose,
	}

	srv, err := api.New(apiCfg, store)
	if err != nil {
		return fmt.Errorf("create API server: %w", err)
	}
	srv.RegisterHealthChecker(health.NewStateDirChecker(cfg.Storage.StatePath))
	if mirror != nil {
		srv.RegisterHealthChecker(health.NewMirrorChecker(mirror))
	}

	metricsSrv := metrics.NewServer(cfg.Server.MetricsAddress)
	metrics.SetBuildInfo(config.Version, config.Commit, config.BuildTime)

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	log.Printf("starting liveguide-server %s", config.Version)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(ctx)
	})

	g.Go(func() error {
		return metricsSrv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	// Reload seeds on disk changes so pristine template views refresh.
	if cfg.Templates.Dir != "" && cfg.Templates.Watch {
		g.Go(func() error {
			return seeds.Watch(ctx, store.InvalidateTemplate)
		})
	}

	// Periodic mirror sync
	if mirror != nil {
		interval := mustDuration(cfg.Storage.MirrorSyncInterval)
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					synced, failed := store.SyncMirror(ctx)
					if failed > 0 {
						log.Printf("mirror sync: %d synced, %d failed", synced, failed)
					} else if cfg.Verbose {
						log.Printf("mirror sync: %d synced", synced)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Printf("server stopped")
	return nil
}
