// Command vexdb runs the vexdb vector database server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vexdb/vexdb"
	"github.com/vexdb/vexdb/internal/api"
	"github.com/vexdb/vexdb/internal/config"
	"github.com/vexdb/vexdb/internal/version"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "vexdb",
	Short:   "In-memory vector database server",
	Version: version.Full(),
	Long: `vexdb is an in-memory vector database that stores fixed-dimensionality
float32 vectors with metadata and serves exact k-nearest-neighbor search
under cosine, euclidean, dot-product, and manhattan metrics over HTTP.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vexdb %s\n", version.Version)
		fmt.Printf("  commit:  %s\n", version.Commit)
		fmt.Printf("  built:   %s\n", version.Date)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the vexdb HTTP server",
	Long: `Start the vexdb HTTP server.

Configuration is read from vexdb.yaml (or --config), VEXDB_* environment
variables, and flags, in increasing priority.`,
	RunE: runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	serveCmd.Flags().String("host", "", "server bind address")
	serveCmd.Flags().Int("port", 0, "server port")
	serveCmd.Flags().Int("dimensions", 0, "vector dimensionality")

	rootCmd.AddCommand(versionCmd, serveCmd, configCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Flags override file and environment.
	if f := cmd.Flags().Lookup("host"); f != nil && f.Changed {
		cfg.Server.Host = f.Value.String()
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		if p, err := cmd.Flags().GetInt("port"); err == nil {
			cfg.Server.Port = p
		}
	}
	if f := cmd.Flags().Lookup("dimensions"); f != nil && f.Changed {
		if d, err := cmd.Flags().GetInt("dimensions"); err == nil {
			cfg.Dimensions = d
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSlogLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newSlogLogger(cfg)
	if err != nil {
		return err
	}

	db, err := vexdb.New(cfg.Dimensions,
		vexdb.WithLogger(vexdb.NewLogger(logger.Handler())),
		vexdb.WithMaxListLimit(cfg.Limits.MaxListLimit),
	)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}

	server := api.NewServer(db, api.Options{
		Addr:             cfg.Server.Addr(),
		RequestTimeout:   cfg.Server.RequestTimeout,
		RateLimit:        cfg.Server.RateLimit,
		RateBurst:        cfg.Server.RateBurst,
		DefaultListLimit: cfg.Limits.DefaultListLimit,
		Logger:           logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("vexdb started",
		"addr", cfg.Server.Addr(),
		"dimensions", cfg.Dimensions,
		"version", version.Version,
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
