package serve

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/speedkit/lcpboost/internal/common"
	"github.com/speedkit/lcpboost/pkg/caching"
	"github.com/speedkit/lcpboost/pkg/db"
)

// ServeAction starts the HTTP server.
func ServeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("listen") {
		cfg.ListenAddr = c.String("listen")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if cfg.HomeURL == "" {
		return fmt.Errorf("home_url must be set in the config")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTLDuration())
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}

	opt := common.NewOptimizer(cfg, database)
	srv := &Server{
		Logger: logger,
		Opt:    opt,
		Sink:   database,
		Cache:  cache,
	}

	logger.Info("listening",
		"addr", cfg.ListenAddr,
		"db", database.Path(),
		"home_url", cfg.HomeURL,
	)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
