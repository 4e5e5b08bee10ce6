package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jvalaj/gridai/pkg/cache"
	"github.com/jvalaj/gridai/pkg/server"
	"github.com/jvalaj/gridai/pkg/store"
)

const serveShutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		redisAddr     string
		mongoURI      string
		configPath    string
		engineName    string
		engineTimeout int
		cacheTTL      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Serves layout computation and diagram storage under /api/v1. Without
--redis and --mongo the server uses in-memory caching and storage,
which is fine for local development but loses everything on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveParams{
				addr:          addr,
				redisAddr:     redisAddr,
				mongoURI:      mongoURI,
				configPath:    configPath,
				engineName:    engineName,
				engineTimeout: engineTimeout,
				cacheTTL:      cacheTTL,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for layout caching (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for diagram storage (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&configPath, "config", "", "layout config TOML file")
	cmd.Flags().StringVar(&engineName, "engine", engineDot, "external layout engine: dot (default), none")
	cmd.Flags().IntVar(&engineTimeout, "engine-timeout", defaultEngineTimeout, "timeout in seconds for the external engine")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", server.DefaultCacheTTL, "how long computed layouts stay cached")

	return cmd
}

type serveParams struct {
	addr          string
	redisAddr     string
	mongoURI      string
	configPath    string
	engineName    string
	engineTimeout int
	cacheTTL      time.Duration
}

// runServe wires the cache, store and engine together and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, p serveParams) error {
	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", p.configPath, err)
	}

	eng, err := newEngine(cfg, p.engineName, p.engineTimeout, c.Logger)
	if err != nil {
		return err
	}

	var layoutCache cache.Cache
	if p.redisAddr != "" {
		layoutCache, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: p.redisAddr})
		if err != nil {
			return fmt.Errorf("connect to redis at %s: %w", p.redisAddr, err)
		}
		c.Logger.Info("Using redis cache", "addr", p.redisAddr)
	} else {
		layoutCache = cache.NewMemoryCache()
		c.Logger.Debug("Using in-memory cache")
	}
	defer layoutCache.Close()

	var diagramStore store.Store
	if p.mongoURI != "" {
		diagramStore, err = store.NewMongoStore(ctx, store.MongoConfig{URI: p.mongoURI})
		if err != nil {
			return fmt.Errorf("connect to mongodb: %w", err)
		}
		c.Logger.Info("Using mongodb store", "database", store.DefaultDatabase)
	} else {
		diagramStore = store.NewMemoryStore()
		c.Logger.Debug("Using in-memory store")
	}
	defer diagramStore.Close(context.Background())

	srv := server.New(server.Options{
		Engine:       eng,
		Store:        diagramStore,
		Cache:        layoutCache,
		Logger:       c.Logger,
		LayoutConfig: cfg,
		EngineName:   p.engineName,
		CacheTTL:     p.cacheTTL,
	})

	httpServer := &http.Server{
		Addr:    p.addr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	printInfo("Listening on %s", p.addr)
	c.Logger.Info("Server started", "addr", p.addr, "engine", p.engineName)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
