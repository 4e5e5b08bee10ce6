// Package server exposes layout computation over HTTP for the chat
// backend.
//
// The API is versioned under /api/v1:
//
//	POST   /api/v1/layout              compute a layout without persisting
//	GET    /api/v1/diagrams            list stored diagram ids
//	PUT    /api/v1/diagrams/{id}       store a spec and compute its layout
//	GET    /api/v1/diagrams/{id}       fetch a stored diagram with layout
//	DELETE /api/v1/diagrams/{id}       remove a stored diagram
//	GET    /api/v1/diagrams/{id}/svg   render a stored diagram as SVG
//	GET    /healthz                    liveness probe
//
// Layout results are cached keyed by a hash of the cleaned spec and the
// config in effect, so repeated layout requests for an unchanged diagram
// skip recomputation.
package server

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jvalaj/gridai/pkg/cache"
	"github.com/jvalaj/gridai/pkg/layout"
	"github.com/jvalaj/gridai/pkg/store"
)

// DefaultCacheTTL bounds how long computed layouts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Options configures a Server. Zero-value fields get working defaults:
// a pure-strategy engine, an in-memory store and no caching.
type Options struct {
	Engine       *layout.Engine
	Store        store.Store
	Cache        cache.Cache
	Keyer        cache.Keyer
	Logger       *log.Logger
	LayoutConfig layout.Config
	EngineName   string // cache key component, e.g. "dot"
	CacheTTL     time.Duration
}

// Server handles layout API requests.
type Server struct {
	engine     *layout.Engine
	store      store.Store
	cache      cache.Cache
	keyer      cache.Keyer
	logger     *log.Logger
	cfg        layout.Config
	engineName string
	cacheTTL   time.Duration
	cfgHash    string
}

// New creates a server from options.
func New(opts Options) *Server {
	if opts.LayoutConfig == (layout.Config{}) {
		opts.LayoutConfig = layout.DefaultConfig()
	}
	if opts.Engine == nil {
		opts.Engine = layout.NewEngine(opts.LayoutConfig, nil)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	return &Server{
		engine:     opts.Engine,
		store:      opts.Store,
		cache:      cache.Instrument(opts.Cache, "layout"),
		keyer:      opts.Keyer,
		logger:     opts.Logger,
		cfg:        opts.LayoutConfig,
		engineName: opts.EngineName,
		cacheTTL:   opts.CacheTTL,
		cfgHash:    configHash(opts.LayoutConfig),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/", s.handleListDiagrams)
			r.Put("/{id}", s.handlePutDiagram)
			r.Get("/{id}", s.handleGetDiagram)
			r.Delete("/{id}", s.handleDeleteDiagram)
			r.Get("/{id}/svg", s.handleDiagramSVG)
		})
	})

	return r
}
