// Package server hosts an HTTP preview of the backdrop: a settings API, a
// rendered frame endpoint, capability detection and a websocket that runs a
// navigation tracker per client.
package server

import (
	"context"
	"errors"
	"image/color"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"backdrop/internal/background"
	"backdrop/internal/core"
	"backdrop/internal/nav"
	"backdrop/internal/render"
	"backdrop/internal/settings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config holds server configuration. Lookahead, Threshold and Debounce are
// used as given; zero is a valid value for each.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Viewport       core.Viewport
	Backdrop       color.Color
	Seed           int64
	FPS            int
	Sections       []nav.Section
	Lookahead      float64
	Threshold      float64
	Debounce       time.Duration
	ReducedMotion  bool
	Logger         *slog.Logger
}

// Server owns the event loop shared by the preview engine and every
// websocket session.
type Server struct {
	cfg     Config
	store   *settings.Store
	loop    *core.Loop
	engine  *background.Engine
	surface *render.GG
	log     *slog.Logger
	router  chi.Router

	mu       sync.Mutex
	sessions map[string]*session

	httpServer *http.Server
}

// New creates a server for store. The preview engine starts hidden and only
// animates while a frame is being rendered.
func New(cfg Config, store *settings.Store) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Backdrop == nil {
		cfg.Backdrop = color.Black
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = nav.UniformLayout(nav.DefaultSections, 900).Sections
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		loop:     core.NewLoop(),
		log:      cfg.Logger,
		sessions: make(map[string]*session),
	}
	factory := render.GGFactory(cfg.Backdrop, func(g *render.GG) {
		if s.surface != nil {
			s.surface.Close()
		}
		s.surface = g
	})
	s.engine = background.NewEngine(s.loop, factory, store.Snapshot(), cfg.Viewport,
		background.WithLogger(cfg.Logger), background.WithSeed(cfg.Seed))
	s.engine.SetReducedMotion(cfg.ReducedMotion)
	s.engine.Start()
	s.engine.SetVisible(false)
	store.Subscribe(func(next settings.Settings) {
		s.loop.Post(func() { s.engine.Configure(next) })
	})
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/capabilities", s.handleCapabilities)
		r.Get("/frame.png", s.handleFrame)
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"bytes", ww.BytesWritten(), "took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Loop returns the event loop. It must be running for frame renders and
// websocket sessions to make progress.
func (s *Server) Loop() *core.Loop { return s.loop }

// Engine returns the preview engine.
func (s *Server) Engine() *background.Engine { return s.engine }

// Sessions reports the number of connected websocket clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run serves HTTP on the configured address and drives the loop until ctx
// is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.loop.Run(loopCtx, time.Second/time.Duration(s.cfg.FPS))

	errc := make(chan error, 1)
	go func() {
		s.log.Info("backdrop server listening", "addr", s.cfg.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
