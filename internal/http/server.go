package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	applog "ledgerview/internal/log"
	"ledgerview/internal/middleware/ratelimit"
	"ledgerview/internal/middleware/security"
	"ledgerview/internal/middleware/trace"
	"ledgerview/internal/view"
	appweb "ledgerview/web"
)

// staticMaxAge is the Cache-Control max-age of embedded assets, in seconds.
const staticMaxAge = 3600

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *applog.Logger
}

// Server serves the page and the view event endpoints.
type Server struct {
	http.Server
	templates *template.Template
	views     *view.Registry
	logger    *applog.Logger
	errLog    *applog.StructuredLogger

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// server.
func NewServer(addr string, views *view.Registry, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}

	t, err := appweb.ParseTemplates(templateFuncs())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := appweb.Static()
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	limits := ratelimit.DefaultConfig()
	if opts.RateLimitRPS > 0 {
		limits.RequestsPerSecond = opts.RateLimitRPS
	}
	if opts.RateLimitBurst > 0 {
		limits.Burst = opts.RateLimitBurst
	}

	s := &Server{
		templates: t,
		views:     views,
		logger:    logger.WithComponent(applog.ComponentHTTP),
		errLog:    applog.NewStructuredLogger(logger),
		limiter:   ratelimit.NewLimiter(limits),
		detector:  security.NewDetector(logger),
	}
	s.tracer = trace.NewMiddleware(logger.WithComponent(applog.ComponentTrace), s.detector.ExtractClientIP)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.routes(static),
	}
	s.logger.Debug("HTTP server configured",
		"addr", addr,
		"rate_limit_rps", limits.RequestsPerSecond,
		"rate_limit_burst", limits.Burst)
	return s, nil
}

func (s *Server) routes(static fs.FS) http.Handler {
	r := chi.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.flagSuspicious)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	r.With(security.StaticAssetMiddleware(staticMaxAge)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", s.handleIndex)

	r.Route("/views/{viewID}", func(r chi.Router) {
		r.With(s.rateLimited).Post("/filters", s.handleFilters)
		r.With(s.rateLimited).Post("/select", s.handleSelect)
		r.Get("/chart", s.handleChartPartial)
	})
	r.Get("/api/views/{viewID}/chart", s.handleChartJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("Page not found").Write(w)
	})
	return r
}

func (s *Server) flagSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.detector.DetectSuspiciousRequest(r)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(),
			"Rate limit exceeded",
			applog.FieldClientIP, s.detector.ExtractClientIP(r),
			applog.FieldPath, r.URL.Path)
		TooManyRequestsError("Too many requests. Please slow down.").Write(w)
	})(next)
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
