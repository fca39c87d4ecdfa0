// Package api exposes the directory and triage pipeline over HTTP: a public
// surface for browsing and submissions, and a token-guarded admin surface
// for triage. Sessions, page rendering, and navigation live in the frontend;
// this layer is a thin adapter over the directory and triage packages.
package api

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/scamwatch/scamwatch-cli/internal/config"
	"github.com/scamwatch/scamwatch-cli/internal/directory"
	"github.com/scamwatch/scamwatch-cli/internal/triage"
)

// Server holds the pipeline components behind the HTTP surface.
type Server struct {
	store     directory.Store
	resolver  *directory.Resolver
	converter *triage.Converter
	bulk      *triage.BulkCoordinator
	cfg       config.ServerConfig
	region    string
	limiter   *ipLimiter
}

// NewServer wires the HTTP surface over a store.
func NewServer(store directory.Store, cfg config.ServerConfig, region string) *Server {
	return &Server{
		store:     store,
		resolver:  directory.NewResolver(store, region),
		converter: triage.NewConverter(store),
		bulk:      triage.NewBulkCoordinator(store),
		cfg:       cfg,
		region:    region,
		limiter:   newIPLimiter(rate.Limit(cfg.SubmitRPS), cfg.SubmitBurst),
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/businesses", s.listBusinesses)
		r.Get("/businesses/{id}", s.getBusiness)
		r.Get("/flagged-numbers", s.listFlaggedNumbers)
		r.Get("/flagged-numbers/lookup", s.lookupFlaggedNumber)
		r.Get("/reports/{reference}", s.getReportByReference)

		// Public submissions sit behind the per-IP limiter.
		r.Group(func(r chi.Router) {
			r.Use(s.limitSubmissions)
			r.Post("/businesses", s.createBusiness)
			r.Post("/businesses/{id}/reviews", s.createReview)
			r.Post("/reports", s.createReport)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/reports", s.adminListReports)
		r.Patch("/reports/{id}/status", s.adminSetReportStatus)
		r.Post("/reports/bulk-status", s.adminBulkReportStatus)
		r.Post("/reports/{id}/convert-flagged", s.adminConvertFlagged)
		r.Post("/reports/{id}/convert-review", s.adminConvertReview)

		r.Post("/businesses", s.adminCreateBusiness)
		r.Patch("/businesses/{id}", s.adminUpdateBusiness)
		r.Patch("/businesses/{id}/flag", s.adminSetBusinessFlag)

		r.Post("/flagged-numbers", s.adminCreateFlaggedNumber)
		r.Patch("/flagged-numbers/{id}/status", s.adminSetFlaggedNumberStatus)
		r.Delete("/flagged-numbers/{id}", s.adminDeleteFlaggedNumber)

		r.Patch("/reviews/{id}/status", s.adminSetReviewStatus)
	})

	return r
}

// requireAdmin guards the admin surface with the configured bearer token.
// Credential/session management proper is handled upstream; this is the
// service-to-service check.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" {
			writeError(w, http.StatusForbidden, "admin API is not configured")
			return
		}
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token != s.cfg.AdminToken {
			writeError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ipLimiter rate-limits public submissions per client IP.
type ipLimiter struct {
	mu    sync.Mutex
	perIP map[string]*rate.Limiter
	rps   rate.Limit
	burst int
}

func newIPLimiter(rps rate.Limit, burst int) *ipLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return &ipLimiter{
		perIP: make(map[string]*rate.Limiter),
		rps:   rps,
		burst: burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.perIP[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.perIP[ip] = lim
	}
	return lim.Allow()
}

func (s *Server) limitSubmissions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		if !s.limiter.allow(ip) {
			writeError(w, http.StatusTooManyRequests, "too many submissions, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
