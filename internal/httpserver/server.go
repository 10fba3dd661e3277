// internal/httpserver/server.go
//
// HTTP server wiring for the daily puzzle backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     request logging, CORS).
//   - Public endpoints: "/", "/health".
//   - Puzzle API mounted under /api (see routes_api.go).
//   - Thin static serving of the client, with raw media directories blocked
//     so answers cannot be discovered by guessing file paths.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - JSON is the default content type inside /api only; static files keep
//     their sniffed types.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/NRay7882/astrogoblin-wordle/internal/service"
)

const (
	handlerTimeout    = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures the HTTP surface.
type Options struct {
	ClientOrigin string   // CORS origin; defaults to http://localhost:5173
	StaticDir    string   // client root; empty disables static serving
	MediaDirs    []string // local media roots; blocked if under StaticDir
}

// Server bundles router and puzzle service.
type Server struct {
	r   *chi.Mux
	svc *service.Service
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *service.Service, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc}

	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)               // add X-Request-ID
	s.r.Use(chimw.RealIP)                  // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                 // zerolog access log
	s.r.Use(chimw.Recoverer)               // recover from panics
	s.r.Use(chimw.Timeout(handlerTimeout)) // bound handler time
	s.r.Use(cors(opts.ClientOrigin))       // credentials-friendly CORS

	// Raw media directories are only reachable through /api.
	s.r.Use(blockMedia(mediaPrefixes(opts.StaticDir, opts.MediaDirs)))

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.mountAPI()

	if opts.StaticDir != "" {
		s.r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	} else {
		s.r.Get("/", s.handleIndex)
		// JSON 404 for easier debugging
		s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	}

	return s
}

// Start serves HTTP on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleIndex describes the service when no client is served.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	total, available, cached, vocab := s.svc.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"service":        "daily-puzzle",
		"totalPuzzles":   total,
		"totalAvailable": available,
		"cachedAssets":   cached,
		"vocabulary":     vocab,
		"endpoints": []string{
			"/health", "/api/today", "/api/puzzle/{id}", "POST /api/guess", "/api/puzzles/list",
			"POST /api/reveal", "/api/answer-image/{id}", "/api/sounds/{filename}",
		},
	})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// blockMedia rejects any path under the given URL prefixes with 403.
func blockMedia(prefixes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := strings.ToLower(path.Clean("/" + r.URL.Path))
			for _, pre := range prefixes {
				if p == pre || strings.HasPrefix(p, pre+"/") {
					writeError(w, http.StatusForbidden, "forbidden")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// mediaPrefixes returns the URL prefixes that must never be served
// statically: the conventional media paths plus any media directory that
// lives inside the static root.
func mediaPrefixes(staticDir string, mediaDirs []string) []string {
	out := []string{"/images/answers", "/sounds"}
	if staticDir == "" {
		return out
	}
	root, err := filepath.Abs(staticDir)
	if err != nil {
		return out
	}
	for _, d := range mediaDirs {
		if d == "" {
			continue
		}
		abs, err := filepath.Abs(d)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		out = append(out, strings.ToLower(path.Clean("/"+filepath.ToSlash(rel))))
	}
	return out
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
