// apps/go-rules/internal/httpserver/server.go
//
// HTTP server wiring for the Wordle rules engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Diagnostics: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Archive endpoint: GET /games/recent (when a history store is configured).
//
// Notes:
//   - Every game gets a signed token at creation; guesses must present it.
//   - Guesses on one game are serialised with a per-game lock, since
//     game.Game itself is single-owner.
//   - The secret word is only revealed once the game has ended.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
	"github.com/robalobadob/wordle/apps/go-rules/internal/history"
	"github.com/robalobadob/wordle/apps/go-rules/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-rules/internal/store"
	"github.com/robalobadob/wordle/apps/go-rules/internal/words"
)

// Options carries the game and transport settings the server needs.
type Options struct {
	MaxGuesses       int
	Scoring          game.ScoringMode
	WordMode         string // label for metrics: "random" | "daily"
	JWTSecret        string
	TokenTTL         time.Duration
	ClientOrigin     string
	AllowFixedAnswer bool
	RequestTimeout   time.Duration
}

// Deps are the collaborators the server is built from.
type Deps struct {
	Store    store.Store
	Dict     *words.List       // dictionary, used for fixed answers and /debug/words
	Provider game.WordProvider // deals secret words for new games
	History  *history.Store    // optional archive of finished games
	Registry *prometheus.Registry
}

// Server bundles router, game store and collaborators.
type Server struct {
	r        *chi.Mux
	store    store.Store
	dict     *words.List
	provider game.WordProvider
	history  *history.Store
	metrics  *metrics.Metrics
	opts     Options
	validate *validator.Validate
	locks    sync.Map // game ID → *sync.Mutex
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps, opts Options) *Server {
	if opts.MaxGuesses <= 0 {
		opts.MaxGuesses = game.DefaultMaxGuesses
	}
	if opts.Scoring == "" {
		opts.Scoring = game.ScoringSimple
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    d.Store,
		dict:     d.Dict,
		provider: d.Provider,
		history:  d.History,
		metrics:  metrics.New(reg),
		opts:     opts,
		validate: validator.New(),
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-rules","endpoints":["/health","/metrics","POST /game/new","POST /game/guess","GET /game/{id}","DELETE /game/{id}","GET /games/recent"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := 0, 0
		if s.dict != nil {
			a, g = s.dict.Stats()
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleBoard)
	s.r.Delete("/game/{id}", s.handleAbandon)
	s.r.Get("/games/recent", s.handleRecent)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router (used by the serve command and tests).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return err
		}
		return nil
	}
}

// lockGame returns the unlock func for the per-game mutex.
func (s *Server) lockGame(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// forgetGame drops the per-game mutex once the game can no longer change.
// A waiter still holding the old mutex only sees a finished or missing game.
func (s *Server) forgetGame(id string) { s.locks.Delete(id) }

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
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
