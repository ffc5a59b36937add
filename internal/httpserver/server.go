// internal/httpserver/server.go
//
// HTTP server wiring for the vocab bingo backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/lists".
//   - Session endpoints (optional auth): /sessions/*.
//   - Results endpoints: /results (public), /results/mine (require auth).
//   - Auth endpoints: /auth/*.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the player when a valid token is
//     present; guests get a stable anonymous cookie instead.
//   - Results and Players may be nil; the routes that need them answer 503.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab-bingo/internal/config"
	"github.com/robalobadob/vocab-bingo/internal/game"
	"github.com/robalobadob/vocab-bingo/internal/players"
	"github.com/robalobadob/vocab-bingo/internal/results"
	"github.com/robalobadob/vocab-bingo/internal/store"
	"github.com/robalobadob/vocab-bingo/internal/words"
)

// ResultLog is the finished-session log.
type ResultLog interface {
	Insert(ctx context.Context, r results.Result) error
	Leaderboard(ctx context.Context, listID string, limit int) ([]results.Result, error)
	ForPlayer(ctx context.Context, userID string, limit int) ([]results.Result, error)
	ClaimAnonymous(ctx context.Context, anonID, userID string) error
}

// Accounts is the player service used by the auth routes.
type Accounts interface {
	Signup(ctx context.Context, username, password string) (*players.Player, error)
	Login(ctx context.Context, username, password string) (*players.Player, error)
	FindByID(ctx context.Context, id string) (*players.Player, error)
	BumpStats(ctx context.Context, id string, won bool) error
	Sign(p *players.Player) (string, time.Time, error)
	Parse(token string) (*players.Claims, error)
}

// Deps are the collaborators a Server needs. Clock and Now default to the
// system clock.
type Deps struct {
	Config   config.Config
	Sessions store.Store
	Catalog  *words.Catalog
	Results  ResultLog
	Players  Accounts
	Clock    game.Clock
	Now      func() time.Time
}

// Server bundles the router and its dependencies.
type Server struct {
	r *chi.Mux
	Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Clock == nil {
		d.Clock = game.SystemClock{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Config.Game == (game.Options{}) {
		d.Config.Game = game.DefaultOptions()
	}
	s := &Server{r: chi.NewRouter(), Deps: d}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(d.Config.ClientOrigin))
	s.r.Use(s.withOptionalAuth)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "vocab-bingo",
			"endpoints": []string{"/health", "/lists", "/sessions", "/results", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/lists", s.handleLists)

	s.mountSessions()
	s.mountResults()
	s.mountAuth()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// HTTPServer returns an *http.Server for addr serving this router.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type listInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	all := s.Catalog.All()
	out := make([]listInfo, 0, len(all))
	for _, l := range all {
		out = append(out, listInfo{ID: l.ID, Name: l.Name, Count: l.Count()})
	}
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------- middleware ----------------------------------

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
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- replies -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeErr maps domain errors onto HTTP statuses.
func writeErr(w http.ResponseWriter, err error) {
	var ve *players.ValidationError
	switch {
	case errors.Is(err, game.ErrListTooShort),
		errors.Is(err, game.ErrNoDefinitions),
		errors.Is(err, game.ErrDuplicateWord),
		errors.Is(err, game.ErrEmptyWord):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errUnknownList):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrCellIndex), errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrListSelected),
		errors.Is(err, game.ErrNotPlaying),
		errors.Is(err, players.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, players.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
