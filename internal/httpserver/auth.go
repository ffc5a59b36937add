// internal/httpserver/auth.go
//
// Player identity for requests: JWT from bearer header or cookie, with an
// anonymous cookie as the fallback owner of guest sessions.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab-bingo/internal/players"
)

const (
	authCookieName = "bingo_token"
	anonCookieName = "bingo_anon"
)

// authUser is placed into request context by the auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

func userFrom(r *http.Request) *authUser {
	u, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	return u
}

// withOptionalAuth decorates requests with the player if a valid JWT is
// present. It never rejects a request.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Players != nil {
			if tok := bearerOrCookie(r); tok != "" {
				if claims, err := s.Players.Parse(tok); err == nil {
					ctx := context.WithValue(r.Context(), ctxUserKey{}, &authUser{ID: claims.Subject, Username: claims.Username})
					r = r.WithContext(ctx)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests without a player whose account still exists.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		me := userFrom(r)
		if me == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if _, err := s.Players.FindByID(r.Context(), me.ID); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// needs answers 503 when an optional dependency is not configured.
func needs(ok bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ok {
				writeError(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) mountAuth() {
	s.r.Route("/auth", func(r chi.Router) {
		r.Use(needs(s.Players != nil))
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.requireAuth).Get("/me", s.handleMe)
	})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := s.Players.Signup(r.Context(), body.Username, body.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	s.startPlayerSession(w, r, p, http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := s.Players.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	s.startPlayerSession(w, r, p, http.StatusOK)
}

// startPlayerSession signs a token, sets the cookie and claims any guest results.
func (s *Server) startPlayerSession(w http.ResponseWriter, r *http.Request, p *players.Player, status int) {
	tok, exp, err := s.Players.Sign(p)
	if err != nil {
		writeErr(w, err)
		return
	}
	s.setCookie(w, authCookieName, tok, exp)
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" && s.Results != nil {
		if err := s.Results.ClaimAnonymous(r.Context(), c.Value, p.ID); err != nil {
			log.Warn().Err(err).Str("user", p.ID).Msg("claim anonymous results")
		}
	}
	writeJSON(w, status, map[string]any{"player": p, "token": tok})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, authCookieName, "", time.Time{})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, err := s.Players.FindByID(r.Context(), userFrom(r).ID)
	if err != nil {
		if errors.Is(err, players.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ensureAnonID returns the anonymous cookie value, setting a new one if absent.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	s.setCookie(w, anonCookieName, id, s.Now().Add(180*24*time.Hour))
	return id
}

// setCookie writes an HttpOnly cookie; a zero expiry deletes it.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time) {
	secure := s.Config.Production
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	}
	if exp.IsZero() {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}

func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(authCookieName); err == nil {
		return c.Value
	}
	return ""
}
