// internal/httpserver/routes_sessions.go
//
// Session endpoints. Each session is one game.Controller held in the session
// store; every mutating route answers with the fresh snapshot.
//   - POST   /sessions               → pick a list and deal the first card
//   - GET    /sessions/{id}          → current snapshot
//   - POST   /sessions/{id}/click    → answer with a cell index
//   - POST   /sessions/{id}/new-card → abandon or skip to the next card
//   - POST   /sessions/{id}/reset    → restart on the same list
//   - POST   /sessions/{id}/back     → return to the list picker
//   - POST   /sessions/{id}/select   → pick a list from the picker
//   - DELETE /sessions/{id}          → drop the session
//
// A session started with daily=true is seeded from the date, the list and
// DAILY_SALT, so every player sees the same cards that day.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab-bingo/internal/daily"
	"github.com/robalobadob/vocab-bingo/internal/game"
	"github.com/robalobadob/vocab-bingo/internal/results"
)

var errUnknownList = errors.New("unknown word list")

type selectReq struct {
	ListID string `json:"listId"`
	Daily  bool   `json:"daily"`
}

type clickReq struct {
	Index *int `json:"index"`
}

type clickRes struct {
	Result  game.Result   `json:"result"`
	Session game.Snapshot `json:"session"`
}

type newCardRes struct {
	Dealt   bool          `json:"dealt"`
	Session game.Snapshot `json:"session"`
}

// owner identifies who a finished session is credited to.
type owner struct {
	UserID string
	AnonID string
}

// logCue stands in for the incorrect-answer sound on the server.
type logCue struct{ session string }

func (c logCue) Play() { log.Debug().Str("session", c.session).Msg("incorrect answer cue") }

func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleGetSession))
			r.Delete("/", s.handleDeleteSession)
			r.Post("/click", s.withSession(s.handleClick))
			r.Post("/new-card", s.withSession(s.handleNewCard))
			r.Post("/reset", s.withSession(s.handleReset))
			r.Post("/back", s.withSession(s.handleBack))
			r.Post("/select", s.withSession(s.handleSelect))
		})
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, c *game.Controller)

// withSession resolves {id} from the store.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		h(w, r, c)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	o := owner{}
	if me := userFrom(r); me != nil {
		o.UserID = me.ID
	} else {
		o.AnonID = s.ensureAnonID(w, r)
	}

	id := uuid.NewString()
	c := game.NewController(id,
		game.WithClock(s.Clock),
		game.WithOptions(s.Config.Game),
		game.WithCue(logCue{session: id}),
		game.OnFinish(s.recordFinish(o)),
	)
	if err := s.selectList(c, req); err != nil {
		writeErr(w, err)
		return
	}
	if err := s.Sessions.Save(r.Context(), c); err != nil {
		c.Stop()
		writeErr(w, err)
		return
	}
	log.Info().Str("session", id).Str("list", req.ListID).Bool("daily", req.Daily).Msg("session started")
	writeJSON(w, http.StatusCreated, c.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, c *game.Controller) {
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request, c *game.Controller) {
	var req clickReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, "index is required")
		return
	}
	res, err := c.Click(*req.Index)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clickRes{Result: res, Session: c.Snapshot()})
}

func (s *Server) handleNewCard(w http.ResponseWriter, r *http.Request, c *game.Controller) {
	dealt, err := c.NewCard()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCardRes{Dealt: dealt, Session: c.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, c *game.Controller) {
	if err := c.Reset(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request, c *game.Controller) {
	c.Back()
	writeJSON(w, http.StatusOK, c.Snapshot())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, c *game.Controller) {
	var req selectReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := s.selectList(c, req); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// selectList looks the list up in the catalog and starts play on it.
func (s *Server) selectList(c *game.Controller, req selectReq) error {
	l, ok := s.Catalog.Get(req.ListID)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownList, req.ListID)
	}
	var rng game.Rand
	if req.Daily {
		rng = game.NewRand(daily.Seed(s.Now(), s.Config.DailySalt, l.ID))
	}
	return c.SelectList(l.ID, l.Name, l.Words, rng)
}

// recordFinish logs a concluded session and bumps the player's counters.
// It runs under the controller lock, so it only touches the database.
func (s *Server) recordFinish(o owner) func(game.Summary) {
	return func(sum game.Summary) {
		log.Info().
			Str("session", sum.SessionID).
			Str("list", sum.ListID).
			Bool("won", sum.Won).
			Int("cards", sum.CardsPlayed).
			Int("correct", sum.WordsCorrect).
			Msg("session finished")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.Results != nil {
			err := s.Results.Insert(ctx, results.Result{
				SessionID:    sum.SessionID,
				UserID:       o.UserID,
				AnonymousID:  o.AnonID,
				ListID:       sum.ListID,
				Won:          sum.Won,
				CardsPlayed:  sum.CardsPlayed,
				WordsCorrect: sum.WordsCorrect,
				TotalWords:   sum.TotalWords,
				FinishedAt:   s.Now(),
			})
			if err != nil {
				log.Warn().Err(err).Str("session", sum.SessionID).Msg("record result")
			}
		}
		if o.UserID != "" && s.Players != nil {
			if err := s.Players.BumpStats(ctx, o.UserID, sum.Won); err != nil {
				log.Warn().Err(err).Str("user", o.UserID).Msg("bump stats")
			}
		}
	}
}
