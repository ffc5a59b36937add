package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxResultsLimit = 100

func (s *Server) mountResults() {
	s.r.Route("/results", func(r chi.Router) {
		r.Use(needs(s.Results != nil))
		r.Get("/", s.handleLeaderboard)
		r.With(needs(s.Players != nil), s.requireAuth).Get("/mine", s.handleMyResults)
	})
}

// GET /results?listId=...&limit=...
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	listID := r.URL.Query().Get("listId")
	if listID == "" {
		writeError(w, http.StatusBadRequest, "listId is required")
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	out, err := s.Results.Leaderboard(r.Context(), listID, limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMyResults(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	out, err := s.Results.ForPlayer(r.Context(), userFrom(r).ID, limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return min(n, maxResultsLimit), true
}
