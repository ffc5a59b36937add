// Package results keeps a write-only log of finished sessions for
// leaderboards and "my games". Nothing in it is ever loaded back into a game.
package results

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Result struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	UserID       string    `json:"userId,omitempty"`
	AnonymousID  string    `json:"-"`
	ListID       string    `json:"listId"`
	Won          bool      `json:"won"`
	CardsPlayed  int       `json:"cardsPlayed"`
	WordsCorrect int       `json:"wordsCorrect"`
	TotalWords   int       `json:"totalWords"`
	FinishedAt   time.Time `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a finished run. An empty ID is assigned; a second insert
// with the same ID is ignored.
func (s *Store) Insert(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (id, session_id, user_id, anonymous_id, list_id, won, cards_played, words_correct, total_words, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SessionID, nullable(r.UserID), nullable(r.AnonymousID), r.ListID, r.Won,
		r.CardsPlayed, r.WordsCorrect, r.TotalWords, r.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Leaderboard returns the best sessions for a list: most words correct,
// then fewest cards, then earliest. Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, listID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(ctx, `
        SELECT id, session_id, COALESCE(user_id,''), list_id, won, cards_played, words_correct, total_words, finished_at
        FROM results
        WHERE list_id=?
        ORDER BY words_correct DESC, cards_played ASC, finished_at ASC
        LIMIT ?`, listID, limit)
}

// ForPlayer returns a user's most recent sessions. Default limit is 50.
func (s *Store) ForPlayer(ctx context.Context, userID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.query(ctx, `
        SELECT id, session_id, COALESCE(user_id,''), list_id, won, cards_played, words_correct, total_words, finished_at
        FROM results
        WHERE user_id=?
        ORDER BY finished_at DESC
        LIMIT ?`, userID, limit)
}

// ClaimAnonymous attaches anonymous sessions to a user after login.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE results SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var (
			r        Result
			finished string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.UserID, &r.ListID, &r.Won, &r.CardsPlayed,
			&r.WordsCorrect, &r.TotalWords, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
