// internal/players/players.go
//
// Player accounts and session tokens.
// Responsibilities:
//   - Signup/login with bcrypt password hashes.
//   - HS256 JWTs carrying the player id and username.
//   - Per-player counters bumped when a session ends.

package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("player not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError reports a signup field that breaks the account rules.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

type Player struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	SessionsPlayed int       `json:"sessionsPlayed"`
	SessionsWon    int       `json:"sessionsWon"`
}

// Claims is the token payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	db     *sql.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(db *sql.DB, secret string, ttl time.Duration) *Service {
	return &Service{db: db, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Signup validates and creates an account.
func (s *Service) Signup(ctx context.Context, username, password string) (*Player, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, password); err != nil {
		return nil, err
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=?`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	p := &Player{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}
	if err := s.insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// insert stores p. Losing a race with another signup for the same name is
// reported as ErrUsernameTaken.
func (s *Service) insert(ctx context.Context, p *Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		p.ID, p.Username, p.PasswordHash, p.CreatedAt.Format(time.RFC3339))
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrUsernameTaken
	}
	return err
}

// Login checks credentials. Unknown usernames and bad passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Player, error) {
	p, err := s.scan(s.db.QueryRowContext(ctx, selectPlayer+` WHERE username=?`, strings.TrimSpace(username)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*Player, error) {
	return s.scan(s.db.QueryRowContext(ctx, selectPlayer+` WHERE id=?`, id))
}

// BumpStats counts a finished session for the player.
func (s *Service) BumpStats(ctx context.Context, id string, won bool) error {
	w := 0
	if won {
		w = 1
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET sessions_played = sessions_played + 1, sessions_won = sessions_won + ? WHERE id=?`, w, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Sign issues a token for p and returns it with its expiry.
func (s *Service) Sign(p *Player) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// Parse verifies a token and returns its claims.
func (s *Service) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !t.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

const selectPlayer = `SELECT id, username, password_hash, created_at, sessions_played, sessions_won FROM users`

func (s *Service) scan(row *sql.Row) (*Player, error) {
	var (
		p       Player
		created string
	)
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created, &p.SessionsPlayed, &p.SessionsWon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return &ValidationError{"username must be 3-24 chars"}
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return &ValidationError{"username: letters, numbers, underscore only"}
		}
	}
	if len(p) < 8 || len(p) > 72 {
		return &ValidationError{"password must be 8-72 chars"}
	}
	return nil
}
