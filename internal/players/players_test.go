package players

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocab-bingo/assets"
	"github.com/robalobadob/vocab-bingo/internal/db"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn, assets.Migrations()))
	return NewService(conn, "test-secret", time.Hour)
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	p, err := s.Signup(ctx, "  ada_l ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ada_l", p.Username)
	assert.NotEqual(t, "correct horse", p.PasswordHash)

	_, err = s.Signup(ctx, "ADA_L", "another pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := s.Login(ctx, "Ada_L", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.Login(ctx, "ada_l", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInsertMapsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	now := time.Now().UTC()

	require.NoError(t, s.insert(ctx, &Player{ID: "p-1", Username: "grace", PasswordHash: "x", CreatedAt: now}))
	// A second row for the same name, as when two signups pass the lookup together.
	err := s.insert(ctx, &Player{ID: "p-2", Username: "GRACE", PasswordHash: "x", CreatedAt: now})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignupValidation(t *testing.T) {
	s := newTestService(t)
	cases := map[string][2]string{
		"short username": {"ab", "password1"},
		"bad characters": {"ada-l", "password1"},
		"short password": {"ada_l", "short"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Signup(context.Background(), in[0], in[1])
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestTokens(t *testing.T) {
	s := newTestService(t)
	p := &Player{ID: "p-1", Username: "ada_l"}

	tok, exp, err := s.Sign(p)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "p-1", claims.Subject)
	assert.Equal(t, "ada_l", claims.Username)

	other := NewService(nil, "other-secret", time.Hour)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBumpStats(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	p, err := s.Signup(ctx, "grace", "hopper123")
	require.NoError(t, err)

	require.NoError(t, s.BumpStats(ctx, p.ID, true))
	require.NoError(t, s.BumpStats(ctx, p.ID, false))
	assert.ErrorIs(t, s.BumpStats(ctx, "missing", true), ErrNotFound)

	got, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SessionsPlayed)
	assert.Equal(t, 1, got.SessionsWon)

	_, err = s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
