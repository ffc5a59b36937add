// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/vocab-bingo/internal/game"
)

type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	WordListsDir string
	JWTSecret    string
	JWTTTL       time.Duration
	ClientOrigin string
	DailySalt    string
	Production   bool
	// SessionIdle is how long an untouched session lives; 0 keeps sessions
	// until the process exits.
	SessionIdle time.Duration
	Game        game.Options
}

const devSecret = "dev_secret_change_me"

// Load builds a Config from the process environment. Malformed values are
// reported together.
func Load() (Config, error) {
	var errs []error

	days := envInt("JWT_EXPIRES_DAYS", 14, &errs)
	def := game.DefaultOptions()
	c := Config{
		Port:         envStr("PORT", "5175"),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		DBPath:       envStr("DB_PATH", "./data/app.db"),
		WordListsDir: os.Getenv("WORD_LISTS_DIR"),
		JWTSecret:    envStr("JWT_SECRET", devSecret),
		JWTTTL:       time.Duration(days) * 24 * time.Hour,
		ClientOrigin: envStr("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    os.Getenv("DAILY_SALT"),
		Production:   os.Getenv("APP_ENV") == "production",
		SessionIdle:  envDuration("SESSION_IDLE_TTL", 2*time.Hour, &errs),
		Game: game.Options{
			CardCap:        envInt("CARD_CAP", game.DefaultCardCap, &errs),
			CorrectDelay:   envDuration("CORRECT_DELAY", def.CorrectDelay, &errs),
			IncorrectDelay: envDuration("INCORRECT_DELAY", def.IncorrectDelay, &errs),
			CardDelay:      envDuration("CARD_DELAY", def.CardDelay, &errs),
		},
	}

	if days <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_DAYS must be positive, got %d", days))
	}
	if c.Game.CardCap <= 0 {
		errs = append(errs, fmt.Errorf("CARD_CAP must be positive, got %d", c.Game.CardCap))
	}
	if c.Production && c.JWTSecret == devSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set when APP_ENV=production"))
	}
	return c, errors.Join(errs...)
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int, errs *[]error) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	return n
}

func envDuration(k string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", k, err))
		return def
	}
	if d < 0 {
		*errs = append(*errs, fmt.Errorf("%s must not be negative", k))
		return def
	}
	return d
}
