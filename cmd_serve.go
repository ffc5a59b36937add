package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/vocab-bingo/assets"
	"github.com/robalobadob/vocab-bingo/internal/config"
	"github.com/robalobadob/vocab-bingo/internal/db"
	"github.com/robalobadob/vocab-bingo/internal/httpserver"
	"github.com/robalobadob/vocab-bingo/internal/players"
	"github.com/robalobadob/vocab-bingo/internal/results"
	"github.com/robalobadob/vocab-bingo/internal/store"
	"github.com/robalobadob/vocab-bingo/internal/words"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP game server",
	Long: `Serves the JSON API. Word lists are the embedded set overlaid by
WORD_LISTS_DIR, which is watched and reloaded on change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		return err
	}

	catalog := words.NewCatalog(nil)
	if err := catalog.Reload(cfg.WordListsDir); err != nil && catalog.Len() == 0 {
		return fmt.Errorf("load word lists: %w", err)
	}

	sessions := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Sessions: sessions,
		Catalog:  catalog,
		Results:  results.NewStore(conn),
		Players:  players.NewService(conn, cfg.JWTSecret, cfg.JWTTTL),
	})
	hs := srv.HTTPServer(cfg.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Int("lists", catalog.Len()).Msg("starting vocab-bingo")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(shutdownCtx)
	})
	if idle := cfg.SessionIdle; idle > 0 {
		g.Go(func() error {
			return sessions.Janitor(ctx, min(max(idle/4, time.Second), time.Minute), idle)
		})
	}
	if dir := cfg.WordListsDir; dir != "" {
		g.Go(func() error {
			return words.Watch(ctx, dir, 250*time.Millisecond, func() { _ = catalog.Reload(dir) })
		})
	}
	return g.Wait()
}
