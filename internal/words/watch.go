package words

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Reload re-reads the embedded lists and dir into the catalog. Lists that
// fail validation are logged and left out; the rest are still published.
func (c *Catalog) Reload(dir string) error {
	lists, err := Load(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("some word lists were rejected")
	}
	if lists == nil {
		return err
	}
	c.Replace(lists)
	log.Info().Int("lists", len(lists)).Str("dir", dir).Msg("word lists loaded")
	return err
}

// Watch blocks until ctx is done, calling reload once list files in dir
// have been quiet for the debounce period.
func Watch(ctx context.Context, dir string, debounce time.Duration, reload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info().Str("dir", dir).Msg("watching word lists")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isListFile(ev.Name) || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("word list changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("dir", dir).Msg("word list watcher")

		case <-fire:
			fire = nil
			reload()
		}
	}
}
