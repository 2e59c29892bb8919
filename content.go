/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Seednode/matchbox/games/matching"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

//go:embed content
var builtinContent embed.FS

// contentStore holds the most recently loaded game content. Sessions take a
// reference when a layout is loaded, so a reload never changes a round that
// is already being played.
type contentStore struct {
	cfg     *Config
	fsys    fs.FS
	current atomic.Pointer[matching.Content]
}

func newContentStore(ctx context.Context, cfg *Config) (*contentStore, error) {
	var fsys fs.FS

	if cfg.content != "" {
		fsys = os.DirFS(cfg.content)
	} else {
		sub, err := fs.Sub(builtinContent, "content")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	s := &contentStore{
		cfg:  cfg,
		fsys: fsys,
	}

	if err := s.reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *contentStore) Content() *matching.Content {
	return s.current.Load()
}

func (s *contentStore) reload(ctx context.Context) error {
	startTime := time.Now()

	c, err := matching.LoadContent(ctx, s.fsys)
	if err != nil {
		return err
	}

	for _, problem := range c.Validate() {
		errorf("CONTENT: %v", problem)
	}

	s.current.Store(c)

	logf(s.cfg, "CONTENT: Loaded %d portals, %d layouts and %d items in %s",
		len(c.Portals),
		len(c.Layouts),
		len(c.Items),
		time.Since(startTime).Round(time.Microsecond),
	)

	return nil
}

// watch reloads the content directory whenever something in it changes,
// until ctx is cancelled. A failed reload keeps the previous content.
func (s *contentStore) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range []string{s.cfg.content, filepath.Join(s.cfg.content, matching.LayoutDir)} {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return err
		}
	}

	logf(s.cfg, "CONTENT: Watching %s for changes", s.cfg.content)

	go func() {
		defer w.Close()

		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					pending = time.After(watchDebounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				errorf("CONTENT: %v", err)
			case <-pending:
				pending = nil
				if err := s.reload(ctx); err != nil {
					errorf("CONTENT: Reload failed, keeping previous content: %v", err)
				}
			}
		}
	}()

	return nil
}

// contentURL turns a reference from a content document into a URL the
// browser can fetch. Absolute references are passed through.
func contentURL(cfg *Config, ref string) string {
	if ref == "" {
		return ""
	}

	for _, p := range []string{"http://", "https://", "data:", "/"} {
		if strings.HasPrefix(ref, p) {
			return ref
		}
	}

	return cfg.prefix + "/content/" + ref
}
