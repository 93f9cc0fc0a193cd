package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/common"
)

const DefaultDebounce = 2 * time.Second

type WatchConfig struct {
	Dir      string        // watched non-recursively, like Enumerate
	Debounce time.Duration // quiet period before a burst of events is reported
}

// Watch reports the names of documents created or written in cfg.Dir. Events
// are coalesced until no document has changed for cfg.Debounce, so a file
// still being copied is reported once its writes stop. Watcher errors are
// logged and do not stop the watch. The channel is closed when ctx is done.
func Watch(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan []string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(cfg.Dir); err != nil {
		_ = w.Close()
		return nil, common.NewAppError(common.CodeInputDir, fmt.Sprintf("cannot watch directory: %s", cfg.Dir), err)
	}
	logger.Info("pipeline.watch.start", "dir", cfg.Dir, "debounce_ms", cfg.Debounce.Milliseconds())

	evCh := make(chan []string, 1)

	go func() {
		defer close(evCh)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("pipeline.watch.close_error", "dir", cfg.Dir, "error", err)
			}
		}()

		timer := time.NewTimer(cfg.Debounce)
		timer.Stop()
		pending := map[string]struct{}{}

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				name := filepath.Base(e.Name)
				if strings.HasPrefix(name, ".") || !constants.IsDocument(name) || !recordable(name) {
					continue
				}
				pending[name] = struct{}{}
				timer.Reset(cfg.Debounce)
			case <-timer.C:
				names := make([]string, 0, len(pending))
				for n := range pending {
					names = append(names, n)
				}
				sort.Strings(names)
				clear(pending)
				select {
				case evCh <- names:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("pipeline.watch.error", "dir", cfg.Dir, "error", err)
			}
		}
	}()

	return evCh, nil
}
