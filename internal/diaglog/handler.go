// Package diaglog writes the human-readable diagnostic log: one
// "[timestamp] message" line per record, appended to a plain text file.
// Write failures are swallowed so logging can never abort a batch.
package diaglog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

// Handler is a slog.Handler that appends formatted lines to a file. The file
// is opened per record so external readers always see complete lines.
type Handler struct {
	path  string
	level slog.Leveler
	attrs []groupedAttr
	group string
	mu    *sync.Mutex
	now   func() time.Time
}

func NewHandler(path string, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelWarn
	}
	return &Handler{path: path, level: level, mu: &sync.Mutex{}, now: time.Now}
}

// groupedAttr remembers the group that was open when the attribute was added.
type groupedAttr struct {
	group string
	attr  slog.Attr
}

func (h *Handler) Path() string { return h.path }

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return h.path != "" && l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(ts.Format(constants.TimestampLayout))
	b.WriteString("] ")
	b.WriteString(r.Message)
	for _, ga := range h.attrs {
		writeAttr(&b, ga.group, ga.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil
	}
	_, _ = f.WriteString(b.String())
	_ = f.Close()
	return nil
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := a.Key
		if group != "" && prefix != "" {
			prefix = group + "." + prefix
		} else if prefix == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix, ga)
		}
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\n\"") {
		v = fmt.Sprintf("%q", v)
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(v)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]groupedAttr{}, h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, groupedAttr{group: h.group, attr: a})
	}
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	h2.group = name
	return &h2
}

// Remove deletes the diagnostic log; a missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
