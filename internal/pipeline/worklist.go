package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/common"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

// Enumerate lists the documents directly under dir, sorted by file name.
// Subdirectories and hidden files are skipped, as are names holding a line
// break, which cannot be stored as a ledger identifier. A missing or
// unreadable directory is the only error.
func Enumerate(dir string) ([]entity.WorkItem, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, common.NewAppError(common.CodeInputDir, fmt.Sprintf("directory not found: %s", dir), common.ErrInvalidInput)
	}
	if !st.IsDir() {
		return nil, common.NewAppError(common.CodeInputDir, fmt.Sprintf("not a directory: %s", dir), common.ErrInvalidInput)
	}

	// os.ReadDir returns entries sorted by file name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.NewAppError(common.CodeInputDir, fmt.Sprintf("cannot read directory: %s", dir), err)
	}

	items := make([]entity.WorkItem, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !constants.IsDocument(name) {
			continue
		}
		if !recordable(name) {
			slog.Warn(fmt.Sprintf("Nom de fichier ignoré (saut de ligne): %q", name), "event", "pipeline.enumerate.skipped", "dir", dir)
			continue
		}
		items = append(items, entity.WorkItem{ID: name, Path: filepath.Join(dir, name)})
	}
	return items, nil
}

// recordable reports whether name survives a round trip through the ledger,
// which keeps every row on one line.
func recordable(name string) bool {
	return !strings.ContainsAny(name, "\r\n")
}

// Plan is the outcome of resume filtering for one run.
type Plan struct {
	Dir       string
	Items     []entity.WorkItem // every document found, sorted
	Known     int               // identifiers already in the ledger
	Remaining []entity.WorkItem // Items minus the frontier, same order
}

// Remaining subtracts the known identifiers from items, keeping order.
func Remaining(items []entity.WorkItem, known map[string]struct{}) []entity.WorkItem {
	out := make([]entity.WorkItem, 0, len(items))
	for _, it := range items {
		if _, done := known[it.ID]; !done {
			out = append(out, it)
		}
	}
	return out
}
