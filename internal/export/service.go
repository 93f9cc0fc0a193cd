package export

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/dossier-eval/internal/entity"
)

// RecordSource yields the evaluations to export; *ledger.Ledger satisfies it.
type RecordSource interface {
	Records() ([]entity.Evaluation, error)
}

// Format names an export target.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// ParseFormat accepts the formats understood by Service.Export.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatXLSX, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want xlsx or sqlite)", s)
	}
}

// Service is a tiny façade over the ledger that produces report files.
type Service struct {
	source RecordSource
	logger *slog.Logger
}

func NewService(source RecordSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, logger: logger}
}

// Export writes the whole ledger to out in the given format and returns the
// number of rows written.
func (s *Service) Export(format Format, out string) (int, error) {
	recs, err := s.source.Records()
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}
	switch format {
	case FormatXLSX:
		return len(recs), s.writeXLSX(recs, out)
	case FormatSQLite:
		return len(recs), s.writeSQLite(recs, out)
	default:
		return 0, fmt.Errorf("unknown export format %q", format)
	}
}
