package constants

import "strings"

// DocumentExt is the only extension picked up from the input directory.
const DocumentExt = "pdf"

// Default file names, relative to the working directory.
const (
	DefaultLedgerFile     = "resultats_parcoursup_evaluation.csv"
	DefaultDiagLogFile    = "parcoursup_erreurs.log"
	LegacyCheckpointFile  = ".checkpoint_parcoursup"
	TimestampLayout       = "2006-01-02 15:04:05"
	TruncationMarker      = "\n[TRONQUÉ]"
	DefaultMaxChars       = 50000
	JustificationMaxChars = 200
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsDocument reports whether name carries the document extension.
func IsDocument(name string) bool {
	i := strings.LastIndexByte(name, '.')
	return i >= 0 && NormalizeExt(name[i:]) == DocumentExt
}
