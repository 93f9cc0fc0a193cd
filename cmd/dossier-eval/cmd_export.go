package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/internal/export"
	"github.com/joseph-ayodele/dossier-eval/internal/ledger"
)

type exportOptions struct {
	format string
	out    string
}

func newExportCommand(g *globalOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert the ledger to a spreadsheet or a SQLite database",
		Long: `Convert the ledger to XLSX or SQLite for reporting. The SQLite table keeps
one row per file, the last ledger row for a file wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(export.FormatXLSX), "export format: xlsx or sqlite")
	cmd.Flags().StringVar(&opts.out, "out", "", "output path (default: ledger name with the format extension)")

	return cmd
}

func runExport(g *globalOptions, opts *exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(cfg)

	led := ledger.New(cfg.Files.Ledger, logger)
	if !led.Exists() {
		return fmt.Errorf("ledger not found: %s", led.Path())
	}

	out := opts.out
	if out == "" {
		out = defaultExportPath(led.Path(), format)
	}

	n, err := export.NewService(led, logger).Export(format, out)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Exported %d rows to %s", n, out)
	return nil
}

func defaultExportPath(ledgerPath string, format export.Format) string {
	ext := ".xlsx"
	if format == export.FormatSQLite {
		ext = ".db"
	}
	return strings.TrimSuffix(ledgerPath, ".csv") + ext
}
