package main

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/internal/entity"
	"github.com/joseph-ayodele/dossier-eval/internal/ledger"
	"github.com/joseph-ayodele/dossier-eval/internal/pipeline"
	"github.com/joseph-ayodele/dossier-eval/internal/report"
)

func newStatusCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Show how far the evaluation of a directory has progressed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runStatus(cmd, g, dir)
		},
	}
}

func runStatus(cmd *cobra.Command, g *globalOptions, dir string) error {
	printBanner()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(cfg)

	// A missing directory is reported as empty rather than failing the command.
	items, err := pipeline.Enumerate(dir)
	if err != nil {
		pterm.Warning.Println(err)
		items = []entity.WorkItem{}
	}

	led := ledger.New(cfg.Files.Ledger, logger)
	records, err := led.Records()
	if err != nil {
		logger.Warn("status.ledger.read_error", "path", led.Path(), "error", err)
	}

	absDir, _ := filepath.Abs(dir)
	st := report.NewStatus(items, records)
	if err := renderStatus(filepath.Base(absDir), absDir, st); err != nil {
		return err
	}

	if st.Remaining > 0 {
		pterm.Info.Printfln("Continue with: %s evaluate %s", cmd.Root().Name(), dir)
	}
	return nil
}
