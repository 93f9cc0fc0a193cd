package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/internal/diaglog"
	"github.com/joseph-ayodele/dossier-eval/internal/ledger"
)

func newResetCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the ledger and the diagnostic log",
		Long: `Delete the ledger and the diagnostic log so that the next evaluate run
starts from scratch. Missing files are not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			logger := g.newLogger(cfg)

			if err := ledger.New(cfg.Files.Ledger, logger).Reset(); err != nil {
				return fmt.Errorf("reset ledger: %w", err)
			}
			if err := diaglog.Remove(cfg.Files.DiagLog); err != nil {
				return fmt.Errorf("remove diagnostic log: %w", err)
			}
			pterm.Success.Printfln("Removed %s and %s", cfg.Files.Ledger, cfg.Files.DiagLog)
			return nil
		},
	}
}
