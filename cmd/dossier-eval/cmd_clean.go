package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

func newCleanCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove temporary files (diagnostic log, legacy checkpoint)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner()

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			removed, err := removeFiles(cfg.Files.DiagLog, constants.LegacyCheckpointFile)
			for _, f := range removed {
				pterm.Success.Printfln("removed %s", f)
			}
			if err != nil {
				return err
			}
			pterm.Info.Printfln("%d file(s) removed", len(removed))
			return nil
		},
	}
}

// removeFiles deletes the paths that exist and returns the ones it removed.
func removeFiles(paths ...string) ([]string, error) {
	var removed []string
	for _, p := range paths {
		err := os.Remove(p)
		switch {
		case err == nil:
			removed = append(removed, p)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return removed, nil
}
