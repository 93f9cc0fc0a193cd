package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/internal/llm/openai"
)

func newInfoCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Check the scoring endpoint and local dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner()

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			logger := g.newLogger(cfg)

			client, err := openai.NewClient(openaiConfig(cfg), logger)
			if err != nil {
				return fmt.Errorf("scoring client: %w", err)
			}

			endpoint := pterm.Green("connected")
			if models, err := client.Ping(cmd.Context()); err != nil {
				endpoint = pterm.Red("unreachable: " + err.Error())
			} else if len(models) > 0 {
				endpoint = pterm.Green("connected (" + strings.Join(models, ", ") + ")")
			}

			var extractor string
			if path, err := exec.LookPath(cfg.Extract.Pdftotext); err != nil {
				extractor = pterm.Red("missing")
			} else {
				extractor = pterm.Green(path)
			}

			return renderTable(pterm.TableData{
				{"Component", "Status"},
				{"Scoring endpoint", cfg.LLM.URL},
				{"Endpoint status", endpoint},
				{"Model", cfg.LLM.Model},
				{"pdftotext", extractor},
				{"Ledger", cfg.Files.Ledger},
				{"Diagnostic log", cfg.Files.DiagLog},
				{"Go", runtime.Version()},
				{"Version", version},
			})
		},
	}
}
