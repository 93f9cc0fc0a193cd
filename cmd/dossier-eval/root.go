package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/internal/common"
	"github.com/joseph-ayodele/dossier-eval/internal/diaglog"
	"github.com/joseph-ayodele/dossier-eval/internal/extract"
	"github.com/joseph-ayodele/dossier-eval/internal/llm/openai"
)

var version = "dev"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	ledger  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "dossier-eval",
		Short: "Batch evaluation of Parcoursup application PDFs",
		Long: `dossier-eval scores a directory of application PDFs with a local
chat-completions model and records one row per document in a CSV ledger.

Runs are resumable: documents already present in the ledger are skipped, so an
interrupted batch continues where it stopped.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ledger, "output", "o", "", "ledger CSV path (overrides LEDGER_PATH)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress events to stderr")

	cmd.AddCommand(newEvaluateCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newCleanCommand(opts))
	cmd.AddCommand(newInfoCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newTryCommand(opts))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// loadConfig reads the environment, applies flag overrides and validates the result.
func (o *globalOptions) loadConfig() (*common.Config, error) {
	cfg := common.LoadConfig()
	if o.ledger != "" {
		cfg.Files.Ledger = o.ledger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger sends events to stderr as JSON and copies warnings and errors to
// the diagnostic log.
func (o *globalOptions) newLogger(cfg *common.Config) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(diaglog.Fanout{
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		diaglog.NewHandler(cfg.Files.DiagLog, slog.LevelWarn),
	})
	slog.SetDefault(logger)
	return logger
}

func openaiConfig(cfg *common.Config) openai.Config {
	return openai.Config{
		URL:         cfg.LLM.URL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}
}

func extractConfig(cfg *common.Config) extract.Config {
	return extract.Config{
		Pdftotext: cfg.Extract.Pdftotext,
		MaxChars:  cfg.Extract.MaxChars,
		Timeout:   cfg.Extract.Timeout,
	}
}

func printBanner() {
	pterm.DefaultHeader.WithFullWidth().Println(fmt.Sprintf("PARCOURSUP DOSSIER EVAL  v%s", version))
}
