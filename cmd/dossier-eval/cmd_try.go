package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/constants"
	"github.com/joseph-ayodele/dossier-eval/internal/entity"
	"github.com/joseph-ayodele/dossier-eval/internal/extract"
	"github.com/joseph-ayodele/dossier-eval/internal/ledger"
	"github.com/joseph-ayodele/dossier-eval/internal/llm/openai"
	"github.com/joseph-ayodele/dossier-eval/internal/pipeline"
)

type tryOptions struct {
	extractOnly bool
}

func newTryCommand(g *globalOptions) *cobra.Command {
	opts := &tryOptions{}
	cmd := &cobra.Command{
		Use:   "try <file.pdf>",
		Short: "Evaluate a single PDF without writing to the ledger",
		Long: `Run extraction and scoring on one PDF and print the result. Nothing is
written to the ledger, so the file is still evaluated by the next batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			logger := g.newLogger(cfg)
			path := args[0]

			extractor := extract.NewExtractor(extractConfig(cfg), logger)
			res, err := extractor.Extract(cmd.Context(), path)
			if err != nil {
				return err
			}
			if err := renderTable(pterm.TableData{
				{"Extraction", "Value"},
				{"File", path},
				{"Pages", strconv.Itoa(res.Pages)},
				{"Characters", strconv.Itoa(len([]rune(res.Text)))},
				{"Truncated", strconv.FormatBool(res.Truncated)},
				{"Duration", res.Duration.String()},
			}); err != nil {
				return err
			}
			for _, w := range res.Warnings {
				pterm.Warning.Println(w)
			}
			if opts.extractOnly {
				pterm.Println(res.Text)
				return nil
			}

			client, err := openai.NewClient(openaiConfig(cfg), logger)
			if err != nil {
				return fmt.Errorf("scoring client: %w", err)
			}
			// The ledger is only consulted by Plan; Evaluate never appends.
			proc := pipeline.NewProcessor(logger, extractor, client, ledger.New(cfg.Files.Ledger, logger))
			rec, outcome := proc.Evaluate(cmd.Context(), entity.WorkItem{ID: filepath.Base(path), Path: path})
			if outcome != constants.OutcomeOK {
				pterm.Warning.Printfln("outcome: %s", outcome)
			}
			return renderRecord(rec)
		},
	}

	cmd.Flags().BoolVar(&opts.extractOnly, "extract-only", false, "print the extracted text and skip scoring")

	return cmd
}
