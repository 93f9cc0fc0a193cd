package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/dossier-eval/internal/common"
	"github.com/joseph-ayodele/dossier-eval/internal/diaglog"
	"github.com/joseph-ayodele/dossier-eval/internal/extract"
	"github.com/joseph-ayodele/dossier-eval/internal/ledger"
	"github.com/joseph-ayodele/dossier-eval/internal/llm/openai"
	"github.com/joseph-ayodele/dossier-eval/internal/pipeline"
)

type evaluateOptions struct {
	force bool
	yes   bool
	watch bool
}

func newEvaluateCommand(g *globalOptions) *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate [dir]",
		Short: "Evaluate the PDF dossiers of a directory",
		Long: `Evaluate every PDF directly under dir (default: current directory) that
is not yet in the ledger. Each document gets exactly one ledger row, including
documents that could not be read or scored.

Ctrl-C stops the batch after the document in progress has been recorded.

With --watch the command keeps running after the batch and evaluates PDFs as
they are added to dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runEvaluate(cmd, g, opts, dir)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "delete the ledger and diagnostic log before starting")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "skip the confirmation prompt for large batches")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "keep evaluating PDFs added to the directory until interrupted")

	return cmd
}

func runEvaluate(cmd *cobra.Command, g *globalOptions, opts *evaluateOptions, dir string) error {
	printBanner()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(cfg)

	led := ledger.New(cfg.Files.Ledger, logger)
	if opts.force {
		// Never wipe the ledger for a directory that cannot be evaluated.
		if _, err := pipeline.Enumerate(dir); err != nil {
			return err
		}
		if err := led.Reset(); err != nil {
			return fmt.Errorf("reset ledger: %w", err)
		}
		if err := diaglog.Remove(cfg.Files.DiagLog); err != nil {
			return fmt.Errorf("remove diagnostic log: %w", err)
		}
		pterm.Info.Printfln("Ledger %s reset", led.Path())
	}

	client, err := openai.NewClient(openaiConfig(cfg), logger)
	if err != nil {
		return fmt.Errorf("scoring client: %w", err)
	}
	extractor := extract.NewExtractor(extractConfig(cfg), logger)
	proc := pipeline.NewProcessor(logger, extractor, client, led)

	plan, err := proc.Plan(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start watching before the batch so arrivals during it are not missed.
	var changes <-chan []string
	if opts.watch {
		if changes, err = pipeline.Watch(ctx, pipeline.WatchConfig{Dir: dir, Debounce: cfg.Batch.WatchDebounce}, logger); err != nil {
			return err
		}
	}

	if err := runBatch(ctx, g, opts, cfg, proc, plan, led.Path()); err != nil || !opts.watch {
		return err
	}

	pterm.Info.Printfln("Watching %s for new PDFs (Ctrl-C to stop)", dir)
	runs, err := proc.Follow(ctx, dir, changes, &progressObserver{verbose: true})
	for _, sum := range runs {
		if rerr := renderSummary(sum, led.Path()); rerr != nil {
			return rerr
		}
	}
	return err
}

// runBatch evaluates what plan has left. Finding nothing to do or declining
// the confirmation is not an error.
func runBatch(ctx context.Context, g *globalOptions, opts *evaluateOptions, cfg *common.Config, proc *pipeline.Processor, plan pipeline.Plan, ledgerPath string) error {
	if len(plan.Items) == 0 {
		pterm.Warning.Printfln("No PDF found in %s", plan.Dir)
		return nil
	}
	if err := renderPlan(plan); err != nil {
		return err
	}
	if len(plan.Remaining) == 0 {
		pterm.Success.Println("Every dossier has already been evaluated.")
		return nil
	}

	if n := len(plan.Remaining); n > cfg.Batch.ConfirmThreshold && !opts.yes {
		ok, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show(fmt.Sprintf("Evaluate %d dossiers?", n))
		if err != nil || !ok {
			pterm.Info.Println("Cancelled.")
			return nil
		}
	}

	progress := newProgressObserver(len(plan.Remaining), g.verbose)
	sum := proc.Run(ctx, plan, progress)
	progress.Stop()

	if sum.Interrupted {
		pterm.Warning.Printfln("Interrupted after %d of %d dossiers; run the same command again to resume.", sum.Processed, sum.Planned)
	} else {
		pterm.Success.Println("Done!")
	}
	return renderSummary(sum, ledgerPath)
}
