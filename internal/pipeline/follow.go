package pipeline

import "context"

// Follow re-plans dir each time changes delivers and evaluates whatever is not
// yet in the ledger. It returns when ctx is done, changes is closed, or dir can
// no longer be enumerated. Only runs that evaluated something are returned.
func (p *Processor) Follow(ctx context.Context, dir string, changes <-chan []string, obs Observer) ([]Summary, error) {
	var runs []Summary
	for {
		select {
		case <-ctx.Done():
			return runs, nil
		case names, ok := <-changes:
			if !ok {
				return runs, nil
			}
			p.logger.Info("pipeline.watch.changed", "dir", dir, "documents", names)

			plan, err := p.Plan(dir)
			if err != nil {
				return runs, err
			}
			if len(plan.Remaining) == 0 {
				continue
			}
			sum := p.Run(ctx, plan, obs)
			runs = append(runs, sum)
			if sum.Interrupted {
				return runs, nil
			}
		}
	}
}
