package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/gamenight/equity"
	"github.com/lox/gamenight/internal/randutil"
	"github.com/lox/gamenight/poker"
)

// OddsCmd estimates equity for known hands
type OddsCmd struct {
	Hands  []string `arg:"" help:"Player hands, e.g. 'AcKd' 'QhJs'"`
	Board  string   `short:"b" help:"Community cards (0, 3 or 4), e.g. 'Td7s8h'"`
	Trials int      `short:"t" help:"Simulations per run (0 = config value)"`
	Runs   int      `short:"r" default:"1" help:"Independent runs to average, executed in parallel"`
	Seed   int64    `help:"Random seed for reproducible results (0 = time based)"`
}

func (cmd *OddsCmd) Run(cli *CLI, logger *log.Logger) error {
	cfg, err := loadConfig(cli, logger)
	if err != nil {
		return err
	}

	holes, err := parseHoles(cmd.Hands)
	if err != nil {
		return err
	}
	var board []poker.Card
	if cmd.Board != "" {
		if board, err = poker.ParseCards(cmd.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	if cmd.Trials < 0 {
		return fmt.Errorf("trials must not be negative, got %d", cmd.Trials)
	}
	trials := cmd.Trials
	if trials == 0 {
		trials = cfg.Table.EquityTrials
	}
	seed := cmd.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	seed = randutil.Seed(seed)
	runs := max(cmd.Runs, 1)

	start := time.Now()
	results, err := estimateRuns(context.Background(), holes, board, trials, runs, seed)
	if err != nil {
		return err
	}
	logger.Debug("odds computed", "runs", runs, "trials", trials, "seed", seed, "elapsed", time.Since(start))

	mean, spread := summarize(results, len(holes))
	if len(board) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("Board:"), formatCards(board))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("Hand")+"\t"+headerStyle.Render("Equity")+"\t"+headerStyle.Render("±")+"\t"+headerStyle.Render("Split"))
	for i, hole := range holes {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f%%\n",
			handStyle.Render(hole.String()),
			winStyle.Render(fmt.Sprintf("%.1f%%", mean[i])),
			spread[i],
			splitRate(results, i))
	}
	return w.Flush()
}

// estimateRuns runs independent estimates concurrently, each with its own
// derived random stream so results do not depend on scheduling.
func estimateRuns(ctx context.Context, holes []poker.Hole, board []poker.Card, trials, runs int, seed int64) ([]*equity.Result, error) {
	results := make([]*equity.Result, runs)
	g, ctx := errgroup.WithContext(ctx)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := equity.Estimate(holes, board, equity.Options{Trials: trials}, randutil.Derive(seed, i))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// summarize returns the mean equity per player and the standard deviation across runs
func summarize(results []*equity.Result, players int) (mean, spread []float64) {
	mean = make([]float64, players)
	spread = make([]float64, players)
	n := float64(len(results))
	for _, r := range results {
		for i, e := range r.Equity {
			mean[i] += e / n
		}
	}
	if len(results) < 2 {
		return mean, spread
	}
	for _, r := range results {
		for i, e := range r.Equity {
			d := e - mean[i]
			spread[i] += d * d / (n - 1)
		}
	}
	for i := range spread {
		spread[i] = math.Sqrt(spread[i])
	}
	return mean, spread
}

// splitRate is the percentage of simulated boards on which player i shared the pot
func splitRate(results []*equity.Result, i int) float64 {
	var ties, trials int
	for _, r := range results {
		ties += r.Ties[i]
		trials += r.Trials
	}
	if trials == 0 {
		return 0
	}
	return float64(ties) / float64(trials) * 100
}
