package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/numfmt"
	"github.com/Garsondee/Fruit-Drop/internal/physics"
)

type runStats struct {
	runIndex int
	seed     int64
	report   game.RunReport

	firstMergeTick   int
	firstWarningTick int
	drops            int
}

type options struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	strategy game.Strategy
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var strategy string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 3600, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&strategy, "strategy", "match", "drop strategy (random, center, match)")
	flag.Parse()

	opts, err := parseOptions(runs, ticks, seedBase, seedStep, strategy)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	ranks := game.DefaultRankTable()
	fmt.Printf("=== Headless Fruit Drop Report ===\n")
	fmt.Printf("strategy=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		opts.strategy, opts.runs, opts.ticks, opts.seedBase, opts.seedStep)

	all := make([]runStats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		rs := runOne(i+1, seed, opts.ticks, opts.strategy)
		all = append(all, rs)
		printRun(rs, ranks)
	}
	printAggregate(all, ranks)
}

func parseOptions(runs, ticks int, seedBase, seedStep int64, strategy string) (options, error) {
	if runs <= 0 {
		return options{}, errors.New("-runs must be > 0")
	}
	if ticks <= 0 {
		return options{}, errors.New("-ticks must be > 0")
	}
	st, err := game.ParseStrategy(strategy)
	if err != nil {
		return options{}, err
	}
	return options{runs: runs, ticks: ticks, seedBase: seedBase, seedStep: seedStep, strategy: st}, nil
}

// runOne plays a single game on real physics until it ends or hits the tick
// limit.
func runOne(runIndex int, seed int64, ticks int, strategy game.Strategy) runStats {
	ranks := game.DefaultRankTable()
	settings := game.DefaultSettings()
	world := physics.NewWorld(ranks, settings, physics.DefaultOptions())
	ts := game.NewTestSim(
		game.WithSimPhysics(world),
		game.WithSimRanks(ranks),
		game.WithSimSettings(settings),
		game.WithSimSeed(seed),
	)
	bot := game.NewAutoplayer(strategy, seed)

	for i := 0; i < ticks; i++ {
		bot.Play(ts.Session)
		ts.RunTicks(1)
		if ts.Session.State() == game.StateGameOver {
			break
		}
	}

	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		report:           ts.Report(),
		firstMergeTick:   firstTick(ts.SimLog, "board", "merge"),
		firstWarningTick: firstTick(ts.SimLog, "deadline", "warning"),
		drops:            ts.SimLog.CountCategory("board", "drop"),
	}
}

func firstTick(sl *game.SimLog, category, key string) int {
	if es := sl.Filter(category, key); len(es) > 0 {
		return es[0].Tick
	}
	return -1
}

func printRun(rs runStats, ranks *game.RankTable) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Print(rs.report.Format(ranks))
	fmt.Printf("phase_markers: first_merge=%d first_warning=%d drops_logged=%d\n", rs.firstMergeTick, rs.firstWarningTick, rs.drops)
	fmt.Printf("score: %s\n\n", numfmt.Score(rs.report.Score))
}

func printAggregate(all []runStats, ranks *game.RankTable) {
	reports := make([]game.RunReport, 0, len(all))
	for _, rs := range all {
		reports = append(reports, rs.report)
	}
	agg := game.AggregateReports(reports)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", agg.Runs)
	fmt.Printf("score: mean=%s min=%s max=%s\n",
		numfmt.Score(int(agg.MeanScore+0.5)), numfmt.Score(agg.MinScore), numfmt.Score(agg.MaxScore))
	fmt.Printf("avg_per_run: merges=%.1f ticks=%.1f\n", agg.MeanMerges, agg.MeanTicks)
	fmt.Printf("game_over_rate=%.0f%%\n", agg.GameOverRate*100)
	best := "-"
	if ranks.Valid(agg.BestRank) {
		best = ranks.Info(agg.BestRank).Name
	}
	fmt.Printf("best_rank=%d (%s)\n", agg.BestRank, best)
}
