package game

import (
	"fmt"
	"math"
	"strings"
)

// RunReport tallies one session.
type RunReport struct {
	Ticks       int
	Drops       int
	Merges      int
	Vanishes    int
	Warnings    int
	Score       int
	HighScore   int
	HighestRank Rank
	GameOver    bool
	GameOverAt  int

	// MergesByRank counts merges by the rank they produced.
	MergesByRank map[Rank]int
}

// RunReporter builds a RunReport from bus events.
type RunReporter struct {
	report RunReport
}

// NewRunReporter creates an empty reporter.
func NewRunReporter() *RunReporter {
	r := &RunReporter{}
	r.clear()
	return r
}

func (r *RunReporter) clear() {
	r.report = RunReport{MergesByRank: make(map[Rank]int), GameOverAt: -1}
}

// Record is a bus Handler.
func (r *RunReporter) Record(ev Event) {
	if ev.Tick > r.report.Ticks {
		r.report.Ticks = ev.Tick
	}
	switch ev.Kind {
	case EventDrop:
		r.report.Drops++
		r.raise(ev.Rank)
	case EventMerge:
		r.report.Merges++
		r.report.MergesByRank[ev.Rank]++
		r.raise(ev.Rank)
	case EventVanish:
		r.report.Vanishes++
	case EventDeadlineWarning:
		if ev.Warning {
			r.report.Warnings++
		}
	case EventScoreChanged:
		r.report.Score = ev.Score
		r.report.HighScore = ev.HighScore
	case EventGameOver:
		r.report.GameOver = true
		r.report.GameOverAt = ev.Tick
	case EventStateChanged:
		// Every new game begins a fresh tally; the high score carries over.
		if ev.To == StatePlaying {
			high := r.report.HighScore
			r.clear()
			r.report.HighScore = high
		}
	}
}

func (r *RunReporter) raise(rank Rank) {
	if rank > r.report.HighestRank {
		r.report.HighestRank = rank
	}
}

// Report returns a copy of the current tally.
func (r *RunReporter) Report() RunReport {
	out := r.report
	out.MergesByRank = make(map[Rank]int, len(r.report.MergesByRank))
	for k, v := range r.report.MergesByRank {
		out.MergesByRank[k] = v
	}
	return out
}

// Format returns a multi-line description of the run.
func (rr RunReport) Format(ranks *RankTable) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ticks=%d drops=%d merges=%d vanishes=%d warnings=%d\n",
		rr.Ticks, rr.Drops, rr.Merges, rr.Vanishes, rr.Warnings)
	outcome := "survived"
	if rr.GameOver {
		outcome = fmt.Sprintf("game over at T=%d", rr.GameOverAt)
	}
	name := "-"
	if ranks != nil && ranks.Valid(rr.HighestRank) {
		name = ranks.Info(rr.HighestRank).Name
	}
	fmt.Fprintf(&sb, "score=%d high=%d highest_rank=%d (%s) outcome=%s\n",
		rr.Score, rr.HighScore, rr.HighestRank, name, outcome)
	if len(rr.MergesByRank) > 0 {
		sb.WriteString("merges_by_rank:")
		for rank := Rank(2); ranks != nil && rank <= ranks.MaxRank(); rank++ {
			if n := rr.MergesByRank[rank]; n > 0 {
				fmt.Fprintf(&sb, " r%d=%d", rank, n)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Aggregate summarises many runs.
type Aggregate struct {
	Runs         int
	MeanScore    float64
	MinScore     int
	MaxScore     int
	MeanMerges   float64
	MeanTicks    float64
	GameOverRate float64
	BestRank     Rank
}

// AggregateReports reduces runs to an Aggregate. An empty slice yields the
// zero value.
func AggregateReports(runs []RunReport) Aggregate {
	if len(runs) == 0 {
		return Aggregate{}
	}
	agg := Aggregate{Runs: len(runs), MinScore: math.MaxInt}
	over := 0
	for _, r := range runs {
		agg.MeanScore += float64(r.Score)
		agg.MeanMerges += float64(r.Merges)
		agg.MeanTicks += float64(r.Ticks)
		agg.MinScore = min(agg.MinScore, r.Score)
		agg.MaxScore = max(agg.MaxScore, r.Score)
		if r.HighestRank > agg.BestRank {
			agg.BestRank = r.HighestRank
		}
		if r.GameOver {
			over++
		}
	}
	n := float64(len(runs))
	agg.MeanScore /= n
	agg.MeanMerges /= n
	agg.MeanTicks /= n
	agg.GameOverRate = float64(over) / n
	return agg
}
