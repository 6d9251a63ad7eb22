package game

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// SimReport is a snapshot of session metrics at one tick.
type SimReport struct {
	Tick      int
	Scene     Scene
	Stock     float64
	Suspicion float64
	Level     int
	Progress  float64

	Resolved int
	Total    int

	// Cumulative choice counts, taken from the structured sim log.
	HonestChoices int
	FraudChoices  int
	FlaggedDocs   int
	DecayEvents   int
}

// SimReporter collects periodic session snapshots and produces windowed
// summaries. The GUI collects every second; the headless CLI drives it
// directly off a TestSim.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a snapshot from the current session state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(s *Session, log *SimLog) {
	rpt := SimReport{
		Tick:      s.CurrentTick(),
		Scene:     s.Scene(),
		Stock:     s.StockPrice(),
		Suspicion: s.Suspicion(),
		Level:     s.CurrentLevelID(),
		Progress:  s.LevelProgress(),
	}
	for _, d := range s.DecisionPoints() {
		rpt.Total++
		if d.Resolved {
			rpt.Resolved++
		}
	}
	rpt.HonestChoices = countByValue(log, "decision", "resolved", "honest")
	rpt.FraudChoices = countByValue(log, "decision", "resolved", "fraud")
	rpt.FlaggedDocs = log.CountCategory("decision", "flagged")
	rpt.DecayEvents = countDecay(log)
	r.history = append(r.history, rpt)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

func countByValue(log *SimLog, category, key, value string) int {
	n := 0
	for _, e := range log.Filter(category, key) {
		if e.Value == value {
			n++
		}
	}
	return n
}

func countDecay(log *SimLog) int {
	return log.CountCategory("stock", "passive")
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	MinStock, MaxStock, AvgStock             float64
	MinSuspicion, MaxSuspicion, AvgSuspicion float64
	StockTrend                               float64 // per-sample delta, + rising
	SuspicionTrend                           float64

	LastLevel    int
	LastProgress float64
	LastScene    Scene

	HonestChoices int
	FraudChoices  int
	FlaggedDocs   int
	DecayEvents   int
}

// WindowSummary aggregates the reports inside the recent window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	first := window[len(window)-1]
	last := window[0]
	wr := &WindowReport{
		FromTick:      first.Tick,
		ToTick:        last.Tick,
		SampleCount:   len(window),
		MinStock:      math.MaxFloat64,
		MinSuspicion:  math.MaxFloat64,
		LastLevel:     last.Level,
		LastProgress:  last.Progress,
		LastScene:     last.Scene,
		HonestChoices: last.HonestChoices,
		FraudChoices:  last.FraudChoices,
		FlaggedDocs:   last.FlaggedDocs,
		DecayEvents:   last.DecayEvents,
	}
	for _, rpt := range window {
		wr.MinStock = math.Min(wr.MinStock, rpt.Stock)
		wr.MaxStock = math.Max(wr.MaxStock, rpt.Stock)
		wr.AvgStock += rpt.Stock
		wr.MinSuspicion = math.Min(wr.MinSuspicion, rpt.Suspicion)
		wr.MaxSuspicion = math.Max(wr.MaxSuspicion, rpt.Suspicion)
		wr.AvgSuspicion += rpt.Suspicion
	}
	n := float64(len(window))
	wr.AvgStock /= n
	wr.AvgSuspicion /= n
	if len(window) > 1 {
		wr.StockTrend = (last.Stock - first.Stock) / (n - 1)
		wr.SuspicionTrend = (last.Suspicion - first.Suspicion) / (n - 1)
	}
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Session Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "\nscene=%s  level=%d  progress=%.0f%%\n", wr.LastScene, wr.LastLevel, wr.LastProgress*100)

	sb.WriteString("\n--- Stock Price ---\n")
	fmt.Fprintf(&sb, "  min=%.2f  avg=%.2f  max=%.2f  trend=%+.3f/sample (%s)\n",
		wr.MinStock, wr.AvgStock, wr.MaxStock, wr.StockTrend, trendLabel(wr.StockTrend))

	sb.WriteString("\n--- Suspicion ---\n")
	fmt.Fprintf(&sb, "  min=%.1f  avg=%.1f  max=%.1f  trend=%+.3f/sample (%s)\n",
		wr.MinSuspicion, wr.AvgSuspicion, wr.MaxSuspicion, wr.SuspicionTrend, trendLabel(wr.SuspicionTrend))

	sb.WriteString("\n--- Choices ---\n")
	fmt.Fprintf(&sb, "  honest=%d  fraud=%d  flagged_docs=%d  decay_events=%d\n",
		wr.HonestChoices, wr.FraudChoices, wr.FlaggedDocs, wr.DecayEvents)
	return sb.String()
}

func trendLabel(t float64) string {
	switch {
	case t > 0.05:
		return "rising"
	case t < -0.05:
		return "falling"
	default:
		return "flat"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "scene=%s stock=%.2f suspicion=%.1f level=%d progress=%.0f%%\n",
		rpt.Scene, rpt.Stock, rpt.Suspicion, rpt.Level, rpt.Progress*100)
	fmt.Fprintf(&sb, "resolved=%d/%d honest=%d fraud=%d flagged=%d\n",
		rpt.Resolved, rpt.Total, rpt.HonestChoices, rpt.FraudChoices, rpt.FlaggedDocs)
	return sb.String()
}
