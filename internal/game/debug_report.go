package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport builds shareable text snapshots of a running session for bug
// reports. F9 copies one to the system clipboard.
type DebugReport struct {
	lastTicks int
}

func NewDebugReport() *DebugReport {
	return &DebugReport{lastTicks: 300}
}

// Build renders the session, player and recent sim-log tail as plain text.
func (r *DebugReport) Build(g *Game) string {
	s := g.session
	from := s.CurrentTick() - r.lastTicks + 1
	if from < 0 {
		from = 0
	}

	var b strings.Builder
	b.WriteString("--- clearview debug report ---\n")
	fmt.Fprintf(&b, "run=%s\n", s.RunID())
	fmt.Fprintf(&b, "tick=%d scene=%s difficulty=%s\n", s.CurrentTick(), s.Scene(), s.Config().Label)
	fmt.Fprintf(&b, "stock=%.2f suspicion=%.1f level=%d progress=%.0f%%\n",
		s.StockPrice(), s.Suspicion(), s.CurrentLevelID(), s.LevelProgress()*100)
	fmt.Fprintf(&b, "env: %02d:00 %s  modal=%v\n", s.TimeOfDay(), s.Weather(), s.ModalOpen())
	fmt.Fprintf(&b, "player: pos=(%.1f,%.1f,%.1f) yaw=%.2f pitch=%.2f speed=%.1f\n",
		g.player.Pos.X, g.player.Pos.Y, g.player.Pos.Z, g.player.Yaw, g.player.Pitch, g.player.Speed())

	b.WriteString("decisions:\n")
	for _, d := range s.DecisionPoints() {
		state := "locked"
		if d.Resolved {
			state = "resolved"
		} else if d.Level <= s.CurrentLevelID() {
			state = "open"
		}
		fmt.Fprintf(&b, "  %-28s L%d %-8s dist=%.1f\n", d.ID, d.Level, state, g.player.Pos.Dist(d.Position))
	}

	b.WriteString("history:\n")
	for _, p := range s.StockHistory() {
		fmt.Fprintf(&b, "  %-40s $%.2f\n", p.Label, p.Price)
	}

	if wr := g.reporter.WindowSummary(); wr != nil {
		b.WriteString(wr.Format())
	}

	fmt.Fprintf(&b, "sim log [T=%d..%d]:\n", from, s.CurrentTick())
	for _, e := range g.simLog.FilterTickRange(from, s.CurrentTick()) {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// copyDebugReport puts the current report on the system clipboard. Clipboard
// failures only log; the sim keeps running.
func (g *Game) copyDebugReport() {
	text := g.debugReport.Build(g)
	if err := clipboard.WriteAll(text); err != nil {
		g.logger.Warn("clipboard copy failed", "err", err)
		return
	}
	g.logger.Info("debug report copied", "bytes", len(text))
}
