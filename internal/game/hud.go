package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font metrics at 1x.
const (
	lineH = 12
	charW = 6
	padX  = 6
	padY  = 5
)

var (
	panelBG     = color.RGBA{R: 8, G: 10, B: 14, A: 225}
	panelBorder = color.RGBA{R: 60, G: 120, B: 90, A: 200}
	dimBG       = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

// blitHUD composites hudBuf onto the screen at hudScale.
func (g *Game) blitHUD(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// panel draws a bordered text panel into hudBuf at (bx,by), 1x coordinates.
func (g *Game) panel(bx, by float32, lines []string) {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, panelBG, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, panelBorder, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}
}

// centeredPanel draws a panel horizontally centred in hudBuf at row by.
func (g *Game) centeredPanel(by float32, lines []string) {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	bx := (float32(g.width/hudScale) - boxW) / 2
	g.panel(bx, by, lines)
}

func (g *Game) drawLoading(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 8, B: 12, A: 255})
	g.hudBuf.Clear()

	p := g.session.LoadingProgress()
	bar := strings.Repeat("=", p/5) + strings.Repeat(" ", 20-p/5)
	g.centeredPanel(float32(g.height/hudScale/2)-20, []string{
		"WORLDCOM  --  GENERAL ACCOUNTING",
		"",
		fmt.Sprintf("loading assets  [%s] %3d%%", bar, p),
	})
	g.blitHUD(screen)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 8, B: 12, A: 255})
	g.hudBuf.Clear()

	lines := []string{
		"THE WORLDCOM FILES",
		"inside the accounting fraud, 1999-2002",
		"",
		"select difficulty:",
	}
	for d := DifficultyEasy; d < difficultyCount; d++ {
		cfg := ConfigFor(d)
		cursor := "  "
		if d == g.menuDifficulty {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s[%d] %-8s %s", cursor, int(d)+1, cfg.Label, cfg.Description))
	}
	lines = append(lines, "", "[Enter] start investigation")
	g.centeredPanel(float32(g.height/hudScale/2)-60, lines)
	g.blitHUD(screen)
}

func (g *Game) drawTerminal(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 6, B: 6, A: 255})
	g.hudBuf.Clear()

	var lines []string
	switch g.session.Scene() {
	case SceneGameOverArrested:
		lines = []string{
			"ARRESTED",
			"",
			"The SEC and FBI traced the fraudulent entries back to your desk.",
			fmt.Sprintf("final stock price: $%.2f   suspicion: %.0f%%", g.session.StockPrice(), g.session.Suspicion()),
		}
	case SceneGameOverFired:
		lines = []string{
			"FIRED",
			"",
			"The stock collapsed. The board terminated you and the markets moved on.",
			fmt.Sprintf("final stock price: $%.2f", g.session.StockPrice()),
		}
	case SceneVictory:
		lines = []string{
			"SURVIVED",
			"",
			"June 2002. Internal audit unwound $3.8B in transfers, and not one",
			"entry traced back to you. You resigned before the restatement hit.",
			fmt.Sprintf("final suspicion: %.0f%%   difficulty: %s", g.session.Suspicion(), g.session.Config().Label),
		}
	}
	lines = append(lines, "", "[Enter] play again")
	g.centeredPanel(float32(g.height/hudScale/2)-40, lines)
	g.blitHUD(screen)
}

// drawHUD renders the gameplay status strip and interaction hint.
func (g *Game) drawHUD(screen *ebiten.Image) {
	g.hudBuf.Clear()

	lvl := g.session.CurrentLevel()
	status := []string{
		fmt.Sprintf("WCOM $%-7.2f  suspicion %3.0f%%  %s", g.session.StockPrice(), g.session.Suspicion(), meterBar(g.session.Suspicion())),
		fmt.Sprintf("level %d/%d  %s [%s]  progress %3.0f%%", lvl.ID, MaxLevel(), lvl.Title, lvl.Rank, g.session.LevelProgress()*100),
		fmt.Sprintf("%02d:00  %s", g.session.TimeOfDay(), g.session.Weather()),
	}
	if g.simSpeed != 1 {
		label := "PAUSED"
		if g.simSpeed > 0 {
			label = fmt.Sprintf("%.1fx", g.simSpeed)
		}
		status = append(status, "sim: "+label)
	}
	g.panel(4, 4, status)

	bufH := float32(g.height / hudScale)
	help := []string{"WASD move  arrows/Q/E look  Space interact", "Tab archive  R weather  T clock  P pause"}
	if d := NearestInteractable(g.player, g.session); d != nil {
		help = append([]string{fmt.Sprintf(">> %s <<  [Space]", d.Title)}, help...)
	}
	g.panel(4, bufH-float32(len(help)*lineH+padY*2)-4, help)
	g.drawStockChart()

	g.blitHUD(screen)
}

// drawStockChart renders the stock history as a sparkline in the top-right
// corner of hudBuf. One point per resolved decision plus the IPO baseline.
func (g *Game) drawStockChart() {
	const chartW, chartH = 96, 30
	hist := g.session.StockHistory()
	bx := float32(g.width/hudScale) - chartW - 4
	by := float32(4)
	vector.FillRect(g.hudBuf, bx, by, chartW, chartH, panelBG, false)
	vector.StrokeRect(g.hudBuf, bx, by, chartW, chartH, 1.0, panelBorder, false)
	if len(hist) < 2 {
		return
	}
	lo, hi := hist[0].Price, hist[0].Price
	for _, p := range hist {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
	}
	span := hi - lo
	if span < 1 {
		span = 1
	}
	lineCol := color.RGBA{R: 120, G: 220, B: 150, A: 255}
	if hist[len(hist)-1].Price < hist[0].Price {
		lineCol = color.RGBA{R: 230, G: 100, B: 90, A: 255}
	}
	step := float32(chartW-8) / float32(len(hist)-1)
	for i := 1; i < len(hist); i++ {
		y0 := by + 4 + float32(chartH-8)*float32((hi-hist[i-1].Price)/span)
		y1 := by + 4 + float32(chartH-8)*float32((hi-hist[i].Price)/span)
		x0 := bx + 4 + step*float32(i-1)
		x1 := bx + 4 + step*float32(i)
		vector.StrokeLine(g.hudBuf, x0, y0, x1, y1, 1.0, lineCol, false)
	}
}

// meterBar renders a 10-cell suspicion meter.
func meterBar(v float64) string {
	filled := int(v / 10)
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}

func (g *Game) drawModal(screen *ebiten.Image) {
	if g.modal == modalNone {
		return
	}
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), dimBG, false)
	g.hudBuf.Clear()

	switch g.modal {
	case modalDecision:
		g.drawDecisionModal()
	case modalDocument:
		g.drawDocumentModal()
	case modalQuiz:
		g.drawQuizModal()
	case modalLevelUp:
		g.drawLevelUpModal()
	case modalArchive:
		g.drawArchiveModal()
	}
	g.blitHUD(screen)
}

func (g *Game) drawDecisionModal() {
	d := g.activeDoc
	if d == nil {
		return
	}
	lines := []string{d.Title, ""}
	lines = append(lines, wrap(d.Problem, 64)...)
	lines = append(lines, "",
		fmt.Sprintf("[1] %s", d.Honest.Label),
		fmt.Sprintf("      stock %+.2f  suspicion %+.0f", d.Honest.StockImpact, d.Honest.SuspicionImpact))
	lines = append(lines, wrapIndent(d.Honest.Description, 58, "      ")...)
	lines = append(lines, "",
		fmt.Sprintf("[2] %s", d.Fraud.Label),
		fmt.Sprintf("      stock %+.2f  suspicion %+.0f", d.Fraud.StockImpact, d.Fraud.SuspicionImpact))
	lines = append(lines, wrapIndent(d.Fraud.Description, 58, "      ")...)
	lines = append(lines, "", "[Esc] step away")
	g.centeredPanel(40, lines)
}

func (g *Game) drawDocumentModal() {
	d := g.activeDoc
	if d == nil || d.Doc == nil {
		return
	}
	lines := []string{"INTERNAL DOCUMENT: " + d.Doc.Title, ""}
	lines = append(lines, wrap(d.Doc.Content, 68)...)
	lines = append(lines, "", "[F] flag as suspicious   [C] ask forensic consultant   [Esc] close")
	if g.consultPending != 0 {
		lines = append(lines, "", "consultant: analyzing...")
	} else if g.consultText != "" {
		lines = append(lines, "", "consultant:")
		lines = append(lines, wrapIndent(g.consultText, 62, "  ")...)
	}
	g.centeredPanel(30, lines)
}

func (g *Game) drawQuizModal() {
	q := g.session.Quiz()
	if q == nil {
		return
	}
	cur := q.Question()
	lines := []string{
		fmt.Sprintf("AUDIT REVIEW  --  question %d/%d", q.Index+1, len(q.Questions)),
		"",
	}
	lines = append(lines, wrap(cur.Question, 64)...)
	lines = append(lines, "")
	for i, opt := range cur.Options {
		marker := " "
		if q.Answered && i == q.Selected {
			marker = ">"
		}
		lines = append(lines, fmt.Sprintf("%s[%d] %s", marker, i+1, opt))
	}
	if q.Answered {
		lines = append(lines, "")
		if q.Correct {
			lines = append(lines, "CORRECT")
		} else {
			lines = append(lines, "INCORRECT -- try again")
		}
		lines = append(lines, wrap(cur.Explanation, 64)...)
		lines = append(lines, "", "[Enter] continue")
	}
	g.centeredPanel(60, lines)
}

func (g *Game) drawLevelUpModal() {
	next := LevelByID(g.session.CurrentLevelID() + 1)
	g.centeredPanel(80, []string{
		"AUDIT PHASE COMPLETE",
		"",
		fmt.Sprintf("next: level %d  %s  [%s]  target EPS %s", next.ID, next.Title, next.Rank, next.TargetEPS),
		"",
		"[Enter] continue the investigation",
	})
}

func (g *Game) drawArchiveModal() {
	titles := [archivePageCount]string{"TIMELINE", "KEY FIGURES", "FRAUD METHODS", "AFTERMATH"}
	lines := []string{
		fmt.Sprintf("CASE ARCHIVE  --  %s   [</>] page  [/] search  [Tab] close", titles[g.page]),
		"",
	}

	searchLine := "search: " + g.searchInput
	if g.searchFocus {
		searchLine += "_"
	} else if g.searchPending != 0 {
		searchLine += "  (searching...)"
	} else if g.searchFilter != nil {
		searchLine += fmt.Sprintf("  (%d matches, [X] clear)", len(g.searchFilter))
	}
	lines = append(lines, searchLine, "")

	switch g.page {
	case pageTimeline:
		for _, ev := range HistoricalTimeline {
			if !g.matchesFilter("timeline:" + ev.Date) {
				continue
			}
			lines = append(lines, fmt.Sprintf("%-8s %s", ev.Date, ev.Event))
		}
	case pageFigures:
		for _, f := range KeyFigures {
			if !g.matchesFilter("figure:" + f.Name) {
				continue
			}
			lines = append(lines, fmt.Sprintf("%-18s %s", f.Name, f.Role))
			lines = append(lines, wrapIndent(f.Outcome, 56, "                   ")...)
		}
	case pageMethods:
		for _, m := range FraudMethods {
			if !g.matchesFilter("method:" + m.Name) {
				continue
			}
			lines = append(lines, m.Name)
			lines = append(lines, wrapIndent(m.Description, 60, "  ")...)
		}
	case pageImpact:
		for _, f := range WorldImpact {
			lines = append(lines, fmt.Sprintf("%-24s %s", f.Title, f.Stat))
			lines = append(lines, wrapIndent(f.Detail, 60, "  ")...)
		}
	}
	if g.searchFilter != nil && len(g.searchFilter) == 0 {
		lines = append(lines, "no documents matched the query")
	}
	g.centeredPanel(20, lines)
}

// wrap splits s into lines of at most width characters on word boundaries.
func wrap(s string, width int) []string {
	return wrapIndent(s, width, "")
}

func wrapIndent(s string, width int, indent string) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var out []string
	line := indent + words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width+len(indent) {
			out = append(out, line)
			line = indent + w
			continue
		}
		line += " " + w
	}
	return append(out, line)
}
