package game

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Window layout constants.
const (
	screenWidth  = 1280
	screenHeight = 720

	// hudScale is the integer upscale factor applied to all HUD text.
	hudScale = 2

	simDT = 1.0 / 60.0
)

// uiModal is the blocking overlay currently on screen, if any.
type uiModal int

const (
	modalNone uiModal = iota
	modalDecision
	modalDocument
	modalQuiz
	modalLevelUp
	modalArchive
)

// archivePage selects which reference page the archive overlay shows.
type archivePage int

const (
	pageTimeline archivePage = iota
	pageFigures
	pageMethods
	pageImpact

	archivePageCount
)

type Game struct {
	width  int
	height int

	session *Session
	world   *World
	player  *PlayerController
	simLog  *SimLog
	logger  *slog.Logger

	commentary *Commentary
	search     *Search

	// Blocking overlay state. The session only hears modal-open/close events;
	// which overlay is up is presentation concern.
	modal     uiModal
	activeDoc *DecisionPoint // decision or document the open modal targets

	// Consultant panel state inside the document modal.
	consultText    string
	consultPending int // in-flight request id, 0 = none

	// Archive search box state.
	searchInput   string
	searchFocus   bool
	searchPending int
	searchFilter  []string // nil = no filter, empty = no matches
	page          archivePage

	// Menu state.
	menuDifficulty Difficulty

	// Edge-triggered input.
	prevKeys map[ebiten.Key]bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64

	// Offscreen buffer for the 3D view, rendered then blitted to the window.
	worldBuf *ebiten.Image
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	reporter    *SimReporter
	debugReport *DebugReport
}

func New(logger *slog.Logger, gen ContentGenerator) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	simLog := NewSimLog(false)
	g := &Game{
		width:          screenWidth,
		height:         screenHeight,
		session:        NewSession(simLog),
		world:          GenerateWorld(time.Now().UnixNano()),
		player:         NewPlayerController(),
		simLog:         simLog,
		logger:         logger,
		commentary:     NewCommentary(gen, logger),
		search:         NewSearch(gen, logger),
		menuDifficulty: DifficultyMedium,
		prevKeys:       make(map[ebiten.Key]bool),
		simSpeed:       1.0,
		worldBuf:       ebiten.NewImage(screenWidth, screenHeight),
		hudBuf:         ebiten.NewImage(screenWidth/hudScale, screenHeight/hudScale),
		reporter:       NewSimReporter(0),
		debugReport:    NewDebugReport(),
	}
	return g
}

func (g *Game) Update() error {
	// Input is handled every frame regardless of sim speed.
	g.handleInput()
	g.drainServices()

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one simulation tick: session clock first, then the player.
func (g *Game) simTick() {
	g.session.Tick()

	if g.session.Scene() == SceneGameplay && g.modal == modalNone {
		g.player.Update(g.readMoveIntent(), simDT)
	}
	if g.session.CurrentTick()%60 == 0 {
		g.reporter.Collect(g.session, g.simLog)
	}
}

// drainServices delivers finished commentary and search results to the UI.
func (g *Game) drainServices() {
	if r, ok := g.commentary.Poll(); ok {
		if r.RequestID == g.consultPending {
			g.consultText = r.Text
			g.consultPending = 0
		}
	}
	if r, ok := g.search.Poll(); ok {
		if r.RequestID == g.searchPending {
			g.searchFilter = r.IDs
			g.searchPending = 0
		}
	}
}

// readMoveIntent samples held movement keys. Not edge-triggered: movement is
// continuous while held.
func (g *Game) readMoveIntent() MoveIntent {
	return MoveIntent{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW),
		Backward: ebiten.IsKeyPressed(ebiten.KeyS),
		StrafeL:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeR:  ebiten.IsKeyPressed(ebiten.KeyD),
		TurnL:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyQ),
		TurnR:    ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyE),
		LookUp:   ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		LookDown: ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
}

// pressed reports an edge-triggered keypress, recording the key for the
// end-of-frame prevKeys swap.
func (g *Game) pressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

// handleInput processes discrete keypresses (edge-triggered) per scene.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	defer func() { g.prevKeys = currentKeys }()

	// Sim speed controls work everywhere: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if g.pressed(currentKeys, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.pressed(currentKeys, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.pressed(currentKeys, ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}
	if g.pressed(currentKeys, ebiten.KeyF9) {
		g.copyDebugReport()
	}

	switch g.session.Scene() {
	case SceneMenu:
		g.handleMenuInput(currentKeys)
	case SceneGameplay:
		g.handleGameplayInput(currentKeys)
	case SceneGameOverArrested, SceneGameOverFired, SceneVictory:
		if g.pressed(currentKeys, ebiten.KeyEnter) {
			g.restart()
		}
	}
}

func (g *Game) handleMenuInput(currentKeys map[ebiten.Key]bool) {
	if g.pressed(currentKeys, ebiten.Key1) {
		g.menuDifficulty = DifficultyEasy
	}
	if g.pressed(currentKeys, ebiten.Key2) {
		g.menuDifficulty = DifficultyMedium
	}
	if g.pressed(currentKeys, ebiten.Key3) {
		g.menuDifficulty = DifficultyHard
	}
	if g.pressed(currentKeys, ebiten.KeyEnter) {
		g.session.StartInvestigation(g.menuDifficulty)
	}
}

func (g *Game) handleGameplayInput(currentKeys map[ebiten.Key]bool) {
	// The session opens the quiz on its own schedule; surface it as soon as
	// it exists and nothing else is blocking.
	if g.modal == modalNone {
		if g.session.Quiz() != nil {
			g.modal = modalQuiz
		} else if g.session.LevelPromptOpen() {
			g.modal = modalLevelUp
		}
	}

	switch g.modal {
	case modalNone:
		g.handleWorldInput(currentKeys)
	case modalDecision:
		g.handleDecisionInput(currentKeys)
	case modalDocument:
		g.handleDocumentInput(currentKeys)
	case modalQuiz:
		g.handleQuizInput(currentKeys)
	case modalLevelUp:
		if g.pressed(currentKeys, ebiten.KeyEnter) {
			g.modal = modalNone
			g.session.AdvanceLevel()
		}
	case modalArchive:
		g.handleArchiveInput(currentKeys)
	}
}

func (g *Game) handleWorldInput(currentKeys map[ebiten.Key]bool) {
	if g.pressed(currentKeys, ebiten.KeySpace) {
		if d := NearestInteractable(g.player, g.session); d != nil {
			g.openDecision(d)
		}
	}
	if g.pressed(currentKeys, ebiten.KeyR) {
		g.session.ToggleWeather()
	}
	if g.pressed(currentKeys, ebiten.KeyT) {
		g.session.AdvanceHour()
	}
	if g.pressed(currentKeys, ebiten.KeyTab) {
		g.modal = modalArchive
		g.session.OpenModal()
	}
}

// openDecision raises the modal matching the decision point's kind.
func (g *Game) openDecision(d *DecisionPoint) {
	g.activeDoc = d
	g.consultText = ""
	g.consultPending = 0
	if d.IsDocument() {
		g.modal = modalDocument
	} else {
		g.modal = modalDecision
	}
	g.session.OpenModal()
}

func (g *Game) closeModal() {
	g.modal = modalNone
	g.activeDoc = nil
	g.session.CloseModal()
}

func (g *Game) handleDecisionInput(currentKeys map[ebiten.Key]bool) {
	d := g.activeDoc
	if d == nil {
		g.closeModal()
		return
	}
	if g.pressed(currentKeys, ebiten.Key1) {
		id := d.ID
		g.closeModal()
		g.session.ResolveDecision(id, ChoiceHonest)
		return
	}
	if g.pressed(currentKeys, ebiten.Key2) {
		id := d.ID
		g.closeModal()
		g.session.ResolveDecision(id, ChoiceFraud)
		return
	}
	if g.pressed(currentKeys, ebiten.KeyEscape) {
		g.closeModal()
	}
}

func (g *Game) handleDocumentInput(currentKeys map[ebiten.Key]bool) {
	d := g.activeDoc
	if d == nil || d.Doc == nil {
		g.closeModal()
		return
	}
	if g.pressed(currentKeys, ebiten.KeyF) {
		id := d.ID
		g.closeModal()
		g.session.FlagDocument(id)
		return
	}
	if g.pressed(currentKeys, ebiten.KeyC) && g.consultPending == 0 {
		g.consultPending = g.commentary.Analyze(d.Doc.Title, d.Doc.Content,
			"What does this document reveal about the company's true financial state?",
			g.session.Config().AuditorAggression)
	}
	if g.pressed(currentKeys, ebiten.KeyEscape) {
		g.closeModal()
	}
}

func (g *Game) handleQuizInput(currentKeys map[ebiten.Key]bool) {
	q := g.session.Quiz()
	if q == nil {
		// Quiz resolved underneath us (victory or level prompt next frame).
		g.modal = modalNone
		return
	}
	if q.Answered {
		if g.pressed(currentKeys, ebiten.KeyEnter) {
			g.session.ContinueQuiz()
			if g.session.Quiz() == nil {
				g.modal = modalNone
			}
		}
		return
	}
	optionKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
	for i, k := range optionKeys {
		if g.pressed(currentKeys, k) {
			g.session.AnswerQuiz(i)
			break
		}
	}
}

func (g *Game) handleArchiveInput(currentKeys map[ebiten.Key]bool) {
	if g.searchFocus {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r >= ' ' {
				g.searchInput += string(r)
			}
		}
		if g.pressed(currentKeys, ebiten.KeyBackspace) && len(g.searchInput) > 0 {
			g.searchInput = g.searchInput[:len(g.searchInput)-1]
		}
		if g.pressed(currentKeys, ebiten.KeyEnter) {
			g.searchFocus = false
			g.searchPending = g.search.Query(g.searchInput, g.archiveDocs())
		}
		if g.pressed(currentKeys, ebiten.KeyEscape) {
			g.searchFocus = false
			g.searchInput = ""
			g.searchFilter = nil
		}
		return
	}

	if g.pressed(currentKeys, ebiten.KeyTab) || g.pressed(currentKeys, ebiten.KeyEscape) {
		g.modal = modalNone
		g.session.CloseModal()
		return
	}
	if g.pressed(currentKeys, ebiten.KeyArrowRight) {
		g.page = (g.page + 1) % archivePageCount
	}
	if g.pressed(currentKeys, ebiten.KeyArrowLeft) {
		g.page = (g.page + archivePageCount - 1) % archivePageCount
	}
	if g.pressed(currentKeys, ebiten.KeySlash) {
		g.searchFocus = true
		g.searchInput = ""
	}
	if g.pressed(currentKeys, ebiten.KeyX) {
		g.searchFilter = nil
	}
}

// archiveDocs flattens the reference tables into the searchable document set.
func (g *Game) archiveDocs() []SearchDoc {
	var docs []SearchDoc
	for _, ev := range HistoricalTimeline {
		docs = append(docs, SearchDoc{ID: "timeline:" + ev.Date, Title: ev.Date, Content: ev.Event})
	}
	for _, f := range KeyFigures {
		docs = append(docs, SearchDoc{ID: "figure:" + f.Name, Title: f.Name, Content: f.Role + ". " + f.Description + " " + f.Outcome})
	}
	for _, m := range FraudMethods {
		docs = append(docs, SearchDoc{ID: "method:" + m.Name, Title: m.Name, Content: m.Description})
	}
	return docs
}

// matchesFilter applies the tri-state search filter to an archive doc id.
func (g *Game) matchesFilter(id string) bool {
	if g.searchFilter == nil {
		return true
	}
	for _, m := range g.searchFilter {
		if m == id {
			return true
		}
	}
	return false
}

// restart resets the session and everything derived from it.
func (g *Game) restart() {
	g.session.Restart()
	g.world = GenerateWorld(time.Now().UnixNano())
	g.player = NewPlayerController()
	g.modal = modalNone
	g.activeDoc = nil
	g.consultText = ""
	g.consultPending = 0
	g.searchFilter = nil
	g.searchInput = ""
	g.searchFocus = false
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
