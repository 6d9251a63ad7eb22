package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Scene identifies the top-level state of a session.
type Scene int

const (
	SceneLoading Scene = iota
	SceneMenu
	SceneGameplay
	SceneGameOverArrested
	SceneGameOverFired
	SceneVictory
)

func (s Scene) String() string {
	switch s {
	case SceneLoading:
		return "LOADING"
	case SceneMenu:
		return "MENU"
	case SceneGameplay:
		return "GAMEPLAY"
	case SceneGameOverArrested:
		return "GAME_OVER_ARRESTED"
	case SceneGameOverFired:
		return "GAME_OVER_FIRED"
	case SceneVictory:
		return "VICTORY"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the scene ends the session (restart is the only exit).
func (s Scene) Terminal() bool {
	switch s {
	case SceneGameOverArrested, SceneGameOverFired, SceneVictory:
		return true
	default:
		return false
	}
}

// ChoiceKind selects which branch of a decision the player executes.
type ChoiceKind int

const (
	ChoiceHonest ChoiceKind = iota
	ChoiceFraud
)

func (c ChoiceKind) String() string {
	if c == ChoiceFraud {
		return "fraud"
	}
	return "honest"
}

// StockPoint is one snapshot of the stock-history chart series.
type StockPoint struct {
	Label string
	Price float64
}

// Session tuning constants. The sim runs at 60 ticks per second.
const (
	initialStockPrice = 64.50
	initialSuspicion  = 10.0
	firedFloor        = 5.00 // stock below this fires the player
	suspicionMax      = 100.0

	flagSuspicionDelta = 15.0 // document "flag as suspicious" increment; never difficulty-scaled

	quizOpenDelayTicks = 60 // resolution UI settles for 1s before the quiz interrupts
	decayIntervalTicks = 60 // passive stock decay cadence
	loadStepTicks      = 6  // loading bar advances +5% at this cadence
	loadDoneDelayTicks = 30 // pause on 100% before the menu appears
)

// Session owns all mutable game-progression state. Every mutation goes through
// its entry points; rendering reads it and never writes. Single-threaded: all
// calls happen on the sim tick loop.
type Session struct {
	runID          string // fresh per playthrough, keys log analysis across restarts
	scene          Scene
	stockPrice     float64
	suspicion      float64
	currentLevelID int
	decisions      []*DecisionPoint
	stockHistory   []StockPoint
	difficulty     Difficulty
	cfg            DifficultyConfig

	// Environment inputs. Player-toggleable, independent of scoring.
	weather   Weather
	timeOfDay int // hour, [0,24)

	// Blocking-modal bookkeeping. Passive decay is suspended (the cadence
	// counter frozen, not skipped) while any blocking modal is open.
	modalDepth int
	decayCount int

	quiz        *QuizState
	levelPrompt bool // level-transition prompt open (quiz passed, awaiting advance)

	loadingProgress int // 0..100

	tick  int
	sched *Scheduler
	log   *SimLog
}

// NewSession creates a session in the LOADING scene with fresh content tables.
func NewSession(log *SimLog) *Session {
	if log == nil {
		log = NewSimLog(false)
	}
	s := &Session{log: log, sched: NewScheduler()}
	s.reset()
	return s
}

// reset restores every field to its initial value. Shared by NewSession and Restart.
func (s *Session) reset() {
	s.runID = uuid.NewString()
	s.scene = SceneLoading
	s.stockPrice = initialStockPrice
	s.suspicion = initialSuspicion
	s.currentLevelID = 1
	s.decisions = newDecisionPoints()
	s.stockHistory = []StockPoint{{Label: "1999", Price: initialStockPrice}}
	s.difficulty = DifficultyMedium
	s.cfg = ConfigFor(DifficultyMedium)
	s.weather = WeatherClear
	s.timeOfDay = 9
	s.modalDepth = 0
	s.decayCount = 0
	s.quiz = nil
	s.levelPrompt = false
	s.loadingProgress = 0
	s.sched = NewScheduler()
}

// --- Read-only snapshot accessors ---

func (s *Session) RunID() string            { return s.runID }
func (s *Session) Scene() Scene             { return s.scene }
func (s *Session) StockPrice() float64      { return s.stockPrice }
func (s *Session) Suspicion() float64       { return s.suspicion }
func (s *Session) CurrentLevelID() int      { return s.currentLevelID }
func (s *Session) CurrentLevel() GameLevel  { return LevelByID(s.currentLevelID) }
func (s *Session) Difficulty() Difficulty   { return s.difficulty }
func (s *Session) Config() DifficultyConfig { return s.cfg }
func (s *Session) Weather() Weather         { return s.weather }
func (s *Session) TimeOfDay() int           { return s.timeOfDay }
func (s *Session) LoadingProgress() int     { return s.loadingProgress }
func (s *Session) Quiz() *QuizState         { return s.quiz }
func (s *Session) LevelPromptOpen() bool    { return s.levelPrompt }
func (s *Session) CurrentTick() int         { return s.tick }

// DecisionPoints returns the live decision-point collection. Callers treat it
// as read-only; mutation happens only through Session entry points.
func (s *Session) DecisionPoints() []*DecisionPoint {
	return s.decisions
}

// DecisionByID returns the decision point with the given id, or nil.
func (s *Session) DecisionByID(id string) *DecisionPoint {
	for _, d := range s.decisions {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// StockHistory returns the append-only chart series.
func (s *Session) StockHistory() []StockPoint {
	return s.stockHistory
}

// ModalOpen reports whether any blocking modal is open.
func (s *Session) ModalOpen() bool {
	return s.modalDepth > 0 || s.quiz != nil || s.levelPrompt
}

// InPlay reports whether a decision point is visible and interactable:
// unlocked by level and not yet resolved.
func (s *Session) InPlay(d *DecisionPoint) bool {
	return !d.Resolved && d.Level <= s.currentLevelID
}

// LevelProgress returns the resolved fraction among in-play-or-resolved points
// of the current level range, in [0,1]. A level range with no points at all
// reports complete rather than dividing by zero.
func (s *Session) LevelProgress() float64 {
	resolved, total := 0, 0
	for _, d := range s.decisions {
		if d.Level > s.currentLevelID {
			continue
		}
		total++
		if d.Resolved {
			resolved++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(resolved) / float64(total)
}

// --- Tick handlers ---

// Tick advances the session clock one sim tick: scheduler, loading progress,
// passive stock decay. Called once per sim tick in every scene.
func (s *Session) Tick() {
	s.tick++
	s.sched.Advance(s.tick, s.scene)

	switch s.scene {
	case SceneLoading:
		s.tickLoading()
	case SceneGameplay:
		s.tickDecay()
	}
}

// tickLoading advances the simulated loader and schedules the menu transition.
func (s *Session) tickLoading() {
	if s.loadingProgress >= 100 {
		return
	}
	if s.tick%loadStepTicks != 0 {
		return
	}
	s.loadingProgress += 5
	if s.loadingProgress >= 100 {
		s.loadingProgress = 100
		s.sched.After(s.tick, loadDoneDelayTicks, SceneLoading, func() {
			s.transition(SceneMenu)
		})
	}
}

// tickDecay applies passive stock decay while gameplay is uninterrupted.
// The cadence counter only advances with no blocking modal open, so a long
// modal does not bank decay debt that lands all at once on close.
func (s *Session) tickDecay() {
	if s.ModalOpen() {
		return
	}
	s.decayCount++
	if s.decayCount < decayIntervalTicks {
		return
	}
	s.decayCount = 0
	s.applyStockDelta(-s.cfg.PassiveDecayRate, "decay")
	s.log.Add(s.tick, "decay", "stock", "passive", fmt.Sprintf("%.2f", s.stockPrice), s.stockPrice)
	s.checkGameOver()
}

// --- User intents ---

// StartInvestigation freezes the difficulty and enters gameplay. Only valid
// from the menu; otherwise a no-op.
func (s *Session) StartInvestigation(d Difficulty) {
	if s.scene != SceneMenu {
		return
	}
	s.difficulty = d
	s.cfg = ConfigFor(d)
	s.log.Add(s.tick, "session", "run", "start", s.runID, float64(d))
	s.log.Add(s.tick, "session", "level", "difficulty", d.String(), float64(d))
	s.transition(SceneGameplay)
}

// ResolveDecision applies one branch of a choice-type decision point:
// difficulty scaling, clamped metric deltas, history snapshot, resolved flip,
// game-over checks (arrest before fired), then the level-completion check.
// Resolving an unknown, locked, document-type, or already-resolved point is a
// silent no-op.
func (s *Session) ResolveDecision(id string, choice ChoiceKind) {
	if s.scene != SceneGameplay {
		return
	}
	d := s.DecisionByID(id)
	if d == nil || d.Resolved || d.IsDocument() || d.Level > s.currentLevelID {
		return
	}

	out := d.Honest
	if choice == ChoiceFraud {
		out = d.Fraud
	}

	stockDelta := out.StockImpact
	if stockDelta < 0 {
		stockDelta *= s.cfg.StockLossMultiplier
	}
	suspicionDelta := out.SuspicionImpact
	if suspicionDelta > 0 {
		suspicionDelta *= s.cfg.SuspicionMultiplier
	}

	s.applyStockDelta(stockDelta, d.ID)
	s.stockHistory = append(s.stockHistory, StockPoint{Label: d.Title, Price: s.stockPrice})
	s.applySuspicionDelta(suspicionDelta, d.ID)
	d.Resolved = true
	s.log.Add(s.tick, d.ID, "decision", "resolved", choice.String(), 0)

	s.checkGameOver()
	if s.scene != SceneGameplay {
		return
	}
	s.checkLevelCompletion()
}

// FlagDocument resolves a document-type point via the flag-as-suspicious
// action. The fixed suspicion increment is not difficulty-scaled.
func (s *Session) FlagDocument(id string) {
	if s.scene != SceneGameplay {
		return
	}
	d := s.DecisionByID(id)
	if d == nil || d.Resolved || !d.IsDocument() || d.Level > s.currentLevelID {
		return
	}

	s.applySuspicionDelta(flagSuspicionDelta, d.ID)
	d.Resolved = true
	s.log.Add(s.tick, d.ID, "decision", "flagged", d.Title, flagSuspicionDelta)

	s.checkGameOver()
	if s.scene != SceneGameplay {
		return
	}
	s.checkLevelCompletion()
}

// OpenModal marks a blocking modal open (decision dialog, document viewer,
// overlay pages). Suspends passive decay while any modal is open.
func (s *Session) OpenModal() {
	s.modalDepth++
}

// CloseModal closes one blocking modal. Unbalanced closes are absorbed.
func (s *Session) CloseModal() {
	if s.modalDepth > 0 {
		s.modalDepth--
	}
}

// AdvanceLevel moves to the next level from the transition prompt. Newly
// unlocked points become interactable; resolved points stay resolved.
// Advancing past the final level is guarded elsewhere (the quiz gate goes to
// VICTORY instead of opening the prompt).
func (s *Session) AdvanceLevel() {
	if s.scene != SceneGameplay || !s.levelPrompt {
		return
	}
	s.levelPrompt = false
	if s.currentLevelID < MaxLevel() {
		s.currentLevelID++
		s.log.Add(s.tick, "session", "level", "advance", LevelByID(s.currentLevelID).Title, float64(s.currentLevelID))
	}
	// A level range with nothing left to do gates straight to the next quiz.
	s.checkLevelCompletion()
}

// ToggleWeather cycles clear → cloudy → rainy. Visual only, never scored.
func (s *Session) ToggleWeather() {
	s.weather = (s.weather + 1) % weatherCount
	s.log.Add(s.tick, "session", "env", "weather", s.weather.String(), float64(s.weather))
}

// AdvanceHour advances the clock by one hour, wrapping at 24.
func (s *Session) AdvanceHour() {
	s.timeOfDay = (s.timeOfDay + 1) % 24
	s.log.Add(s.tick, "session", "env", "hour", fmt.Sprintf("%02d:00", s.timeOfDay), float64(s.timeOfDay))
}

// Restart resets the whole session to initial values. The only exit from a
// terminal scene.
func (s *Session) Restart() {
	s.log.Add(s.tick, "session", "scene", "restart", s.scene.String(), 0)
	tick := s.tick // the sim clock itself keeps running
	s.reset()
	s.tick = tick
}

// --- Internal mechanics ---

// applyStockDelta mutates the stock price, clamped at the 0 floor.
func (s *Session) applyStockDelta(delta float64, source string) {
	if delta == 0 {
		return
	}
	s.stockPrice += delta
	if s.stockPrice < 0 {
		s.stockPrice = 0
	}
	s.log.AddVerbose(s.tick, source, "stock", "delta", fmt.Sprintf("%+.2f → %.2f", delta, s.stockPrice), s.stockPrice)
}

// applySuspicionDelta mutates suspicion, clamped to [0,100].
func (s *Session) applySuspicionDelta(delta float64, source string) {
	if delta == 0 {
		return
	}
	s.suspicion += delta
	if s.suspicion < 0 {
		s.suspicion = 0
	}
	if s.suspicion > suspicionMax {
		s.suspicion = suspicionMax
	}
	s.log.AddVerbose(s.tick, source, "suspicion", "delta", fmt.Sprintf("%+.1f → %.1f", delta, s.suspicion), s.suspicion)
}

// checkGameOver runs the terminal-scene checks. Arrest is checked before
// fired: a resolution that trips both thresholds always ends in arrest.
func (s *Session) checkGameOver() {
	if s.scene != SceneGameplay {
		return
	}
	if s.suspicion >= suspicionMax {
		s.transition(SceneGameOverArrested)
		return
	}
	if s.stockPrice < firedFloor {
		s.transition(SceneGameOverFired)
	}
}

// checkLevelCompletion schedules the quiz gate once every in-play decision of
// the current level range is resolved. The delay lets the resolution UI settle;
// the task is owned by GAMEPLAY, so leaving the scene cancels it.
func (s *Session) checkLevelCompletion() {
	for _, d := range s.decisions {
		if d.Level <= s.currentLevelID && !d.Resolved {
			return
		}
	}
	if s.quiz != nil || s.levelPrompt {
		return
	}
	s.log.Add(s.tick, "session", "schedule", "quiz_gate", fmt.Sprintf("level %d in %d ticks", s.currentLevelID, quizOpenDelayTicks), 0)
	s.sched.After(s.tick, quizOpenDelayTicks, SceneGameplay, s.openQuiz)
}

// transition switches scene, cancelling every task owned by the departed one.
func (s *Session) transition(next Scene) {
	if s.scene == next {
		return
	}
	prev := s.scene
	s.sched.CancelOwned(prev)
	s.scene = next
	s.log.Add(s.tick, "session", "scene", "change", fmt.Sprintf("%s → %s", prev, next), 0)
}
