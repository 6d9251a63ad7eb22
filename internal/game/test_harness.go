package game

// TestSim is a headless simulation harness used exclusively by tests and the
// headless reporter. It mirrors the Game tick loop but has no Ebiten
// dependency and supports deterministic seeding and structured logging.
type TestSim struct {
	Session *Session
	Player  *PlayerController
	World   *World
	SimLog  *SimLog

	// Intent is applied to the player on every gameplay tick.
	Intent MoveIntent

	seed int64
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // seed, verbose; applied first
	simOptSession                      // scene fast-forward, difficulty
	simOptPlayer                       // player placement; applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the world-generation seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithGameplay fast-forwards through loading and the menu into gameplay at
// the given difficulty.
func WithGameplay(d Difficulty) SimOption {
	return SimOption{simOptSession, func(ts *TestSim) {
		ts.SkipToGameplay(d)
	}}
}

// WithPlayerAt warps the player to a world position.
func WithPlayerAt(x, z float64) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		ts.Player.Warp(Vec3{X: x, Z: z})
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, verbose)
//  2. Session and world construction
//  3. Session fast-forward options
//  4. Player placement
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{seed: 1}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.SimLog == nil {
		ts.SimLog = NewSimLog(false)
	}
	ts.Session = NewSession(ts.SimLog)
	ts.World = GenerateWorld(ts.seed)
	ts.Player = NewPlayerController()
	for _, o := range opts {
		if o.kind == simOptSession {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptPlayer {
			o.fn(ts)
		}
	}
	return ts
}

// SkipToGameplay runs the loader to completion, then starts the
// investigation. No-op if the session already left the loading scene.
func (ts *TestSim) SkipToGameplay(d Difficulty) {
	ts.RunUntil(func(ts *TestSim) bool {
		return ts.Session.Scene() == SceneMenu
	}, 600)
	ts.Session.StartInvestigation(d)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Session.CurrentTick()
		}
	}
	return -1
}

// runOneTick mirrors Game.simTick for the headless harness.
func (ts *TestSim) runOneTick() {
	ts.Session.Tick()
	if ts.Session.Scene() == SceneGameplay && !ts.Session.ModalOpen() {
		ts.Player.Update(ts.Intent, simDT)
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Session.CurrentTick()
}

// Nearest returns the interactable decision point in reach, or nil.
func (ts *TestSim) Nearest() *DecisionPoint {
	return NearestInteractable(ts.Player, ts.Session)
}

// SimSnapshot is a lightweight state summary for assertions and reports.
type SimSnapshot struct {
	Tick       int
	Scene      Scene
	Stock      float64
	Suspicion  float64
	Level      int
	Progress   float64
	Resolved   int
	Total      int
	PlayerPos  Vec3
	ModalOpen  bool
	Difficulty Difficulty
}

// Snapshot captures the current session and player state.
func (ts *TestSim) Snapshot() SimSnapshot {
	s := ts.Session
	snap := SimSnapshot{
		Tick:       s.CurrentTick(),
		Scene:      s.Scene(),
		Stock:      s.StockPrice(),
		Suspicion:  s.Suspicion(),
		Level:      s.CurrentLevelID(),
		Progress:   s.LevelProgress(),
		PlayerPos:  ts.Player.Pos,
		ModalOpen:  s.ModalOpen(),
		Difficulty: s.Difficulty(),
	}
	for _, d := range s.DecisionPoints() {
		snap.Total++
		if d.Resolved {
			snap.Resolved++
		}
	}
	return snap
}
