package game

import "testing"

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim, rep *SimReporter) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.CurrentTick(), ts.Session))
	if rep != nil {
		t.Log(rep.FormatLatest())
		if wr := rep.WindowSummary(); wr != nil {
			t.Log(wr.Format())
		}
	}
}

// --- Scenario: The Aggressive CFO ---
//
// Every decision goes the fraud way on medium difficulty. Suspicion compounds
// at x1.5 and the session must end in arrest with the stock still afloat.
func TestScenario_AllFraudMedium(t *testing.T) {
	t.Log("=== TestScenario_AllFraudMedium ===")
	t.Log("--- Setup: medium difficulty, fraud branch everywhere ---")

	ts := NewTestSim(WithSeed(42), WithGameplay(DifficultyMedium))
	rep := NewSimReporter(reportWindowTicks)

	for !ts.Session.Scene().Terminal() {
		progressed := false
		for _, d := range ts.Session.DecisionPoints() {
			if !ts.Session.InPlay(d) {
				continue
			}
			if d.IsDocument() {
				ts.Session.FlagDocument(d.ID)
			} else {
				ts.Session.ResolveDecision(d.ID, ChoiceFraud)
			}
			progressed = true
			if ts.Session.Scene().Terminal() {
				break
			}
		}
		if ts.Session.Scene().Terminal() {
			break
		}
		if tick := ts.RunUntil(func(ts *TestSim) bool {
			return ts.Session.Quiz() != nil
		}, quizOpenDelayTicks*3); tick < 0 {
			t.Fatalf("quiz gate never opened at level %d", ts.Session.CurrentLevelID())
		}
		for ts.Session.Quiz() != nil {
			ts.Session.AnswerQuiz(ts.Session.Quiz().Question().Correct)
			ts.Session.ContinueQuiz()
		}
		if ts.Session.LevelPromptOpen() {
			ts.Session.AdvanceLevel()
		}
		rep.Collect(ts.Session, ts.SimLog)
		if !progressed {
			t.Fatal("no decision available and no terminal scene")
		}
	}

	rep.Collect(ts.Session, ts.SimLog)
	dumpLog(t, ts)
	dumpSummary(t, ts, rep)

	if got := ts.Session.Scene(); got != SceneGameOverArrested {
		t.Errorf("scene = %s, want GAME_OVER_ARRESTED", got)
	}
	if stock := ts.Session.StockPrice(); stock < firedFloor {
		t.Errorf("fraud run should keep the stock afloat, got %.2f", stock)
	}

	// Invariant: no honest choices appear in the log.
	for _, e := range ts.SimLog.Filter("decision", "resolved") {
		if e.Value != "fraud" {
			t.Errorf("unexpected honest resolution: %s", e.String())
		}
	}
}

// --- Scenario: The Honest CFO ---
//
// Every decision goes the honest way on easy difficulty. The stock takes the
// full write-offs, hits the floor during level 2 and the player is fired with
// suspicion still low.
func TestScenario_AllHonestEasy(t *testing.T) {
	t.Log("=== TestScenario_AllHonestEasy ===")
	t.Log("--- Setup: easy difficulty, honest branch everywhere ---")

	ts := NewTestSim(WithSeed(42), WithGameplay(DifficultyEasy))
	rep := NewSimReporter(reportWindowTicks)

	for !ts.Session.Scene().Terminal() {
		acted := false
		for _, d := range ts.Session.DecisionPoints() {
			if !ts.Session.InPlay(d) {
				continue
			}
			if d.IsDocument() {
				ts.Session.FlagDocument(d.ID)
			} else {
				ts.Session.ResolveDecision(d.ID, ChoiceHonest)
			}
			acted = true
			if ts.Session.Scene().Terminal() {
				break
			}
		}
		if ts.Session.Scene().Terminal() || !acted {
			break
		}
		ts.RunUntil(func(ts *TestSim) bool {
			return ts.Session.Quiz() != nil
		}, quizOpenDelayTicks*3)
		for ts.Session.Quiz() != nil {
			ts.Session.AnswerQuiz(ts.Session.Quiz().Question().Correct)
			ts.Session.ContinueQuiz()
		}
		if ts.Session.LevelPromptOpen() {
			ts.Session.AdvanceLevel()
		}
		rep.Collect(ts.Session, ts.SimLog)
	}

	rep.Collect(ts.Session, ts.SimLog)
	dumpLog(t, ts)
	dumpSummary(t, ts, rep)

	if got := ts.Session.Scene(); got != SceneGameOverFired {
		t.Errorf("scene = %s, want GAME_OVER_FIRED", got)
	}
	if susp := ts.Session.Suspicion(); susp >= suspicionMax {
		t.Errorf("honest run arrested: suspicion %.1f", susp)
	}
	if lvl := ts.Session.CurrentLevelID(); lvl != 2 {
		t.Errorf("honest run ended at level %d, want the level 2 write-offs", lvl)
	}
}

// --- Scenario: Wander The City ---
//
// The player walks the downtown grid for a minute of sim time with no
// decision input. The session idles in gameplay, decay ticks accumulate and
// the player never escapes the world bounds.
func TestScenario_WanderTheCity(t *testing.T) {
	t.Log("=== TestScenario_WanderTheCity ===")
	t.Log("--- Setup: medium difficulty, forward+turn held for 3600 ticks ---")

	ts := NewTestSim(WithSeed(7), WithGameplay(DifficultyMedium), WithPlayerAt(0, 60))
	ts.Intent = MoveIntent{Forward: true, TurnL: true}
	ts.RunTicks(3600)

	dumpSummary(t, ts, nil)

	if ts.Session.Scene() != SceneGameplay {
		t.Errorf("scene = %s after idle wander", ts.Session.Scene())
	}
	p := ts.Player.Pos
	if p.X < -worldBound || p.X > worldBound || p.Z < -worldBound || p.Z > worldBound {
		t.Errorf("player escaped the world: %+v", p)
	}

	// One decay per second of uninterrupted gameplay.
	decays := ts.SimLog.CountCategory("stock", "passive")
	if decays != 60 {
		t.Errorf("decay events = %d, want 60", decays)
	}
	wantStock := initialStockPrice - float64(decays)*ts.Session.Config().PassiveDecayRate
	if got := ts.Session.StockPrice(); !almostEqual(got, wantStock) {
		t.Errorf("stock = %.4f, want %.4f", got, wantStock)
	}
}
