package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/genericusername1080/worldcom-sim/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	policy   string
	runID    string

	outcome        game.Scene
	endTick        int
	finalStock     float64
	finalSuspicion float64
	levelReached   int

	honestChoices int
	fraudChoices  int
	flaggedDocs   int
	quizAnswers   int
	decayEvents   int
	sceneChanges  int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var policy string
	var difficulty int

	flag.IntVar(&runs, "runs", 5, "number of headless playthroughs")
	flag.IntVar(&ticks, "ticks", 36000, "tick cap per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "world seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&policy, "policy", "mixed", "decision policy: honest, fraud, mixed")
	flag.IntVar(&difficulty, "difficulty", 1, "0=easy 1=medium 2=hard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	switch policy {
	case "honest", "fraud", "mixed":
	default:
		fmt.Printf("error: unsupported policy %q (supported: honest, fraud, mixed)\n", policy)
		return
	}

	d := game.Difficulty(difficulty)
	fmt.Printf("=== Headless Playthrough Report ===\n")
	fmt.Printf("policy=%s difficulty=%s runs=%d tick_cap=%d seed_base=%d seed_step=%d\n\n",
		policy, game.ConfigFor(d).Label, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runPlaythrough(i+1, seed, d, policy, ticks)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

// choiceForPolicy picks the branch for the n-th choice-type resolution.
func choiceForPolicy(policy string, n int) game.ChoiceKind {
	switch policy {
	case "honest":
		return game.ChoiceHonest
	case "fraud":
		return game.ChoiceFraud
	default:
		if n%2 == 0 {
			return game.ChoiceHonest
		}
		return game.ChoiceFraud
	}
}

// runPlaythrough scripts one full session: resolve every open decision per
// the policy, clear each quiz gate with correct answers, advance levels, and
// stop at a terminal scene or the tick cap.
func runPlaythrough(runIndex int, seed int64, d game.Difficulty, policy string, maxTicks int) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithGameplay(d),
	)
	reporter := game.NewSimReporter(0)

	choices := 0
	for ts.CurrentTick() < maxTicks && !ts.Session.Scene().Terminal() {
		ts.RunTicks(1)
		if ts.CurrentTick()%60 == 0 {
			reporter.Collect(ts.Session, ts.SimLog)
		}

		s := ts.Session
		if q := s.Quiz(); q != nil {
			if !q.Answered {
				s.AnswerQuiz(q.Question().Correct)
			}
			s.ContinueQuiz()
			continue
		}
		if s.LevelPromptOpen() {
			s.AdvanceLevel()
			continue
		}
		if next := firstOpenDecision(s); next != nil {
			if next.IsDocument() {
				s.FlagDocument(next.ID)
			} else {
				s.ResolveDecision(next.ID, choiceForPolicy(policy, choices))
				choices++
			}
		}
	}
	reporter.Collect(ts.Session, ts.SimLog)

	entries := ts.SimLog.Entries()
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		policy:         policy,
		runID:          ts.Session.RunID(),
		outcome:        ts.Session.Scene(),
		endTick:        ts.CurrentTick(),
		finalStock:     ts.Session.StockPrice(),
		finalSuspicion: ts.Session.Suspicion(),
		levelReached:   ts.Session.CurrentLevelID(),
		honestChoices:  countValue(entries, "decision", "resolved", "honest"),
		fraudChoices:   countValue(entries, "decision", "resolved", "fraud"),
		flaggedDocs:    ts.SimLog.CountCategory("decision", "flagged"),
		quizAnswers:    ts.SimLog.CountCategory("quiz", "answer"),
		decayEvents:    ts.SimLog.CountCategory("stock", "passive"),
		sceneChanges:   ts.SimLog.CountCategory("scene", "change"),
		windowSummary:  reporter.WindowSummary(),
	}
}

func firstOpenDecision(s *game.Session) *game.DecisionPoint {
	for _, d := range s.DecisionPoints() {
		if s.InPlay(d) {
			return d
		}
	}
	return nil
}

func countValue(entries []game.SimLogEntry, category, key, value string) int {
	n := 0
	for _, e := range entries {
		if e.Category == category && e.Key == key && e.Value == value {
			n++
		}
	}
	return n
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d run=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	fmt.Printf("outcome=%s end_tick=%d level=%d stock=%.2f suspicion=%.1f\n",
		rs.outcome, rs.endTick, rs.levelReached, rs.finalStock, rs.finalSuspicion)
	fmt.Printf("choices: honest=%d fraud=%d flagged=%d quiz_answers=%d\n",
		rs.honestChoices, rs.fraudChoices, rs.flaggedDocs, rs.quizAnswers)
	fmt.Printf("events: decay=%d scene_changes=%d\n", rs.decayEvents, rs.sceneChanges)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

// outcomeCounts tallies terminal scenes across runs.
func outcomeCounts(all []runStats) map[game.Scene]int {
	out := make(map[game.Scene]int)
	for _, rs := range all {
		out[rs.outcome]++
	}
	return out
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	var stockSum, suspSum float64
	var tickSum, honest, fraud, flagged int
	for _, rs := range all {
		stockSum += rs.finalStock
		suspSum += rs.finalSuspicion
		tickSum += rs.endTick
		honest += rs.honestChoices
		fraud += rs.fraudChoices
		flagged += rs.flaggedDocs
	}
	n := float64(len(all))

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d policy=%s\n", len(all), all[0].policy)

	counts := outcomeCounts(all)
	scenes := make([]game.Scene, 0, len(counts))
	for sc := range counts {
		scenes = append(scenes, sc)
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i] < scenes[j] })
	parts := make([]string, 0, len(scenes))
	for _, sc := range scenes {
		parts = append(parts, fmt.Sprintf("%s=%d", sc, counts[sc]))
	}
	fmt.Printf("outcomes: %s\n", strings.Join(parts, " "))
	fmt.Printf("avg: end_tick=%.0f stock=%.2f suspicion=%.1f\n", float64(tickSum)/n, stockSum/n, suspSum/n)
	fmt.Printf("totals: honest=%d fraud=%d flagged=%d\n", honest, fraud, flagged)
}
