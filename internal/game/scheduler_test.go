package game

import "testing"

func TestSchedulerFiresAtDueTick(t *testing.T) {
	sc := NewScheduler()
	fired := 0
	sc.After(10, 5, SceneGameplay, func() { fired++ })

	sc.Advance(14, SceneGameplay)
	if fired != 0 {
		t.Fatal("task fired before its due tick")
	}
	sc.Advance(15, SceneGameplay)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	// One-shot: a later advance does not refire.
	sc.Advance(100, SceneGameplay)
	if fired != 1 {
		t.Fatalf("task refired: %d", fired)
	}
}

func TestSchedulerDropsTaskFromDepartedScene(t *testing.T) {
	sc := NewScheduler()
	fired := false
	sc.After(0, 5, SceneGameplay, func() { fired = true })

	// Due while the session is in another scene: dropped, not deferred.
	sc.Advance(5, SceneMenu)
	if fired {
		t.Fatal("task fired in a foreign scene")
	}
	if sc.Pending() != 0 {
		t.Fatal("dropped task still pending")
	}
	sc.Advance(10, SceneGameplay)
	if fired {
		t.Fatal("dropped task fired after returning to its scene")
	}
}

func TestSchedulerCancelByID(t *testing.T) {
	sc := NewScheduler()
	fired := false
	id := sc.After(0, 5, SceneGameplay, func() { fired = true })
	keep := false
	sc.After(0, 5, SceneGameplay, func() { keep = true })

	sc.Cancel(id)
	sc.Cancel(9999) // unknown id, no-op
	sc.Advance(5, SceneGameplay)
	if fired {
		t.Error("cancelled task fired")
	}
	if !keep {
		t.Error("unrelated task lost to a cancel")
	}
}

func TestSchedulerCancelOwned(t *testing.T) {
	sc := NewScheduler()
	var gameplay, loading int
	sc.After(0, 5, SceneGameplay, func() { gameplay++ })
	sc.After(0, 6, SceneGameplay, func() { gameplay++ })
	sc.After(0, 5, SceneLoading, func() { loading++ })

	sc.CancelOwned(SceneGameplay)
	if sc.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", sc.Pending())
	}
	sc.Advance(10, SceneLoading)
	if gameplay != 0 || loading != 1 {
		t.Errorf("gameplay=%d loading=%d after CancelOwned", gameplay, loading)
	}
}

func TestSchedulerCallbackMaySchedule(t *testing.T) {
	sc := NewScheduler()
	var order []string
	sc.After(0, 1, SceneGameplay, func() {
		order = append(order, "first")
		sc.After(1, 1, SceneGameplay, func() {
			order = append(order, "second")
		})
	})

	sc.Advance(1, SceneGameplay)
	if len(order) != 1 {
		t.Fatalf("chained task ran on the same advance: %v", order)
	}
	sc.Advance(2, SceneGameplay)
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("order = %v", order)
	}
}

// A callback that leaves its scene cancels the scene's other pending tasks
// before they run, even when both came due on the same tick.
func TestSchedulerCallbackCancelStopsSiblings(t *testing.T) {
	sc := NewScheduler()
	var order []string
	sc.After(0, 5, SceneGameplay, func() {
		order = append(order, "first")
		sc.CancelOwned(SceneGameplay)
	})
	sc.After(0, 5, SceneGameplay, func() {
		order = append(order, "second")
	})

	sc.Advance(5, SceneGameplay)
	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("order = %v, want only the first task", order)
	}
	if sc.Pending() != 0 {
		t.Fatalf("pending = %d after cancel", sc.Pending())
	}
}
