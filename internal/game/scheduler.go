package game

// scheduledTask is a one-shot callback due at a future tick. Tasks are owned
// by the scene that scheduled them: if the session leaves that scene before
// the task fires, the task is dropped, never executed late into a new scene.
type scheduledTask struct {
	id      int
	dueTick int
	owner   Scene
	fn      func()
}

// Scheduler runs cancellable deferred actions on the cooperative tick loop.
// All scheduling and execution happen on the single sim thread.
type Scheduler struct {
	tasks  []scheduledTask
	nextID int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// After registers fn to run delayTicks from now, owned by the given scene.
// Returns a task id usable with Cancel.
func (sc *Scheduler) After(currentTick, delayTicks int, owner Scene, fn func()) int {
	id := sc.nextID
	sc.nextID++
	sc.tasks = append(sc.tasks, scheduledTask{
		id:      id,
		dueTick: currentTick + delayTicks,
		owner:   owner,
		fn:      fn,
	})
	return id
}

// Cancel removes a pending task by id. Cancelling an already-fired or unknown
// id is a no-op.
func (sc *Scheduler) Cancel(id int) {
	for i := range sc.tasks {
		if sc.tasks[i].id == id {
			sc.tasks = append(sc.tasks[:i], sc.tasks[i+1:]...)
			return
		}
	}
}

// CancelOwned drops every pending task owned by the given scene. Called on
// scene exit so stale callbacks never fire into a new scene's state.
func (sc *Scheduler) CancelOwned(owner Scene) {
	kept := sc.tasks[:0]
	for _, t := range sc.tasks {
		if t.owner != owner {
			kept = append(kept, t)
		}
	}
	sc.tasks = kept
}

// Pending returns the number of tasks waiting to fire.
func (sc *Scheduler) Pending() int {
	return len(sc.tasks)
}

// Advance fires every task due at or before tick whose owner matches the
// current scene. Tasks owned by other scenes are dropped silently. Tasks run
// one at a time straight out of the queue, so a callback that cancels its
// pending siblings (every scene transition does) stops them before they
// fire. Tasks a callback schedules run on a later Advance, not this one.
func (sc *Scheduler) Advance(tick int, current Scene) {
	preexisting := sc.nextID
	for {
		i := -1
		for j := range sc.tasks {
			if sc.tasks[j].id < preexisting && sc.tasks[j].dueTick <= tick {
				i = j
				break
			}
		}
		if i < 0 {
			return
		}
		t := sc.tasks[i]
		sc.tasks = append(sc.tasks[:i], sc.tasks[i+1:]...)
		if t.owner != current {
			continue
		}
		t.fn()
	}
}
