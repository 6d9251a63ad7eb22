package game

// QuizState tracks the blocking quiz gate that opens once a level range is
// fully resolved. The gate owns scene progression: passing it either opens
// the level-transition prompt or, on the final level, ends in VICTORY.
type QuizState struct {
	LevelID   int
	Questions []QuizQuestion
	Index     int

	// Feedback state for the question at Index after an answer.
	Answered bool
	Selected int
	Correct  bool
}

// Question returns the question currently on screen.
func (q *QuizState) Question() QuizQuestion {
	return q.Questions[q.Index]
}

// Done reports whether every question has been answered correctly.
func (q *QuizState) Done() bool {
	return q.Index >= len(q.Questions)
}

// openQuiz fires as the scheduled quiz-gate task. A level with no quiz
// content gates through immediately.
func (s *Session) openQuiz() {
	qs := QuestionsForLevel(s.currentLevelID)
	if len(qs) == 0 {
		s.passQuiz()
		return
	}
	s.quiz = &QuizState{LevelID: s.currentLevelID, Questions: qs, Selected: -1}
	s.log.Add(s.tick, "session", "quiz", "open", LevelByID(s.currentLevelID).Title, float64(len(qs)))
}

// AnswerQuiz records the player's pick for the current question and reveals
// feedback. Answering while feedback is up, or with no quiz open, is a no-op.
func (s *Session) AnswerQuiz(option int) {
	q := s.quiz
	if q == nil || q.Answered || q.Done() {
		return
	}
	cur := q.Question()
	if option < 0 || option >= len(cur.Options) {
		return
	}
	q.Answered = true
	q.Selected = option
	q.Correct = option == cur.Correct
	s.log.Add(s.tick, "session", "quiz", "answer", cur.Options[option], boolNum(q.Correct))
}

// ContinueQuiz dismisses the feedback panel. A correct answer moves to the
// next question (or completes the quiz); a wrong one re-asks the same
// question.
func (s *Session) ContinueQuiz() {
	q := s.quiz
	if q == nil || !q.Answered {
		return
	}
	if q.Correct {
		q.Index++
	}
	q.Answered = false
	q.Selected = -1
	if q.Done() {
		s.quiz = nil
		s.passQuiz()
	}
}

// passQuiz resolves a cleared quiz gate: victory on the final level,
// otherwise the level-transition prompt.
func (s *Session) passQuiz() {
	s.log.Add(s.tick, "session", "quiz", "passed", LevelByID(s.currentLevelID).Title, float64(s.currentLevelID))
	if s.currentLevelID >= MaxLevel() {
		s.transition(SceneVictory)
		return
	}
	s.levelPrompt = true
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
