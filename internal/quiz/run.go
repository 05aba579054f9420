// Package quiz runs a single self-test over a shuffled set of questions.
//
// A Run moves NotStarted -> InProgress -> Completed. While in progress each
// question passes through Displayed -> Answered -> Scored before the run
// advances; there is no way back to an earlier question.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/conorfennell/examprep/internal/domain"
)

// State is the lifecycle of a whole run.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Phase is the lifecycle of the current question.
type Phase int

const (
	Displayed Phase = iota
	Answered
	Scored
)

func (p Phase) String() string {
	switch p {
	case Displayed:
		return "displayed"
	case Answered:
		return "answered"
	case Scored:
		return "scored"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

var (
	ErrNotStarted     = errors.New("quiz has not started")
	ErrAlreadyStarted = errors.New("quiz already started")
	ErrCompleted      = errors.New("quiz is completed")
	ErrWrongPhase     = errors.New("question is not in the required phase")
)

// Prompt is the question currently shown to the user.
type Prompt struct {
	Number   int // 1-based position in the run
	Total    int
	Question string
}

// Feedback is the outcome of one submitted answer.
type Feedback struct {
	Number   int
	Question string
	Given    string
	Expected string
	Correct  bool
}

// Score is the number of correct answers out of the questions in the run.
type Score struct {
	Correct int
	Total   int
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Total)
}

// Run holds the state of one pass through a question set.
type Run struct {
	questions []domain.Pair
	state     State
	phase     Phase
	current   int
	correct   int
	given     string
	answers   []Feedback
}

// NewRun copies pairs and shuffles the copy into a uniformly random order.
// A nil rng uses the automatically seeded global source.
func NewRun(pairs []domain.Pair, rng *rand.Rand) *Run {
	questions := make([]domain.Pair, len(pairs))
	copy(questions, pairs)

	swap := func(i, j int) { questions[i], questions[j] = questions[j], questions[i] }
	if rng != nil {
		rng.Shuffle(len(questions), swap)
	} else {
		rand.Shuffle(len(questions), swap)
	}

	return &Run{questions: questions, state: NotStarted}
}

// Start displays the first question. A run without questions completes
// immediately with a score of 0/0.
func (r *Run) Start() error {
	if r.state != NotStarted {
		return ErrAlreadyStarted
	}
	if len(r.questions) == 0 {
		r.state = Completed
		return nil
	}
	r.state = InProgress
	r.phase = Displayed
	return nil
}

// Current returns the displayed question, or false when none is displayed.
func (r *Run) Current() (Prompt, bool) {
	if r.state != InProgress {
		return Prompt{}, false
	}
	return Prompt{
		Number:   r.current + 1,
		Total:    len(r.questions),
		Question: r.questions[r.current].Question,
	}, true
}

// Submit answers, grades and advances past the displayed question in one
// step.
func (r *Run) Submit(answer string) (Feedback, error) {
	if err := r.Answer(answer); err != nil {
		return Feedback{}, err
	}
	fb, err := r.Grade()
	if err != nil {
		return Feedback{}, err
	}
	return fb, r.Next()
}

// Answer records the answer to the displayed question: Displayed -> Answered.
func (r *Run) Answer(answer string) error {
	if err := r.inPhase(Displayed); err != nil {
		return err
	}
	r.given = answer
	r.phase = Answered
	return nil
}

// Grade compares the recorded answer with the key: Answered -> Scored.
func (r *Run) Grade() (Feedback, error) {
	if err := r.inPhase(Answered); err != nil {
		return Feedback{}, err
	}
	q := r.questions[r.current]
	fb := Feedback{
		Number:   r.current + 1,
		Question: q.Question,
		Given:    r.given,
		Expected: q.Answer,
		Correct:  Check(q.Answer, r.given),
	}
	if fb.Correct {
		r.correct++
	}
	r.answers = append(r.answers, fb)
	r.phase = Scored
	return fb, nil
}

// Next displays the following question, or completes the run after the
// last one.
func (r *Run) Next() error {
	if err := r.inPhase(Scored); err != nil {
		return err
	}
	r.given = ""
	r.current++
	if r.current == len(r.questions) {
		r.state = Completed
		return nil
	}
	r.phase = Displayed
	return nil
}

func (r *Run) inPhase(want Phase) error {
	switch r.state {
	case NotStarted:
		return ErrNotStarted
	case Completed:
		return ErrCompleted
	}
	if r.phase != want {
		return fmt.Errorf("%w: %s, want %s", ErrWrongPhase, r.phase, want)
	}
	return nil
}

// Check reports whether given matches expected ignoring case. Whitespace and
// punctuation are compared as-is.
func Check(expected, given string) bool {
	return strings.ToLower(expected) == strings.ToLower(given)
}

// Score returns the running score. Total is the size of the whole run.
func (r *Run) Score() Score {
	return Score{Correct: r.correct, Total: len(r.questions)}
}

func (r *Run) State() State { return r.state }

// Phase is only meaningful while the run is in progress; a completed run
// reports the phase of its last question.
func (r *Run) Phase() Phase { return r.phase }

// Answers returns the feedback for every question answered so far.
func (r *Run) Answers() []Feedback {
	out := make([]Feedback, len(r.answers))
	copy(out, r.answers)
	return out
}

// Len is the number of questions in the run.
func (r *Run) Len() int { return len(r.questions) }
