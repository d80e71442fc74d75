package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/futig/puppy-picker/internal/entity"
)

const (
	// AdvanceDelay keeps a fresh selection visible before the next question is shown
	AdvanceDelay = 300 * time.Millisecond

	// FallbackResult is shown in place of a recommendation when submission fails
	FallbackResult = "Sorry, we encountered an error while analysing your preferences. Please try again."
)

// Recommender turns a complete answer set into a recommendation
type Recommender interface {
	Recommend(ctx context.Context, answers entity.AnswerSet) (string, error)
}

// View is an immutable snapshot of an engine
type View struct {
	Step          int
	TotalSteps    int
	Progress      int
	Question      entity.Question
	Answers       entity.AnswerSet
	Mode          entity.Mode
	Loading       bool
	ReadyToSubmit bool
	Result        string
	Error         string
}

// Selected returns the answer recorded for the current question
func (v View) Selected() (string, bool) {
	value, ok := v.Answers[v.Question.ID]
	return value, ok
}

type Option func(*Engine)

// WithScheduler replaces the timer used for auto-advance
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithAdvanceDelay overrides AdvanceDelay
func WithAdvanceDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.delay = d
	}
}

// WithAdvanceHook registers fn to be called with the new view after every auto-advance.
// fn runs on the scheduler goroutine without the engine lock held.
func WithAdvanceHook(fn func(View)) Option {
	return func(e *Engine) {
		e.onAdvance = fn
	}
}

// Engine walks one user through the questionnaire.
// It is safe for concurrent use; the auto-advance fires on its own goroutine.
type Engine struct {
	mu sync.Mutex

	questions   []entity.Question
	recommender Recommender
	scheduler   Scheduler
	delay       time.Duration
	onAdvance   func(View)

	step    int
	answers entity.AnswerSet
	mode    entity.Mode
	loading bool
	result  string
	errMsg  string

	pending    Task
	generation uint64
	closed     bool
}

// NewEngine creates an engine at step 0 with an empty answer set
func NewEngine(recommender Recommender, opts ...Option) *Engine {
	e := &Engine{
		questions:   entity.Questions(),
		recommender: recommender,
		scheduler:   TimerScheduler(),
		delay:       AdvanceDelay,
		answers:     entity.AnswerSet{},
		mode:        entity.ModeInProgress,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SelectOption records value for questionID and schedules the advance to the next question
func (e *Engine) SelectOption(questionID, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return entity.ErrClosed
	}
	if e.mode != entity.ModeInProgress || e.loading {
		return entity.ErrNotInProgress
	}

	current := e.questions[e.step]
	if questionID != current.ID {
		return fmt.Errorf("%w: got %q, current is %q", entity.ErrQuestionMismatch, questionID, current.ID)
	}
	if !current.HasOption(value) {
		return fmt.Errorf("%w: %q for %q", entity.ErrInvalidOption, value, questionID)
	}

	e.answers[questionID] = value

	if e.step < len(e.questions)-1 {
		e.scheduleAdvanceLocked(e.step + 1)
	}
	return nil
}

// GoBack moves to the previous question and reports whether the step changed.
// Answers are kept.
func (e *Engine) GoBack() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.mode != entity.ModeInProgress || e.loading || e.step == 0 {
		return false
	}

	e.cancelPendingLocked()
	e.step--
	return true
}

// IsReadyToSubmit reports whether the last question is showing and answered
func (e *Engine) IsReadyToSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readyLocked()
}

// Submit sends the answers to the recommender and moves to the result screen.
// A recommender failure still reaches the result screen with FallbackResult;
// the returned error only reports why Submit could not start.
func (e *Engine) Submit(ctx context.Context) (View, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return View{}, entity.ErrClosed
	}
	if e.loading {
		e.mu.Unlock()
		return View{}, entity.ErrSubmissionInFlight
	}
	if !e.readyLocked() {
		e.mu.Unlock()
		return View{}, entity.ErrNotReady
	}

	e.loading = true
	e.errMsg = ""
	snapshot := e.answers.Clone()
	e.mu.Unlock()

	recommendation, err := e.recommender.Recommend(ctx, snapshot)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.loading = false
	if e.closed {
		return View{}, entity.ErrClosed
	}
	if err != nil {
		e.result = FallbackResult
		e.errMsg = errorMessage(err)
	} else {
		e.result = recommendation
	}
	e.mode = entity.ModeShowingResult

	return e.viewLocked(), nil
}

// Reset returns the engine to its initial state
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return entity.ErrClosed
	}
	if e.loading {
		return entity.ErrSubmissionInFlight
	}

	e.cancelPendingLocked()
	e.step = 0
	e.answers = entity.AnswerSet{}
	e.mode = entity.ModeInProgress
	e.result = ""
	e.errMsg = ""
	return nil
}

// Close tears the session down. A pending auto-advance never fires after Close.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.closed = true
}

// View returns a snapshot of the current state
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Questions returns the questionnaire the engine walks through
func (e *Engine) Questions() []entity.Question {
	return e.questions
}

func (e *Engine) readyLocked() bool {
	if e.mode != entity.ModeInProgress || e.step != len(e.questions)-1 {
		return false
	}
	_, ok := e.answers[e.questions[e.step].ID]
	return ok
}

func (e *Engine) viewLocked() View {
	return View{
		Step:          e.step,
		TotalSteps:    len(e.questions),
		Progress:      int(math.Round(float64(e.step+1) / float64(len(e.questions)) * 100)),
		Question:      e.questions[e.step],
		Answers:       e.answers.Clone(),
		Mode:          e.mode,
		Loading:       e.loading,
		ReadyToSubmit: e.readyLocked(),
		Result:        e.result,
		Error:         e.errMsg,
	}
}

func (e *Engine) scheduleAdvanceLocked(target int) {
	e.cancelPendingLocked()

	gen := e.generation
	e.pending = e.scheduler.AfterFunc(e.delay, func() {
		e.advance(gen, target)
	})
}

func (e *Engine) advance(gen uint64, target int) {
	e.mu.Lock()
	// A newer select, a back, a reset or Close bumps the generation.
	if e.closed || gen != e.generation || e.mode != entity.ModeInProgress {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	if target > len(e.questions)-1 {
		target = len(e.questions) - 1
	}
	e.step = target
	view := e.viewLocked()
	hook := e.onAdvance
	e.mu.Unlock()

	if hook != nil {
		hook(view)
	}
}

func (e *Engine) cancelPendingLocked() {
	e.generation++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func errorMessage(err error) string {
	var msgErr interface{ UserMessage() string }
	if errors.As(err, &msgErr) {
		if msg := msgErr.UserMessage(); msg != "" {
			return msg
		}
	}
	return entity.UserMessage(err)
}
