// Package cli runs the questionnaire in a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
)

// Input keys besides option numbers
const (
	keyBack   = "b"
	keySubmit = "s"
	keyReset  = "r"
	keyQuit   = "q"
)

// Session drives one questionnaire engine from line-based input
type Session struct {
	engine   *questionnaire.Engine
	advanced chan questionnaire.View
	in       *bufio.Scanner
	out      io.Writer
}

// NewSession creates a session whose answers are sent to recommender on submit
func NewSession(
	recommender questionnaire.Recommender,
	in io.Reader,
	out io.Writer,
	opts ...questionnaire.Option,
) *Session {
	s := &Session{
		advanced: make(chan questionnaire.View, 1),
		in:       bufio.NewScanner(in),
		out:      out,
	}

	opts = append(opts, questionnaire.WithAdvanceHook(func(view questionnaire.View) {
		select {
		case s.advanced <- view:
		default:
		}
	}))
	s.engine = questionnaire.NewEngine(recommender, opts...)

	return s
}

// Run reads commands until quit, end of input or ctx is done
func (s *Session) Run(ctx context.Context) error {
	defer s.engine.Close()

	done := make(chan struct{})
	defer close(done)
	lines := s.scanLines(done)

	s.printf("🐶 Puppy Picker\n")
	s.printView(s.engine.View())

	for {
		line, ok := s.readLine(ctx, lines)
		if !ok {
			return ctx.Err()
		}

		quit, err := s.handle(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			s.printf("Bye!\n")
			return nil
		}
	}
}

func (s *Session) handle(ctx context.Context, line string) (bool, error) {
	view := s.engine.View()

	switch strings.ToLower(line) {
	case "":
		return false, nil
	case keyQuit:
		return true, nil
	case keyReset:
		if err := s.engine.Reset(); err != nil {
			return false, err
		}
		s.printView(s.engine.View())
		return false, nil
	case keyBack:
		if !s.engine.GoBack() {
			s.printf("You are at the first question.\n")
		}
		s.printView(s.engine.View())
		return false, nil
	case keySubmit:
		return false, s.submit(ctx)
	}

	if view.Mode != entity.ModeInProgress {
		s.printf("Type %s to start over or %s to quit.\n", keyReset, keyQuit)
		return false, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(view.Question.Options) {
		s.printf("Please choose a number from 1 to %d.\n", len(view.Question.Options))
		return false, nil
	}

	if err := s.engine.SelectOption(view.Question.ID, view.Question.Options[n-1].Value); err != nil {
		return false, err
	}

	if view.Step == view.TotalSteps-1 {
		s.printView(s.engine.View())
		return false, nil
	}

	select {
	case next := <-s.advanced:
		s.printView(next)
	case <-ctx.Done():
		return false, ctx.Err()
	}
	return false, nil
}

func (s *Session) submit(ctx context.Context) error {
	s.printf("⏳ Analysing your preferences...\n")

	view, err := s.engine.Submit(ctx)
	switch {
	case errors.Is(err, entity.ErrNotReady):
		s.printf("Answer the last question before submitting.\n")
		return nil
	case err != nil:
		return err
	}

	s.printView(view)
	return nil
}

func (s *Session) printView(view questionnaire.View) {
	if view.Mode == entity.ModeShowingResult {
		s.printf("\n🐾 Your puppy match\n\n%s\n", view.Result)
		if view.Error != "" {
			s.printf("\n⚠️ %s\n", view.Error)
		}
		s.printf("\n[%s] start over  [%s] quit\n", keyReset, keyQuit)
		return
	}

	q := view.Question
	s.printf("\nQuestion %d of %d (%d%%)\n%s\n", view.Step+1, view.TotalSteps, view.Progress, q.Text)

	selected, _ := view.Selected()
	for i, opt := range q.Options {
		marker := " "
		if opt.Value == selected {
			marker = "*"
		}
		s.printf(" %s %d) %s - %s\n", marker, i+1, opt.Label, opt.Description)
	}

	controls := []string{}
	if view.Step > 0 {
		controls = append(controls, fmt.Sprintf("[%s] back", keyBack))
	}
	if view.ReadyToSubmit {
		controls = append(controls, fmt.Sprintf("[%s] submit", keySubmit))
	}
	controls = append(controls, fmt.Sprintf("[%s] start over", keyReset), fmt.Sprintf("[%s] quit", keyQuit))
	s.printf("%s\n> ", strings.Join(controls, "  "))
}

// scanLines reads input on its own goroutine so a blocked read never holds up cancellation.
// The goroutine stops at end of input or once done is closed.
func (s *Session) scanLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for s.in.Scan() {
			select {
			case lines <- strings.TrimSpace(s.in.Text()):
			case <-done:
				return
			}
		}
	}()
	return lines
}

func (s *Session) readLine(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case line, ok := <-lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
