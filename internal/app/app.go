// Package app is the interactive practice TUI. It drives a practice.Session
// over a question set, optionally asking the ordering engine for a
// model-prioritized order first.
package app

import (
	"context"
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdrill/internal/ordering"
	"github.com/abhisek/quizdrill/internal/practice"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/sets"
	"github.com/abhisek/quizdrill/internal/ui/theme"
)

// Config wires the practice screen to its collaborators.
type Config struct {
	Set *sets.Set

	// Questions overrides the set's stored order (a review subset, or a
	// pre-computed order). Nil means the full set in stored order.
	Questions []quiz.Question

	// Orderer, when set, is asked for a priority order before the session
	// starts. Ignored when Questions is set.
	Orderer *ordering.Engine

	// Recorder receives each submitted answer. May be nil.
	Recorder practice.AttemptRecorder

	// Results seeds prior outcomes so a reloaded session resumes at the
	// first unanswered question. May be nil.
	Results map[string]bool

	// SaveResults persists the session's outcomes after each answer.
	// May be nil.
	SaveResults func(ctx context.Context, results map[string]bool) error

	// Ctx bounds the ordering request and attempt recording. Defaults to
	// context.Background().
	Ctx context.Context
}

type phase int

const (
	phaseOrdering phase = iota
	phasePracticing
	phaseComplete
)

// Model is the root Bubble Tea model for a practice run.
type Model struct {
	cfg Config
	ctx context.Context

	phase     phase
	questions []quiz.Question
	session   *practice.Session
	cursor    int

	spinner spinner.Model
	notice  string

	width  int
	height int
}

func newModel(cfg Config) Model {
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := Model{
		cfg:     cfg,
		ctx:     cfg.Ctx,
		spinner: sp,
	}

	switch {
	case cfg.Questions != nil:
		m.startSession(cfg.Questions)
	case cfg.Orderer != nil:
		m.phase = phaseOrdering
	default:
		m.startSession(ordering.Default(cfg.Set))
	}
	return m
}

func (m *Model) startSession(questions []quiz.Question) {
	m.questions = questions
	m.session = practice.NewSession(m.cfg.Set.ID, questions, m.cfg.Recorder)
	m.cursor = 0
	m.phase = phasePracticing

	if len(m.cfg.Results) > 0 {
		m.session.SeedResults(m.cfg.Results)
		m.session.JumpTo(practice.ResumeIndex(questions, m.cfg.Results))
	}
	if m.session.State() == practice.StateComplete {
		m.phase = phaseComplete
	}
}

func (m Model) Init() tea.Cmd {
	if m.phase == phaseOrdering {
		return tea.Batch(m.spinner.Tick, m.requestOrder())
	}
	return nil
}

// requestOrder asks the ordering engine off the event loop. The command
// always yields a playable order: on failure Materialize falls back to the
// stored order and warn carries the reason.
func (m Model) requestOrder() tea.Cmd {
	ctx, set, orderer := m.ctx, m.cfg.Set, m.cfg.Orderer
	return func() tea.Msg {
		ids, err := orderer.RequestPriorityOrder(ctx, set)
		return orderReadyMsg{
			setID:     set.ID,
			questions: ordering.Materialize(set, ids),
			warn:      err,
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseOrdering {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case orderReadyMsg:
		// A stale order for a different set must not restart the session.
		if msg.setID != m.cfg.Set.ID || m.phase != phaseOrdering {
			return m, nil
		}
		if msg.warn != nil {
			m.notice = "model ordering unavailable, using stored order"
		}
		m.startSession(msg.questions)
		return m, nil

	case resultsSavedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("could not save progress: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseOrdering:
		if key == "esc" {
			return m, tea.Quit
		}
		return m, nil
	case phaseComplete:
		return m.handleCompleteKey(key)
	}

	q := m.session.Current()
	if q == nil {
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case " ":
		m.session.SelectOption(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(q.Options) {
			m.cursor = i
			m.session.SelectOption(i)
		}
	case "enter":
		return m.handleEnter()
	case "left", "h":
		m.session.JumpTo(m.session.Index() - 1)
		m.cursor = 0
	case "right", "l":
		m.session.JumpTo(m.session.Index() + 1)
		m.cursor = 0
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if !m.session.Revealed() {
		ok, err := m.session.Submit(m.ctx)
		if !ok {
			m.notice = "select an answer first"
			return m, nil
		}
		m.notice = ""
		if err != nil {
			m.notice = fmt.Sprintf("could not save attempt: %v", err)
		}
		return m, m.saveResults()
	}

	m.session.Advance()
	m.cursor = 0
	if m.session.State() == practice.StateComplete {
		m.phase = phaseComplete
	}
	return m, nil
}

func (m Model) handleCompleteKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "r":
		m.session.Restart()
		m.cursor = 0
		m.notice = ""
		if m.session.State() != practice.StateComplete {
			m.phase = phasePracticing
		}
		return m, m.saveResults()
	case "q", "esc", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) saveResults() tea.Cmd {
	if m.cfg.SaveResults == nil {
		return nil
	}
	ctx, save := m.ctx, m.cfg.SaveResults
	results := m.session.Results()
	return func() tea.Msg {
		return resultsSavedMsg{err: save(ctx, results)}
	}
}

// Run starts the Bubble Tea program and blocks until the session ends.
func Run(cfg Config) error {
	p := tea.NewProgram(newModel(cfg))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
