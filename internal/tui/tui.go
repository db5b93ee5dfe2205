// Package tui plays stud against bots in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/sevenstud/internal/display"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/room"
)

// Config describes the table the player sits at.
type Config struct {
	RoomID    string
	Seat      string
	Opponents []string
	Ante      int
}

// snapshotMsg carries the room after an operation.
type snapshotMsg struct {
	view *room.View
	err  error
}

// Model is the bubbletea model for one seat.
type Model struct {
	cfg      Config
	manager  *room.Manager
	renderer *display.Renderer
	logger   *log.Logger

	keys     keyMap
	help     help.Model
	log      viewport.Model
	lines    []string
	lastSeq  int
	lastHand string

	view     *room.View
	err      error
	width    int
	height   int
	quitting bool
}

// NewModel returns a model playing cfg.Seat in manager.
func NewModel(manager *room.Manager, cfg Config, renderer *display.Renderer, logger *log.Logger) *Model {
	if renderer == nil {
		renderer = display.New(io.Discard)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vp := viewport.New(60, 8)
	return &Model{
		cfg:      cfg,
		manager:  manager,
		renderer: renderer,
		logger:   logger.WithPrefix("tui"),
		keys:     defaultKeys(),
		help:     help.New(),
		log:      vp,
	}
}

// Init deals the first hand.
func (m *Model) Init() tea.Cmd {
	return m.deal()
}

// Update handles keys, resizes and snapshots.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.log.Width = max(1, msg.Width)
		m.log.Height = max(3, msg.Height/3)
		return m, nil

	case snapshotMsg:
		m.err = msg.err
		if msg.view != nil {
			m.apply(msg.view)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Deal):
		if m.view != nil && m.view.InProgress {
			return nil
		}
		return m.deal()
	case key.Matches(msg, m.keys.Next):
		if m.botTurn() {
			return m.run(func() error { return m.manager.Resume(m.cfg.RoomID) })
		}
		return m.run(func() error { return m.manager.Next(m.cfg.RoomID) })
	case key.Matches(msg, m.keys.Call):
		a := game.ActionCheck
		if m.view != nil && m.view.ToCall > 0 {
			a = game.ActionCall
		}
		return m.act(a)
	case key.Matches(msg, m.keys.Bet):
		return m.act(game.ActionBet)
	case key.Matches(msg, m.keys.Fold):
		return m.act(game.ActionFold)
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return cmd
}

// botTurn reports whether a bot holds the turn in the current view.
func (m *Model) botTurn() bool {
	if m.view == nil || !m.view.InProgress {
		return false
	}
	for _, p := range m.view.Players {
		if p.ID == m.view.Turn {
			return p.Bot
		}
	}
	return false
}

func (m *Model) act(a game.Action) tea.Cmd {
	return m.run(func() error {
		amount := 0
		if m.view != nil {
			amount = m.view.BetUnit
		}
		return m.manager.Act(m.cfg.RoomID, m.cfg.Seat, a, amount)
	})
}

func (m *Model) deal() tea.Cmd {
	seats := append([]string{m.cfg.Seat}, m.cfg.Opponents...)
	return m.run(func() error {
		return m.manager.Start(m.cfg.RoomID, seats, m.cfg.Ante)
	})
}

// run performs op off the update loop and reports the resulting snapshot.
func (m *Model) run(op func() error) tea.Cmd {
	roomID, seat := m.cfg.RoomID, m.cfg.Seat
	return func() tea.Msg {
		opErr := op()
		v, err := m.manager.Snapshot(roomID, seat)
		return snapshotMsg{view: v, err: errors.Join(opErr, err)}
	}
}

func (m *Model) apply(v *room.View) {
	if v.HandID != m.lastHand {
		m.lastHand = v.HandID
		m.lastSeq = 0
		m.lines = m.lines[:0]
	}
	for _, e := range v.Log {
		if e.Seq <= m.lastSeq {
			continue
		}
		m.lines = append(m.lines, m.renderer.Event(e))
		m.lastSeq = e.Seq
	}
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
	m.view = v
}

// View renders the table, the hand log and the key help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.view == nil {
		return "Dealing..."
	}

	var b strings.Builder
	b.WriteString(m.renderer.Table(m.view))
	b.WriteString("\n\n")
	b.WriteString(m.log.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.renderer.Styles().Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run plays until the user quits or ctx is done.
func Run(ctx context.Context, manager *room.Manager, cfg Config, logger *log.Logger) error {
	model := NewModel(manager, cfg, display.New(os.Stdout), logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
