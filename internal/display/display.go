// Package display renders stud tables for terminals.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/room"
	"github.com/lox/sevenstud/poker"
)

// Styles holds every style the renderer uses.
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Turn      lipgloss.Style
	Folded    lipgloss.Style
	Winner    lipgloss.Style
	Info      lipgloss.Style
	Actions   lipgloss.Style
	Error     lipgloss.Style
}

// Renderer turns room views into styled text. Output adapts to the color
// profile of the lipgloss renderer it wraps.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles Styles
}

// New returns a renderer that detects the color profile of w.
func New(w io.Writer) *Renderer {
	return NewWithRenderer(lipgloss.NewRenderer(w))
}

// NewWithRenderer wraps an existing lipgloss renderer.
func NewWithRenderer(lg *lipgloss.Renderer) *Renderer {
	return &Renderer{lg: lg, styles: defaultStyles(lg)}
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() Styles {
	return r.styles
}

func defaultStyles(lg *lipgloss.Renderer) Styles {
	return Styles{
		Header: lg.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		RedCard:   lg.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: lg.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		Hidden:    lg.NewStyle().Foreground(lipgloss.Color("#626262")),
		Turn:      lg.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Folded:    lg.NewStyle().Foreground(lipgloss.Color("#626262")).Strikethrough(true),
		Winner:    lg.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Info:      lg.NewStyle().Foreground(lipgloss.Color("#626262")),
		Actions:   lg.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Error:     lg.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// Card renders one card.
func (r *Renderer) Card(c poker.Card) string {
	if c.Suit.IsRed() {
		return r.styles.RedCard.Render(c.Symbol())
	}
	return r.styles.BlackCard.Render(c.Symbol())
}

// Cards renders cards in brackets.
func (r *Renderer) Cards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// CardViews renders a masked hand; hidden cards show as "##".
func (r *Renderer) CardViews(cards []room.CardView) string {
	parts := make([]string, len(cards))
	for i, cv := range cards {
		if cv.Hidden || cv.Card == nil {
			parts[i] = r.styles.Hidden.Render("##")
			continue
		}
		parts[i] = r.Card(*cv.Card)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Table renders the whole view: a header line, one row per seat and the
// viewer's options.
func (r *Renderer) Table(v *room.View) string {
	var b strings.Builder

	status := v.Stage.String()
	if !v.InProgress {
		status = "finished"
	}
	b.WriteString(r.styles.Header.Render(fmt.Sprintf("%s  %s  pot %d", v.RoomID, status, v.Pot)))
	b.WriteString("\n")
	b.WriteString(r.styles.Info.Render(fmt.Sprintf("ante %d  bet %d  unit %d  raises %d/%d",
		v.Ante, v.CurrentBet, v.BetUnit, v.Raises, game.MaxRaises)))
	b.WriteString("\n\n")

	for _, p := range v.Players {
		b.WriteString(r.Player(v, p))
		b.WriteString("\n")
	}

	if len(v.Winners) > 0 && !v.InProgress {
		b.WriteString("\n")
		b.WriteString(r.styles.Winner.Render(fmt.Sprintf("Winner: %s (%d)", strings.Join(v.Winners, ", "), v.Settled)))
		b.WriteString("\n")
	}
	if v.Viewer != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Info.Render(fmt.Sprintf("balance %d (%+d)", v.Balance, v.BalanceDelta)))
		if acts := r.Actions(v.LegalActions, v.ToCall); acts != "" {
			b.WriteString("\n")
			b.WriteString(acts)
		}
	}
	return b.String()
}

// Player renders one seat row.
func (r *Renderer) Player(v *room.View, p room.PlayerView) string {
	marker := "  "
	if v.InProgress && p.ID == v.Turn {
		marker = r.styles.Turn.Render(">") + " "
	}

	name := fmt.Sprintf("%-10s", p.ID)
	switch {
	case p.Folded:
		name = r.styles.Folded.Render(name)
	case p.Winner:
		name = r.styles.Winner.Render(name)
	}

	row := fmt.Sprintf("%s%s %s  in %d", marker, name, r.CardViews(p.Cards), p.Contributed)
	if p.LastAction != game.ActionNone {
		row += "  " + r.styles.Info.Render(strings.ToLower(p.LastAction.String()))
	}
	if p.Profile != "" {
		row += r.styles.Info.Render(" (" + p.Profile + ")")
	}
	if p.Hand != "" && !v.InProgress {
		row += "  " + p.Hand
	}
	return row
}

// Actions renders the viewer's legal actions, or nothing when it is not
// their turn.
func (r *Renderer) Actions(actions []game.Action, toCall int) string {
	if len(actions) == 0 {
		return ""
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		label := strings.ToLower(a.String())
		if a == game.ActionCall && toCall > 0 {
			label = fmt.Sprintf("call %d", toCall)
		}
		parts[i] = "[" + label + "]"
	}
	return r.styles.Actions.Render("Actions: " + strings.Join(parts, " "))
}

// Event renders one hand log entry.
func (r *Renderer) Event(e game.Event) string {
	switch e.Kind {
	case game.EventHandStart:
		return r.styles.Header.Render("new hand")
	case game.EventAnte:
		return fmt.Sprintf("%s antes %d", e.Seat, e.Amount)
	case game.EventStreet:
		return r.styles.Info.Render(fmt.Sprintf("*** %s street ***", e.Street))
	case game.EventAction:
		s := fmt.Sprintf("%s %s", e.Seat, strings.ToLower(e.Action.String()))
		if e.Amount > 0 {
			s += fmt.Sprintf(" %d", e.Amount)
		}
		return s
	case game.EventShowdown, game.EventUncontested:
		return r.styles.Winner.Render(fmt.Sprintf("%s wins %d", e.Seat, e.Amount))
	default:
		return string(e.Kind)
	}
}
