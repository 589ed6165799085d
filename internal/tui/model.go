// Package tui provides the Bubble Tea study interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/session"
	"github.com/verte-zerg/tuivocab/internal/stats"
)

// Model implements the Bubble Tea study UI.
type Model struct {
	session *session.Session
	deck    model.Mode

	current  model.Card
	hasCard  bool
	revealed bool

	errMsg string

	width  int
	height int
}

var (
	wordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	metaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	definitionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	exampleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Italic(true)
	favStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// keyGrades maps rating keys to grades; "1" is Lapse.
var keyGrades = map[string]model.Grade{
	"1": model.Lapse,
	"2": model.Hard,
	"3": model.Good,
	"4": model.Easy,
}

// NewModel constructs a study TUI model and picks the first card.
func NewModel(sess *session.Session, deck model.Mode) *Model {
	m := &Model{session: sess, deck: deck}
	m.nextCard()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "enter":
			m.reveal()
			return m, nil
		case "f":
			m.toggleFavorite()
			return m, nil
		case "d":
			m.deck = m.deck.Next()
			m.nextCard()
			return m, nil
		case "n":
			m.nextCard()
			return m, nil
		}
		if g, ok := keyGrades[key]; ok {
			m.rate(g)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderCard()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderCard() string {
	if !m.hasCard {
		hint := "Nothing due right now."
		if m.deck == model.ModeFavorites {
			hint = "No favorites yet."
		}
		return wordStyle.Render("All caught up") + "\n" + metaStyle.Render(hint)
	}
	width := m.contentWidth()
	title := wordStyle.Render(m.current.Word)
	if m.session.IsFavorite(m.current) {
		title += " " + favStyle.Render("★")
	}
	lines := []string{title, metaStyle.Render(cardMeta(m.current)), ""}
	if m.revealed {
		def := stats.DisplayDefinition(m.current.Definition)
		lines = append(lines, definitionStyle.Render(wrapText(def, width)))
		if ex := strings.TrimSpace(m.current.Example); ex != "" {
			lines = append(lines, "", exampleStyle.Render(wrapText("“"+ex+"”", width)))
		}
		lines = append(lines, "", metaStyle.Render("1 again · 2 hard · 3 good · 4 easy"))
	} else {
		lines = append(lines, metaStyle.Render("space to show"))
	}
	if m.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	today := m.session.Today()
	segments := []string{
		fmt.Sprintf("Deck %s", m.deck),
		fmt.Sprintf("%d due", m.session.DueCount()),
		fmt.Sprintf("%d/%d today", today.Studied, today.Goal),
		"f fav · d deck · n skip · q quit",
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

// cardMeta formats the part of speech and, for secondary senses, the sense number.
func cardMeta(c model.Card) string {
	if c.Sense > 1 {
		return fmt.Sprintf("%s • sense %d", c.PartOfSpeech, c.Sense)
	}
	return c.PartOfSpeech
}

func (m *Model) nextCard() {
	m.current, m.hasCard = m.session.Next(m.deck)
	m.revealed = false
}

func (m *Model) reveal() {
	if !m.hasCard {
		return
	}
	m.revealed = true
}

func (m *Model) rate(g model.Grade) {
	if !m.hasCard || !m.revealed {
		return
	}
	if _, err := m.session.Rate(context.Background(), m.current, g); err != nil {
		m.errMsg = err.Error()
		logErrf("failed to save grade: %v\n", err)
		return
	}
	m.errMsg = ""
	m.nextCard()
}

func (m *Model) toggleFavorite() {
	if !m.hasCard {
		return
	}
	if _, err := m.session.ToggleFavorite(context.Background(), m.current); err != nil {
		m.errMsg = err.Error()
		logErrf("failed to toggle favorite: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
