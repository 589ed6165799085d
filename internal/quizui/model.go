// Package quizui provides the Bubble Tea quiz interface.
package quizui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/quiz"
	"github.com/verte-zerg/tuivocab/internal/session"
	"github.com/verte-zerg/tuivocab/internal/stats"
)

// closeEnough is the similarity above which a typed answer counts as correct.
const closeEnough = 0.45

var (
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	exampleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Italic(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boxStyle     = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	session  *session.Session
	quizType model.QuizType

	question    quiz.Question
	hasQuestion bool

	answered bool
	chosen   int
	score    float64

	input  textinput.Model
	errMsg string

	asked   int
	correct int

	width  int
	height int
}

// NewModel constructs a quiz TUI model and draws the first question.
func NewModel(sess *session.Session, quizType model.QuizType) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Your definition…"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)

	m := &Model{session: sess, quizType: quizType, input: input}
	m.nextQuestion()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.quizType == model.Typed {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(10, m.width/2)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.quizType == model.Typed && !m.answered {
			return m.updateTyped(msg)
		}
		return m.updateKeys(msg)
	}
	if m.quizType == model.Typed && !m.answered {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateTyped(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.checkTyped()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "n", "enter", " ":
		if m.answered || !m.hasQuestion {
			m.nextQuestion()
		}
		return m, nil
	case "f":
		m.toggleFavorite()
		return m, nil
	case "t":
		m.toggleType()
		return m, nil
	default:
		if n, err := strconv.Atoi(key); err == nil {
			m.choose(n - 1)
		}
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := boxStyle.Render(m.renderQuestion())
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderQuestion() string {
	if !m.hasQuestion {
		return metaStyle.Render("No cards to quiz on.")
	}
	card := m.question.Card
	title := wordStyle.Render(card.Word)
	if m.session.IsFavorite(card) {
		title += " ★"
	}
	meta := card.PartOfSpeech
	if card.Sense > 1 {
		meta = fmt.Sprintf("%s • sense %d", card.PartOfSpeech, card.Sense)
	}
	lines := []string{title, metaStyle.Render(meta), ""}
	if m.quizType == model.Typed {
		lines = append(lines, m.renderTyped()...)
	} else {
		lines = append(lines, m.renderChoices()...)
	}
	if m.answered && card.Example != "" {
		lines = append(lines, "", exampleStyle.Render("Example: “"+card.Example+"”"))
	}
	if m.errMsg != "" {
		lines = append(lines, "", wrongStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderChoices() []string {
	lines := []string{"Pick the best definition:", ""}
	for i, opt := range m.question.Options {
		label := fmt.Sprintf("%d. %s", i+1, stats.DisplayDefinition(opt))
		style := optionStyle
		if m.answered {
			switch {
			case m.question.Correct(i):
				style = correctStyle
			case i == m.chosen:
				style = wrongStyle
			}
		}
		lines = append(lines, style.Render(label))
	}
	if m.answered {
		lines = append(lines, "")
		if m.question.Correct(m.chosen) {
			lines = append(lines, correctStyle.Render("Correct"))
		} else {
			lines = append(lines, wrongStyle.Render("Wrong. Correct: "+stats.DisplayDefinition(m.question.Card.Definition)))
		}
	}
	return lines
}

func (m *Model) renderTyped() []string {
	lines := []string{"Type the definition (aim for the idea):", m.input.View()}
	if m.answered {
		lines = append(lines, "", stats.DisplayDefinition(m.question.Card.Definition), "")
		if m.score > closeEnough {
			lines = append(lines, correctStyle.Render(fmt.Sprintf("Close enough (%.0f%% match)", m.score*100)))
		} else {
			lines = append(lines, wrongStyle.Render(fmt.Sprintf("Compare yours to the definition above (%.0f%% match)", m.score*100)))
		}
	}
	return lines
}

func (m *Model) renderFooter() string {
	var keys string
	switch {
	case m.quizType == model.Typed && !m.answered:
		keys = "enter check · esc quit"
	case m.quizType == model.Typed:
		keys = "n next · f fav · t mode · q quit"
	default:
		keys = "1-4 answer · n next · f fav · t mode · q quit"
	}
	segments := []string{
		fmt.Sprintf("Quiz %s", m.quizType),
		fmt.Sprintf("%d/%d correct", m.correct, m.asked),
		keys,
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) nextQuestion() {
	m.question, m.hasQuestion = m.session.NextQuestion()
	m.answered = false
	m.chosen = -1
	m.score = 0
	m.errMsg = ""
	m.input.Reset()
	if m.quizType == model.Typed {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) choose(i int) {
	if !m.hasQuestion || m.answered || i < 0 || i >= len(m.question.Options) {
		return
	}
	m.chosen = i
	m.answered = true
	m.asked++
	if m.question.Correct(i) {
		m.correct++
	}
}

func (m *Model) checkTyped() {
	if !m.hasQuestion {
		return
	}
	guess := strings.ToLower(m.input.Value())
	truth := strings.ToLower(m.question.Card.Definition)
	m.score = quiz.Similarity(guess, truth)
	m.answered = true
	m.asked++
	if m.score > closeEnough {
		m.correct++
	}
	m.input.Blur()
}

func (m *Model) toggleType() {
	if m.quizType == model.Typed {
		m.quizType = model.MultipleChoice
	} else {
		m.quizType = model.Typed
	}
	m.nextQuestion()
}

func (m *Model) toggleFavorite() {
	if !m.hasQuestion {
		return
	}
	if _, err := m.session.ToggleFavorite(context.Background(), m.question.Card); err != nil {
		m.errMsg = err.Error()
		logErrf("failed to toggle favorite: %v\n", err)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
