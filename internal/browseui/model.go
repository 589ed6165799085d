// Package browseui provides the Bubble Tea card browser.
package browseui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/session"
	"github.com/verte-zerg/tuivocab/internal/stats"
)

const (
	tabAll = iota
	tabFavorites
	tabDue
)

var tabModes = []model.Mode{model.ModeAll, model.ModeFavorites, model.ModeDue}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	wordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	metaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	exampleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Italic(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea browse UI.
type Model struct {
	session *session.Session
	cfg     model.ListConfig

	cards  []model.Card
	errMsg string

	tabs        []string
	activeTab   int
	cardTable   table.Model
	tableLayout tableLayout

	detail     viewport.Model
	showDetail bool

	width  int
	height int

	searchMode  bool
	searchInput textinput.Model
}

type tableLayout struct {
	width  int
	height int
}

// NewModel constructs a browse UI model starting on cfg.Filter.
func NewModel(sess *session.Session, cfg model.ListConfig) *Model {
	m := &Model{
		session:   sess,
		cfg:       cfg,
		tabs:      []string{"All", "Favorites", "Due"},
		activeTab: tabFor(cfg.Filter),
		detail:    viewport.New(0, 0),
	}
	m.cfg.Filter = tabModes[m.activeTab]
	m.searchInput = newSearchInput()
	m.cardTable = buildCardTable(0, 1)
	m.cardTable.Focus()
	m.refresh()
	return m
}

func tabFor(mode model.Mode) int {
	for i, tm := range tabModes {
		if tm == mode {
			return i
		}
	}
	return tabAll
}

func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "word, definition or example"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
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
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if m.showDetail {
			return m.updateDetail(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startSearch()
		case "esc":
			if m.cfg.Query != "" {
				m.cfg.Query = ""
				m.refresh()
			}
			return m, nil
		case "enter":
			m.openDetail()
			return m, nil
		case "f":
			m.toggleFavorite()
			return m, nil
		case "g", "home":
			m.cardTable.GotoTop()
			return m, nil
		case "G", "end":
			m.cardTable.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.cardTable, cmd = m.cardTable.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.searchMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.detail.Width = m.width
	m.detail.Height = bodyHeight
	m.cardTable.SetColumns(cardColumns(m.width))
	m.setTableSize(m.width, bodyHeight)
	promptWidth := lipgloss.Width(m.searchInput.Prompt)
	m.searchInput.Width = maxInt(10, m.width-promptWidth-2)
	if m.showDetail {
		m.renderDetailContent()
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.cfg.Filter = tabModes[next]
	m.refresh()
	m.cardTable.GotoTop()
}

// refresh reloads the card list for the current tab and query.
func (m *Model) refresh() {
	m.cards = m.session.List(m.cfg)
	rows := stats.ListRows(m.cards, m.session.Records(), m.session.Favorites(), m.session.Now())
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}
	m.cardTable.SetRows(tableRows)
	if cur := m.cardTable.Cursor(); cur < 0 || cur >= len(tableRows) {
		m.cardTable.SetCursor(maxInt(0, len(tableRows)-1))
	}
}

func (m *Model) selected() (model.Card, bool) {
	idx := m.cardTable.Cursor()
	if idx < 0 || idx >= len(m.cards) {
		return model.Card{}, false
	}
	return m.cards[idx], true
}

func (m *Model) toggleFavorite() {
	card, ok := m.selected()
	if !ok {
		return
	}
	if _, err := m.session.ToggleFavorite(context.Background(), card); err != nil {
		m.errMsg = err.Error()
		logErrf("failed to toggle favorite: %v\n", err)
		return
	}
	m.errMsg = ""
	m.refresh()
	if !m.showDetail {
		return
	}
	// Unfavoriting on the favorites tab drops the card from the list.
	if cur, ok := m.selected(); !ok || cur != card {
		m.showDetail = false
		return
	}
	m.renderDetailContent()
}

func (m *Model) openDetail() {
	if _, ok := m.selected(); !ok {
		return
	}
	m.showDetail = true
	m.renderDetailContent()
	m.detail.GotoTop()
}

func (m *Model) renderDetailContent() {
	card, ok := m.selected()
	if !ok {
		m.showDetail = false
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.detail.SetContent(renderDetail(card, m.session.Record(card), m.session.IsFavorite(card), m.session.Now(), width))
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "enter", "backspace":
		m.showDetail = false
		return m, nil
	case "f":
		m.toggleFavorite()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) startSearch() (tea.Model, tea.Cmd) {
	m.searchMode = true
	m.searchInput.SetValue(m.cfg.Query)
	m.searchInput.CursorEnd()
	return m, m.searchInput.Focus()
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		m.cfg.Query = strings.TrimSpace(m.searchInput.Value())
		m.refresh()
		m.cardTable.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderSummary() string {
	query := m.cfg.Query
	if query == "" {
		query = "any"
	}
	summary := fmt.Sprintf("Query: %s  Showing: %d (limit %d)  Due now: %d", query, len(m.cards), m.cfg.Limit, m.session.DueCount())
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	var help string
	switch {
	case m.searchMode:
		help = "enter: apply  esc: cancel  quit: ctrl+c"
	case m.showDetail:
		help = "Back: esc/enter  Scroll: up/down  Fav: f  Quit: q"
	default:
		help = "Nav: left/right  Move: up/down  Open: enter  Fav: f  Search: /  Clear: esc  Quit: q"
	}
	help = headerStyle.Render(help)
	if !m.searchMode && m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	switch {
	case m.searchMode:
		return fitLines(m.searchInput.View(), m.width, height)
	case m.showDetail:
		return fitLines(m.detail.View(), m.width, height)
	case len(m.cards) == 0:
		return fitLines(m.emptyMessage(), m.width, height)
	default:
		return fitLines(tableMutedStyle.Render(m.cardTable.View()), m.width, height)
	}
}

func (m *Model) emptyMessage() string {
	if m.cfg.Query != "" {
		return "No results."
	}
	switch m.activeTab {
	case tabFavorites:
		return "No favorites yet."
	case tabDue:
		return "Nothing due right now."
	default:
		return "No cards loaded."
	}
}

// renderDetail lays out one card with its scheduling record.
func renderDetail(card model.Card, rec model.Record, favorite bool, now time.Time, width int) string {
	title := wordStyle.Render(card.Word)
	if favorite {
		title += " ★"
	}
	meta := card.PartOfSpeech
	if card.Sense > 1 {
		meta = fmt.Sprintf("%s • sense %d", card.PartOfSpeech, card.Sense)
	}
	wrap := lipgloss.NewStyle().Width(maxInt(10, width-2))
	lines := []string{title, metaStyle.Render(meta), "", wrap.Render(stats.DisplayDefinition(card.Definition))}
	if ex := strings.TrimSpace(card.Example); ex != "" {
		lines = append(lines, "", exampleStyle.Render(wrap.Render("“"+ex+"”")))
	}
	lines = append(lines, "",
		metaStyle.Render(fmt.Sprintf("Reps: %d  Interval: %dd  Ease: %.2f  Due: %s", rec.Reps, rec.Interval, rec.Ease, stats.FormatDue(rec, now))),
	)
	return strings.Join(lines, "\n")
}

func cardColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "", Width: 2},
		{Title: "Word", Width: 18},
		{Title: "POS", Width: 5},
		{Title: "Reps", Width: 4},
		{Title: "Due", Width: 16},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 1
	}
	return append(fixed, table.Column{Title: "Definition", Width: maxInt(10, width-used-1)})
}

func buildCardTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(cardColumns(width)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(cardTableStyles())
	return t
}

func (m *Model) setTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.tableLayout.width == width && m.tableLayout.height == viewportHeight {
		return
	}
	m.tableLayout.width = width
	m.tableLayout.height = viewportHeight
	m.cardTable.SetWidth(width)
	m.cardTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustTableHeight(height)
	if m.tableLayout.height != viewportHeight {
		m.tableLayout.height = viewportHeight
		m.cardTable.SetHeight(viewportHeight)
	}
}

func cardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// adjustTableHeight fits the rendered table, header included, to bodyHeight.
func (m *Model) adjustTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.cardTable.Height()
	viewHeight := lipgloss.Height(m.cardTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.cardTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.cardTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
