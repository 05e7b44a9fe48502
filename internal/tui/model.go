// Package tui is an interactive browser for a stored scan run.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/tui/themes"
)

// chrome is the number of lines around the table: header, filter line, help and borders.
const chrome = 7

// allCategories is the filter index meaning no category filter.
const allCategories = -1

// Model holds the browser state.
type Model struct {
	theme      themes.Theme
	err        error
	run        *model.ScanRun
	load       tea.Cmd
	keymap     KeyMap
	candidates []model.Candidate
	filtered   []model.Candidate
	categories []model.Category
	help       help.Model
	search     textinput.Model
	table      table.Model
	catIndex   int
	width      int
	height     int
	showHelp   bool
	searching  bool
	detail     bool
	loading    bool
	quitting   bool
}

// newModel creates a model that runs load on start.
func newModel(cfg Config, load tea.Cmd) Model {
	t := table.New(
		table.WithColumns(columns(cfg.Width)),
		table.WithFocused(true),
		table.WithHeight(max(cfg.Height-chrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cfg.Theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = cfg.Theme.Selected
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "symbol or name"
	search.Prompt = "/ "
	search.CharLimit = 50

	return Model{
		theme:    cfg.Theme,
		load:     load,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		search:   search,
		table:    t,
		catIndex: allCategories,
		width:    cfg.Width,
		height:   cfg.Height,
		showHelp: cfg.ShowHelp,
		loading:  load != nil,
	}
}

// columns splits the width between the table columns. Name takes what is left.
func columns(width int) []table.Column {
	const fixed = 8 + 32 + 8 + 8
	return []table.Column{
		{Title: "Symbol", Width: 8},
		{Title: "Category", Width: 32},
		{Title: "Type", Width: 8},
		{Title: "Name", Width: max(width-fixed, 20)},
	}
}

// Init starts loading the run.
func (m Model) Init() tea.Cmd {
	return m.load
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(msg.Height-chrome, 3))
		return m, nil

	case runLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.setRun(msg.run, msg.candidates)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.detail {
		if key.Matches(msg, m.keymap.Detail, m.keymap.Quit) {
			m.detail = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, m.keymap.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keymap.ClearFilter):
		m.catIndex = allCategories
		m.search.SetValue("")
		m.applyFilter()
	case key.Matches(msg, m.keymap.Detail):
		if _, ok := m.Selected(); ok {
			m.detail = true
		}
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSearchKey edits the search box. Enter keeps the query, Esc drops it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) setRun(run *model.ScanRun, candidates []model.Candidate) {
	m.run = run
	m.candidates = candidates

	present := model.CountByCategory(candidates)
	m.categories = nil
	for _, c := range model.AllCategories() {
		if present[c] > 0 {
			m.categories = append(m.categories, c)
		}
	}
	m.catIndex = allCategories
	m.applyFilter()
}

// cycleCategory steps through "all" followed by each category present in the run.
func (m *Model) cycleCategory(step int) {
	n := len(m.categories) + 1
	pos := (m.catIndex + 1 + step + n) % n
	m.catIndex = pos - 1
	m.applyFilter()
}

// Category returns the active category filter, if any.
func (m Model) Category() (model.Category, bool) {
	if m.catIndex == allCategories || m.catIndex >= len(m.categories) {
		return "", false
	}
	return m.categories[m.catIndex], true
}

func (m *Model) applyFilter() {
	cat, filterCat := m.Category()
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))

	m.filtered = make([]model.Candidate, 0, len(m.candidates))
	rows := make([]table.Row, 0, len(m.candidates))
	for _, c := range m.candidates {
		if filterCat && c.Category != cat {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Symbol), query) &&
			!strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		m.filtered = append(m.filtered, c)
		rows = append(rows, table.Row{c.Symbol, string(c.Category), string(c.ETPType), c.Name})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) || m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

// Selected returns the candidate under the cursor.
func (m Model) Selected() (model.Candidate, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.filtered) {
		return model.Candidate{}, false
	}
	return m.filtered[i], true
}

// Visible returns the candidates that pass the current filters.
func (m Model) Visible() []model.Candidate {
	return m.filtered
}

// Err returns the load error, if any.
func (m Model) Err() error {
	return m.err
}
