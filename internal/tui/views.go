package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/etpscan/internal/model"
)

// View renders the model.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case m.err != nil:
		return m.theme.StatusError.Render("Error: "+m.err.Error()) + "\n"
	case m.loading:
		return m.theme.Subtitle.Render("Loading run...")
	case m.detail:
		return m.renderDetail()
	}

	parts := []string{m.renderHeader(), m.renderFilters(), m.table.View()}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	if m.run == nil {
		return m.theme.Title.Render("ETP candidates")
	}
	title := m.theme.Title.Render(fmt.Sprintf("ETP candidates for %s", m.run.DateDir))
	meta := m.theme.Subtitle.Render(fmt.Sprintf("  run %s · %d of %d shown · %d rows scanned",
		m.run.ID, len(m.filtered), len(m.candidates), m.run.TotalRows))
	return title + meta
}

func (m Model) renderFilters() string {
	label := "all"
	if c, ok := m.Category(); ok {
		label = string(c)
	}
	category := "Category: " + lipgloss.NewStyle().Foreground(m.categoryColor(label)).Render(label)

	var search string
	switch {
	case m.searching:
		search = m.search.View()
	case m.search.Value() != "":
		search = "Search: " + m.search.Value()
	}

	if search == "" {
		return category
	}
	return category + "   " + search
}

func (m Model) categoryColor(label string) lipgloss.Color {
	c := model.Category(label)
	switch {
	case c.IsInverse():
		return m.theme.Inverse
	case c.IsLeveraged():
		return m.theme.Long
	case c.IsValid():
		return m.theme.Commodity
	default:
		return m.theme.Primary
	}
}

func (m Model) renderDetail() string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", m.theme.Title.Render(c.Symbol), m.theme.Normal.Render(c.Name))
	fmt.Fprintf(&b, "Category:  %s\n", lipgloss.NewStyle().Foreground(m.categoryColor(string(c.Category))).Render(string(c.Category)))
	fmt.Fprintf(&b, "Type:      %s\n", c.ETPType)
	if !c.Timestamp.IsZero() {
		fmt.Fprintf(&b, "Observed:  %s\n", c.Timestamp.Format(time.RFC3339))
	}
	b.WriteString("\nReasons:\n")
	for _, r := range c.Reasons {
		fmt.Fprintf(&b, "  • %s\n", r)
	}
	b.WriteString("\n" + m.theme.Subtitle.Render("Enter/Esc to go back"))

	return m.theme.RoundedBox.Width(max(m.width-4, 40)).Render(b.String())
}
