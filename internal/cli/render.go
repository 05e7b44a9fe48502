package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/etpscan/internal/engine"
	"github.com/Veraticus/etpscan/internal/model"
)

// RenderVerdict shows one classified name.
func RenderVerdict(name string, v model.Verdict) string {
	if !v.Matched {
		return SubtleStyle.Render(ErrorIcon+" ") + name + SubtleStyle.Render("  no match")
	}

	var b strings.Builder
	b.WriteString(SuccessStyle.Render(SuccessIcon+" ") + BoldStyle.Render(name) + "\n")
	fmt.Fprintf(&b, "  %s %s\n", SubtleStyle.Render("category:"), StyleCategory(v.Category))
	fmt.Fprintf(&b, "  %s %s\n", SubtleStyle.Render("type:    "), string(v.Type))
	fmt.Fprintf(&b, "  %s %s", SubtleStyle.Render("reasons: "), strings.Join(v.Reasons, ", "))
	return b.String()
}

// RenderSummary formats the result of a scan.
func RenderSummary(s *engine.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidates: %s\n", BoldStyle.Render(fmt.Sprintf("%d", s.Count)))
	fmt.Fprintf(&b, "Date:       %s\n", s.DateDir)
	if s.RunID != "" {
		fmt.Fprintf(&b, "Run:        %s\n", s.RunID)
	}

	if len(s.Categories) > 0 {
		b.WriteString("\n")
		for _, c := range model.AllCategories() {
			if n := s.Categories[c]; n > 0 {
				fmt.Fprintf(&b, "  %-34s %5d\n", StyleCategory(c), n)
			}
		}
	}

	formats := make([]string, 0, len(s.Outputs))
	for f := range s.Outputs {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	b.WriteString("\n")
	for _, f := range formats {
		fmt.Fprintf(&b, "%s %s\n", FolderIcon, s.Outputs[f])
	}
	if s.PDF != nil {
		fmt.Fprintf(&b, "%s %s\n", FolderIcon, *s.PDF)
	}
	if s.Sheet != "" {
		fmt.Fprintf(&b, "%s %s\n", ChartIcon, s.Sheet)
	}

	return RenderBox("Scan Complete", strings.TrimRight(b.String(), "\n"))
}

// RenderRuns lists stored runs, newest first.
func RenderRuns(runs []model.ScanRun) string {
	if len(runs) == 0 {
		return FormatInfo("No runs stored yet")
	}

	header := fmt.Sprintf("%-36s  %-10s  %-19s  %8s  %8s  %10s", "RUN", "DATE", "STARTED", "ROWS", "SKIPPED", "CANDIDATES")
	lines := []string{TableHeaderStyle.Render(header)}
	for _, r := range runs {
		lines = append(lines, TableCellStyle.Render(fmt.Sprintf("%-36s  %-10s  %-19s  %8d  %8d  %10d",
			r.ID, r.DateDir, r.StartedAt.Format(time.DateTime), r.TotalRows, r.Skipped, r.Matched)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderDiff shows what changed between two runs.
func RenderDiff(d model.RunDiff) string {
	title := fmt.Sprintf("Changes %s → %s", shortID(d.From), shortID(d.To))
	if d.IsEmpty() {
		return RenderBox(title, SubtleStyle.Render("No changes"))
	}

	var b strings.Builder
	section := func(label, icon string, style lipgloss.Style, cs []model.Candidate) {
		if len(cs) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s (%d)\n", BoldStyle.Render(label), len(cs))
		for _, c := range cs {
			fmt.Fprintf(&b, "  %s %-8s %s  %s\n", style.Render(icon), c.Symbol, StyleCategory(c.Category), c.Name)
		}
	}
	section("Added", UpIcon, SuccessStyle, d.Added)
	section("Removed", DownIcon, ErrorStyle, d.Removed)
	section("Changed", "~", WarningStyle, d.Changed)

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
