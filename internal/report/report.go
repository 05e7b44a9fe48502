// Package report renders a scan summary as a PDF.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	etp "github.com/Veraticus/etpscan/internal/model"
)

// FileName is the report's name inside a run's date directory.
const FileName = "etp_report.pdf"

// Page geometry for US Letter portrait, in points.
const (
	pageHeight   = 792.0
	marginLeft   = 40.0
	marginTop    = 48.0
	marginBottom = 48.0
	lineHeight   = 12.0
	maxNameRunes = 60
)

// Line is one row of text on a page.
type Line struct {
	Text string
	Font string
	Size int
}

func heading(text string) Line { return Line{Text: text, Font: "Helvetica-Bold", Size: 12} }
func body(text string) Line    { return Line{Text: text, Font: "Helvetica", Size: 9} }
func mono(text string) Line    { return Line{Text: text, Font: "Courier", Size: 8} }
func blank() Line              { return Line{} }

// Meta is the run information printed in the header section.
type Meta struct {
	GeneratedAt time.Time
	RunID       string
	SourceURL   string
	DateDir     string
	Outputs     map[string]string
	TotalRows   int
	Skipped     int
}

// Lines lays out the whole report as a flat list of lines.
func Lines(meta Meta, candidates []etp.Candidate) []Line {
	lines := []Line{
		{Text: "ETP Scan Report", Font: "Helvetica-Bold", Size: 16},
		body("Generated " + meta.GeneratedAt.Format(time.RFC3339)),
		blank(),
		heading("Summary"),
		body(fmt.Sprintf("Total matches: %d", len(candidates))),
		body(fmt.Sprintf("Rows scanned: %d  Rows skipped: %d", meta.TotalRows, meta.Skipped)),
		blank(),
		heading("Categories"),
	}

	counts := etp.CountByCategory(candidates)
	cats := make([]etp.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	// Most populated first, then by name.
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	for _, c := range cats {
		lines = append(lines, mono(fmt.Sprintf("%-34s %6d", c, counts[c])))
	}

	lines = append(lines, blank(), heading("Run metadata"))
	meta.appendTo(&lines)

	lines = append(lines, blank(), heading("Candidates"),
		mono(fmt.Sprintf("%-8s %-9s %-32s %s", "SYMBOL", "TYPE", "CATEGORY", "NAME")))
	for _, c := range candidates {
		lines = append(lines, mono(fmt.Sprintf("%-8s %-9s %-32s %s",
			c.Symbol, c.ETPType, c.Category, truncate(c.Name, maxNameRunes))))
	}

	return lines
}

func (m Meta) appendTo(lines *[]Line) {
	add := func(k, v string) {
		if v != "" {
			*lines = append(*lines, mono(fmt.Sprintf("%-12s %s", k+":", v)))
		}
	}
	add("run_id", m.RunID)
	add("source_url", m.SourceURL)
	add("date_dir", m.DateDir)

	formats := make([]string, 0, len(m.Outputs))
	for f := range m.Outputs {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	for _, f := range formats {
		add("output_"+f, m.Outputs[f])
	}
}

// LinesPerPage is how many lines fit between the margins.
func LinesPerPage() int {
	return int((pageHeight - marginTop - marginBottom) / lineHeight)
}

// Paginate splits lines into pages.
func Paginate(lines []Line) [][]Line {
	per := LinesPerPage()
	var pages [][]Line
	for start := 0; start < len(lines); start += per {
		pages = append(pages, lines[start:min(start+per, len(lines))])
	}
	if len(pages) == 0 {
		pages = append(pages, nil)
	}
	return pages
}

type textFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type textBox struct {
	Value string     `json:"value"`
	Font  textFont   `json:"font"`
	Pos   [2]float64 `json:"pos"`
}

type pageContent struct {
	Text []textBox `json:"text"`
}

type page struct {
	Content pageContent `json:"content"`
}

type document struct {
	Paper string          `json:"paper"`
	Pages map[string]page `json:"pages"`
}

// layoutJSON builds the pdfcpu create document for the pages.
func layoutJSON(pages [][]Line) ([]byte, error) {
	doc := document{Paper: "Letter", Pages: make(map[string]page, len(pages))}

	for i, lines := range pages {
		var boxes []textBox
		for j, l := range lines {
			if strings.TrimSpace(l.Text) == "" {
				continue
			}
			boxes = append(boxes, textBox{
				Value: ascii(l.Text),
				Font:  textFont{Name: l.Font, Size: l.Size},
				Pos:   [2]float64{marginLeft, pageHeight - marginTop - float64(j)*lineHeight},
			})
		}
		// Page footer.
		boxes = append(boxes, textBox{
			Value: fmt.Sprintf("ETP Scan Report - Page %d of %d", i+1, len(pages)),
			Font:  textFont{Name: "Helvetica", Size: 7},
			Pos:   [2]float64{marginLeft, marginBottom / 2},
		})
		doc.Pages[strconv.Itoa(i+1)] = page{Content: pageContent{Text: boxes}}
	}

	return json.Marshal(doc)
}

// Render writes the PDF for meta and candidates to w.
func Render(w io.Writer, meta Meta, candidates []etp.Candidate) error {
	layout, err := layoutJSON(Paginate(Lines(meta, candidates)))
	if err != nil {
		return fmt.Errorf("failed to lay out report: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.Create(nil, bytes.NewReader(layout), w, conf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the report into dir and returns its path.
func WriteFile(dir string, meta Meta, candidates []etp.Candidate) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, meta, candidates); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// ascii replaces characters the standard PDF fonts cannot show.
func ascii(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || (r < 0x20 && r != '\t') {
			return '?'
		}
		return r
	}, s)
}
