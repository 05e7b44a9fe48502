// Package output writes scan candidates to disk in the supported formats.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/etpscan/internal/model"
)

// BaseName is the file name stem shared by every format.
const BaseName = "etp_candidates"

// LatestDir is the directory that mirrors the most recent run.
const LatestDir = "latest"

// CSVHeader is the column order of the CSV output.
var CSVHeader = []string{"symbol", "name", "etp_type", "category", "reasons", "timestamp"}

// ReasonSeparator joins reasons in flat formats.
const ReasonSeparator = ";"

// Encoder serializes candidates in one format.
type Encoder interface {
	Extension() string
	Encode(w io.Writer, candidates []model.Candidate) error
}

// Document is the envelope used by the JSON and YAML formats.
type Document struct {
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	Categories  map[model.Category]int `json:"categories" yaml:"categories"`
	Candidates  []model.Candidate      `json:"candidates" yaml:"candidates"`
	Count       int                    `json:"count" yaml:"count"`
}

// NewDocument builds the envelope for candidates.
func NewDocument(generatedAt time.Time, candidates []model.Candidate) Document {
	if candidates == nil {
		candidates = []model.Candidate{}
	}
	return Document{
		GeneratedAt: generatedAt,
		Count:       len(candidates),
		Categories:  model.CountByCategory(candidates),
		Candidates:  candidates,
	}
}

// CSVEncoder writes a header row followed by one row per candidate.
type CSVEncoder struct{}

// Extension implements Encoder.
func (CSVEncoder) Extension() string { return "csv" }

// Encode implements Encoder.
func (CSVEncoder) Encode(w io.Writer, candidates []model.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, c := range candidates {
		record := []string{
			c.Symbol,
			c.Name,
			string(c.ETPType),
			string(c.Category),
			strings.Join(c.Reasons, ReasonSeparator),
			c.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONLEncoder writes one JSON object per line.
type JSONLEncoder struct{}

// Extension implements Encoder.
func (JSONLEncoder) Extension() string { return "jsonl" }

// Encode implements Encoder.
func (JSONLEncoder) Encode(w io.Writer, candidates []model.Candidate) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, c := range candidates {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

// JSONEncoder writes a single indented Document.
type JSONEncoder struct {
	GeneratedAt time.Time
}

// Extension implements Encoder.
func (JSONEncoder) Extension() string { return "json" }

// Encode implements Encoder.
func (e JSONEncoder) Encode(w io.Writer, candidates []model.Candidate) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(e.GeneratedAt, candidates))
}

// YAMLEncoder writes a single Document as YAML.
type YAMLEncoder struct {
	GeneratedAt time.Time
}

// Extension implements Encoder.
func (YAMLEncoder) Extension() string { return "yaml" }

// Encode implements Encoder.
func (e YAMLEncoder) Encode(w io.Writer, candidates []model.Candidate) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(e.GeneratedAt, candidates)); err != nil {
		return err
	}
	return enc.Close()
}

// EncoderFor returns the encoder for a format name.
func EncoderFor(format string, generatedAt time.Time) (Encoder, error) {
	switch format {
	case "csv":
		return CSVEncoder{}, nil
	case "jsonl":
		return JSONLEncoder{}, nil
	case "json":
		return JSONEncoder{GeneratedAt: generatedAt}, nil
	case "yaml", "yml":
		return YAMLEncoder{GeneratedAt: generatedAt}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile encodes candidates into dir/etp_candidates.<ext> and returns the path.
func WriteFile(dir string, enc Encoder, candidates []model.Candidate) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, BaseName+"."+enc.Extension())
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := enc.Encode(f, candidates); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode %s: %w", enc.Extension(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes every requested format into dir. The result maps format to path.
func WriteAll(dir string, formats []string, generatedAt time.Time, candidates []model.Candidate) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	for _, format := range formats {
		enc, err := EncoderFor(format, generatedAt)
		if err != nil {
			return nil, err
		}
		path, err := WriteFile(dir, enc, candidates)
		if err != nil {
			return nil, err
		}
		paths[format] = path
	}
	return paths, nil
}

// MirrorLatest copies files into outDir/latest, replacing older copies, and returns the new paths.
func MirrorLatest(outDir string, files []string) ([]string, error) {
	latest := filepath.Join(outDir, LatestDir)
	if err := os.MkdirAll(latest, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create latest directory: %w", err)
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	copied := make([]string, 0, len(sorted))
	for _, src := range sorted {
		dst := filepath.Join(latest, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	return os.Rename(tmp, dst)
}
