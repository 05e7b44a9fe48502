package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/etpscan/internal/model"
)

var chicago = time.FixedZone("CDT", -5*60*60)

func candidates() []model.Candidate {
	ts := time.Date(2025, 3, 14, 17, 2, 0, 0, chicago)
	return []model.Candidate{
		{
			Symbol: "TQQQ", Name: "ProShares UltraPro QQQ", ETPType: model.InstrumentFund,
			Category: model.CategoryLeveragedIndexLong, Reasons: []string{"fund_flag_set", "brand_ultrapro_implies_3x"}, Timestamp: ts,
		},
		{
			Symbol: "GLD", Name: "SPDR Gold Trust, \"Shares\"", ETPType: model.InstrumentTrust,
			Category: model.CategoryCommodityPhysicalTrust, Reasons: []string{"type_trust_with_commodity"}, Timestamp: ts,
		},
	}
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVEncoder{}.Encode(&buf, candidates()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{
		"TQQQ", "ProShares UltraPro QQQ", "Fund", "leveraged_index_long",
		"fund_flag_set;brand_ultrapro_implies_3x", "2025-03-14T17:02:00-05:00",
	}, records[1])
	assert.Equal(t, "SPDR Gold Trust, \"Shares\"", records[2][1])
}

func TestJSONLEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONLEncoder{}.Encode(&buf, candidates()))

	scanner := bufio.NewScanner(&buf)
	var got []model.Candidate
	for scanner.Scan() {
		var c model.Candidate
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &c))
		got = append(got, c)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "GLD", got[1].Symbol)
	assert.Equal(t, model.CategoryCommodityPhysicalTrust, got[1].Category)
	assert.True(t, got[0].Timestamp.Equal(candidates()[0].Timestamp))
}

func TestDocumentFormats(t *testing.T) {
	generated := time.Date(2025, 3, 14, 17, 2, 0, 0, time.UTC)

	var jsonBuf bytes.Buffer
	require.NoError(t, JSONEncoder{GeneratedAt: generated}.Encode(&jsonBuf, candidates()))
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	assert.InDelta(t, 2, fromJSON["count"], 0)
	assert.Equal(t, map[string]any{"leveraged_index_long": float64(1), "commodity_physical_trust": float64(1)}, fromJSON["categories"])

	var yamlBuf bytes.Buffer
	require.NoError(t, YAMLEncoder{GeneratedAt: generated}.Encode(&yamlBuf, candidates()))
	var fromYAML struct {
		Candidates []struct {
			Symbol  string   `yaml:"symbol"`
			Reasons []string `yaml:"reasons"`
		} `yaml:"candidates"`
		Count int `yaml:"count"`
	}
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, 2, fromYAML.Count)
	assert.Equal(t, "TQQQ", fromYAML.Candidates[0].Symbol)
	assert.Equal(t, []string{"fund_flag_set", "brand_ultrapro_implies_3x"}, fromYAML.Candidates[0].Reasons)
}

func TestEmptyDocumentHasEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONEncoder{}.Encode(&buf, nil))
	assert.Contains(t, buf.String(), `"candidates": []`)
}

func TestEncoderFor(t *testing.T) {
	for _, format := range []string{"csv", "jsonl", "json", "yaml", "yml"} {
		enc, err := EncoderFor(format, time.Time{})
		require.NoError(t, err, format)
		assert.NotEmpty(t, enc.Extension())
	}

	_, err := EncoderFor("xml", time.Time{})
	require.Error(t, err)
}

func TestWriteAllAndMirrorLatest(t *testing.T) {
	out := t.TempDir()
	dateDir := filepath.Join(out, "2025-03-14")

	paths, err := WriteAll(dateDir, []string{"csv", "jsonl"}, time.Now(), candidates())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dateDir, "etp_candidates.csv"), paths["csv"])
	assert.Equal(t, filepath.Join(dateDir, "etp_candidates.jsonl"), paths["jsonl"])

	copied, err := MirrorLatest(out, []string{paths["jsonl"], paths["csv"]})
	require.NoError(t, err)
	require.Len(t, copied, 2)
	assert.Equal(t, filepath.Join(out, LatestDir, "etp_candidates.csv"), copied[0])

	original, err := os.ReadFile(paths["csv"])
	require.NoError(t, err)
	mirrored, err := os.ReadFile(copied[0])
	require.NoError(t, err)
	assert.Equal(t, original, mirrored)

	entries, err := os.ReadDir(filepath.Join(out, LatestDir))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"))
	}
}

func TestWriteAllRejectsUnknownFormat(t *testing.T) {
	_, err := WriteAll(t.TempDir(), []string{"csv", "parquet"}, time.Now(), candidates())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet")
}
