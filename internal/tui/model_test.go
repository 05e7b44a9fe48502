package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/etpscan/internal/common"
	"github.com/Veraticus/etpscan/internal/model"
	"github.com/Veraticus/etpscan/internal/testutil"
	"github.com/Veraticus/etpscan/internal/tui/themes"
)

func testCandidates() []model.Candidate {
	return []model.Candidate{
		{Symbol: "GLD", Name: "SPDR Gold Trust", Category: model.CategoryCommodityPhysicalTrust, ETPType: model.InstrumentTrust,
			Reasons: []string{"trust_word", "commodity:gold"}},
		{Symbol: "IBIT", Name: "iShares Bitcoin Trust ETF", Category: model.CategoryCryptoTrust, ETPType: model.InstrumentTrust,
			Reasons: []string{"trust_word", "crypto:bitcoin"}},
		{Symbol: "SQQQ", Name: "ProShares UltraPro Short QQQ", Category: model.CategoryLeveragedIndexInverse, ETPType: model.InstrumentFund},
		{Symbol: "TQQQ", Name: "ProShares UltraPro QQQ", Category: model.CategoryLeveragedIndexLong, ETPType: model.InstrumentFund},
	}
}

func testRun() *model.ScanRun {
	return &model.ScanRun{ID: "run-1", DateDir: "2025-03-14", TotalRows: 12000, Matched: 4}
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := newModel(defaultConfig(), nil)
	return update(t, m, runLoadedMsg{run: testRun(), candidates: testCandidates()})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runeMsg(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func visibleSymbols(m Model) []string {
	var out []string
	for _, c := range m.Visible() {
		out = append(out, c.Symbol)
	}
	return out
}

func TestModelLoadsRun(t *testing.T) {
	m := loaded(t)

	assert.False(t, m.loading)
	assert.Equal(t, []string{"GLD", "IBIT", "SQQQ", "TQQQ"}, visibleSymbols(m))
	assert.Equal(t, []model.Category{
		model.CategoryLeveragedIndexLong,
		model.CategoryLeveragedIndexInverse,
		model.CategoryCommodityPhysicalTrust,
		model.CategoryCryptoTrust,
	}, m.categories)

	view := m.View()
	assert.Contains(t, view, "ETP candidates for 2025-03-14")
	assert.Contains(t, view, "4 of 4 shown")
	assert.Contains(t, view, "Category: all")
}

func TestModelLoadError(t *testing.T) {
	m := newModel(defaultConfig(), nil)
	next, cmd := m.Update(runLoadedMsg{err: common.ErrNotFound})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	got := next.(Model)
	require.ErrorIs(t, got.Err(), common.ErrNotFound)
	assert.Contains(t, got.View(), "Error")
}

func TestModelCategoryCycling(t *testing.T) {
	m := loaded(t)

	m = update(t, m, keyMsg(tea.KeyTab))
	cat, ok := m.Category()
	require.True(t, ok)
	assert.Equal(t, model.CategoryLeveragedIndexLong, cat)
	assert.Equal(t, []string{"TQQQ"}, visibleSymbols(m))

	m = update(t, m, keyMsg(tea.KeyShiftTab))
	_, ok = m.Category()
	assert.False(t, ok)

	m = update(t, m, keyMsg(tea.KeyShiftTab))
	cat, _ = m.Category()
	assert.Equal(t, model.CategoryCryptoTrust, cat)
	assert.Equal(t, []string{"IBIT"}, visibleSymbols(m))

	m = update(t, m, runeMsg("x"))
	assert.Len(t, m.Visible(), 4)
}

func TestModelSearch(t *testing.T) {
	m := loaded(t)

	m = update(t, m, runeMsg("/"))
	require.True(t, m.searching)

	for _, r := range "gold" {
		m = update(t, m, runeMsg(string(r)))
	}
	assert.Equal(t, []string{"GLD"}, visibleSymbols(m))

	m = update(t, m, keyMsg(tea.KeyEnter))
	assert.False(t, m.searching)
	assert.Equal(t, []string{"GLD"}, visibleSymbols(m), "enter keeps the query")
	assert.Contains(t, m.View(), "Search: gold")

	m = update(t, m, runeMsg("/"))
	m = update(t, m, keyMsg(tea.KeyEsc))
	assert.False(t, m.searching)
	assert.Len(t, m.Visible(), 4, "esc drops the query")
}

func TestModelSearchMatchesSymbol(t *testing.T) {
	m := loaded(t)
	m = update(t, m, runeMsg("/"))
	m = update(t, m, runeMsg("s"))
	m = update(t, m, runeMsg("q"))
	assert.Equal(t, []string{"SQQQ"}, visibleSymbols(m))
	assert.True(t, m.searching, "q is typed into the search box while searching")
}

func TestModelDetail(t *testing.T) {
	m := loaded(t)

	m = update(t, m, keyMsg(tea.KeyDown))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "IBIT", sel.Symbol)

	m = update(t, m, keyMsg(tea.KeyEnter))
	require.True(t, m.detail)
	view := m.View()
	assert.Contains(t, view, "iShares Bitcoin Trust ETF")
	assert.Contains(t, view, "crypto:bitcoin")

	m = update(t, m, keyMsg(tea.KeyEsc))
	assert.False(t, m.detail)
	assert.False(t, m.quitting)
}

func TestModelQuit(t *testing.T) {
	m := loaded(t)
	next, cmd := m.Update(runeMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModelResize(t *testing.T) {
	m := loaded(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	assert.Equal(t, 160, m.width)

	cols := columns(160)
	assert.Equal(t, 160-56, cols[3].Width)
	assert.Equal(t, 20, columns(10)[3].Width)
}

type fakeStore struct {
	err        error
	runs       map[string]*model.ScanRun
	candidates []model.Candidate
	latest     bool
}

func (f *fakeStore) GetRun(_ context.Context, id string) (*model.ScanRun, error) {
	if r, ok := f.runs[id]; ok {
		return r, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) LatestRun(_ context.Context) (*model.ScanRun, error) {
	f.latest = true
	return f.runs["run-1"], nil
}

func (f *fakeStore) GetCandidates(_ context.Context, _ string) ([]model.Candidate, error) {
	return f.candidates, f.err
}

func TestLoadRun(t *testing.T) {
	store := &fakeStore{runs: map[string]*model.ScanRun{"run-1": testRun()}, candidates: testCandidates()}

	msg := loadRun(context.Background(), store, "")().(runLoadedMsg)
	require.NoError(t, msg.err)
	assert.True(t, store.latest)
	assert.Equal(t, "run-1", msg.run.ID)
	assert.Len(t, msg.candidates, 4)

	msg = loadRun(context.Background(), store, "missing")().(runLoadedMsg)
	require.ErrorIs(t, msg.err, common.ErrNotFound)

	store.err = errors.New("disk I/O error")
	msg = loadRun(context.Background(), store, "run-1")().(runLoadedMsg)
	require.Error(t, msg.err)
	assert.Contains(t, msg.err.Error(), "failed to load candidates")
}

func TestLoadRunFromSQLite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	older := time.Date(2025, 3, 13, 17, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	first := db.SeedRun(older, testutil.SampleCandidates(older)[:2])
	second := db.SeedRun(newer, testutil.SampleCandidates(newer))

	msg := loadRun(context.Background(), db.Storage, "")().(runLoadedMsg)
	require.NoError(t, msg.err)
	assert.Equal(t, second.ID, msg.run.ID)
	assert.Len(t, msg.candidates, 8)

	msg = loadRun(context.Background(), db.Storage, first.ID)().(runLoadedMsg)
	require.NoError(t, msg.err)
	assert.Len(t, msg.candidates, 2)

	m := update(t, newModel(defaultConfig(), nil), msg)
	assert.Equal(t, []string{"BITO", "GLD"}, visibleSymbols(m))
}

func TestBrowseRequiresStore(t *testing.T) {
	require.Error(t, Browse(context.Background(), nil, ""))
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Primary, themes.ByName("catppuccin").Primary)
	assert.Equal(t, themes.Default.Primary, themes.ByName("unknown").Primary)
}
