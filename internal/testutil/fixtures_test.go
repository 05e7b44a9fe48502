package testutil

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/etpscan/internal/model"
)

func TestSampleCandidatesCoverEveryCategory(t *testing.T) {
	cands := SampleCandidates(time.Now())

	counts := model.CountByCategory(cands)
	for _, c := range model.AllCategories() {
		assert.Equal(t, 1, counts[c], c)
	}
	assert.True(t, sort.SliceIsSorted(cands, func(i, j int) bool { return cands[i].Symbol < cands[j].Symbol }))
}

func TestSeedRun(t *testing.T) {
	db := SetupTestDB(t)
	ts := time.Date(2025, 3, 14, 17, 2, 0, 0, time.UTC)

	run := db.SeedRun(ts, SampleCandidates(ts))
	require.NotEmpty(t, run.ID)

	got, err := db.Storage.GetCandidates(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, got, len(model.AllCategories()))
}
