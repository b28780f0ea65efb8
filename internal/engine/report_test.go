package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	late := testutil.Expense(model.CategoryTravel, "40", "train")
	late.Date = "2024-02-10"
	early := testutil.Expense(model.CategoryFood, "12.5", "lunch")
	early.Date = "2024-01-05"
	mid := testutil.Expense(model.CategoryFood, "2.5", "tea")
	mid.Date = "2024-01-20"

	summary := Summarize([]model.Expense{late, early, mid}, now)

	assert.Equal(t, now, summary.GeneratedAt)
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, "55", summary.TotalAmount.String())
	assert.Equal(t, "2024-01-05", summary.DateRange.Start)
	assert.Equal(t, "2024-02-10", summary.DateRange.End)

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Food", summary.ByCategory[0].Category)
	assert.Equal(t, "15", summary.ByCategory[0].Amount.String())
	assert.Equal(t, 2, summary.ByCategory[0].Count)
	assert.Equal(t, "Travel", summary.ByCategory[1].Category)
}

func TestEngineSummary(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	eng, err := Open(context.Background(), testutil.NewMemoryStore(
		testutil.Expense(model.CategoryFood, "10", "a"),
		testutil.Expense(model.CategoryRecharge, "5.5", "b"),
	))
	require.NoError(t, err)

	summary := eng.Summary(now)
	assert.Equal(t, now, summary.GeneratedAt)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, "15.5", summary.TotalAmount.String())
	require.Len(t, summary.ByCategory, 2)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, time.Now())
	assert.Zero(t, summary.Records)
	assert.True(t, summary.TotalAmount.IsZero())
	assert.Empty(t, summary.DateRange.Start)
	assert.Empty(t, summary.ByCategory)
}
