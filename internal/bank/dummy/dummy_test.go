package dummy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

func TestFetchDataReportsFiveSteps(t *testing.T) {
	b := New()
	b.StepDelay = 0

	rec := &progress.Recorder{}
	require.NoError(t, b.FetchData(context.Background(), rec))

	assert.Equal(t, []string{
		"Progress step 1",
		"Progress step 2",
		"Progress step 3",
		"Progress step 4",
		"Progress step 5",
	}, rec.Started)
	for _, step := range rec.Finished {
		assert.NoError(t, step.Err)
	}
}

func TestFetchDataStopsOnCancel(t *testing.T) {
	b := New()
	b.StepDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &progress.Recorder{}
	require.ErrorIs(t, b.FetchData(ctx, rec), context.Canceled)
	assert.Len(t, rec.Started, 1)
}

func TestCannedData(t *testing.T) {
	b := New()

	txns := b.Transactions()
	require.Len(t, txns, 4)
	assert.False(t, txns[0].Completed)
	assert.True(t, txns[0].Date.Before(txns[3].Date))

	summary := b.Summary()
	assert.Equal(t, "123.45", summary.Pending.StringFixed(2))
	assert.Equal(t, "22.30", summary.Available.StringFixed(2))
}
