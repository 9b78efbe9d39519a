package jobs

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	calls []time.Time
}

func (p *countingPruner) Prune(now time.Time) int {
	p.calls = append(p.calls, now)
	return 1
}

func TestInitCronJobsSchedulesPrune(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	require.NoError(t, InitCronJobs(c, &countingPruner{}))
	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Next.IsZero())
}

func TestInitCronJobsWithoutPruner(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	require.NoError(t, InitCronJobs(c, nil))
	assert.Empty(t, c.Entries())
}

func TestPruneTokens(t *testing.T) {
	p := &countingPruner{}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pruneTokens(p, now)
	assert.Equal(t, []time.Time{now}, p.calls)
}
