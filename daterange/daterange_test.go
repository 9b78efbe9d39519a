package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) Range {
	return New(date(start), date(end))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"disjoint", rng("2024-01-01", "2024-01-03"), rng("2024-01-10", "2024-01-12"), false},
		{"touching", rng("2024-01-01", "2024-01-05"), rng("2024-01-05", "2024-01-10"), false},
		{"partial", rng("2024-03-01", "2024-03-03"), rng("2024-03-02", "2024-03-04"), true},
		{"contained", rng("2024-03-01", "2024-03-10"), rng("2024-03-02", "2024-03-04"), true},
		{"identical", rng("2024-03-01", "2024-03-03"), rng("2024-03-01", "2024-03-03"), true},
		{"one day shared", rng("2024-03-01", "2024-03-03"), rng("2024-03-02", "2024-03-03"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// symmetric
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a))
		})
	}
}

func TestOverlapsSymmetryExhaustive(t *testing.T) {
	base := date("2024-06-01")
	var ranges []Range
	for s := 0; s < 6; s++ {
		for e := s; e < 7; e++ {
			ranges = append(ranges, New(base.AddDate(0, 0, s), base.AddDate(0, 0, e)))
		}
	}
	for _, a := range ranges {
		for _, b := range ranges {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "%s vs %s", a, b)
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, rng("2024-01-01", "2024-01-02").Valid())
	assert.False(t, rng("2024-01-02", "2024-01-02").Valid())
	assert.False(t, rng("2024-01-03", "2024-01-02").Valid())
}

func TestNewDropsTimeOfDay(t *testing.T) {
	start := time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	r := New(start, end)
	assert.Equal(t, date("2024-05-01"), r.Start)
	assert.Equal(t, date("2024-05-02"), r.End)
	assert.Equal(t, 1, r.Nights())
}

func TestStartedAndEnded(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	future := rng("2024-05-11", "2024-05-13")
	assert.False(t, future.Started(now))
	assert.False(t, future.Ended(now))

	today := rng("2024-05-10", "2024-05-12")
	assert.True(t, today.Started(now))
	assert.False(t, today.Ended(now))

	endsToday := rng("2024-05-08", "2024-05-10")
	assert.True(t, endsToday.Started(now))
	assert.True(t, endsToday.Ended(now))
}

func TestDayUsesUTCDate(t *testing.T) {
	eastern := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 1, 1, 21, 0, 0, 0, eastern)
	assert.Equal(t, date("2024-01-02"), Day(now))

	r := rng("2024-01-02", "2024-01-04")
	assert.True(t, r.Started(now))
	assert.False(t, r.Ended(now))
	assert.True(t, rng("2023-12-30", "2024-01-02").Ended(now))
}

func TestCalendarDayKeepsLocalDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	scanned := time.Date(2024, 3, 1, 0, 0, 0, 0, tokyo)
	assert.Equal(t, date("2024-03-01"), CalendarDay(scanned))
	assert.Equal(t, date("2024-02-29"), Day(scanned))
}

func TestContains(t *testing.T) {
	r := rng("2024-05-01", "2024-05-03")
	assert.True(t, r.Contains(date("2024-05-01")))
	assert.True(t, r.Contains(date("2024-05-02")))
	assert.False(t, r.Contains(date("2024-05-03")))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date("2024-02-29"), d)

	d, err = ParseDate("2024-02-29T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, date("2024-02-29"), d)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	r, err := Parse("2024-03-01", "2024-03-04T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, rng("2024-03-01", "2024-03-04"), r)
	assert.Equal(t, 3, r.Nights())
	assert.Equal(t, "[2024-03-01,2024-03-04)", r.String())

	_, err = Parse("2024-03-01", "soon")
	assert.Error(t, err)
}
