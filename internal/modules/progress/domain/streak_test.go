package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakConsecutiveDays(t *testing.T) {
	t.Parallel()
	var s Streak
	for day := 1; day <= 3; day++ {
		s.Record(at(day, 18, 0))
	}
	assert.Equal(t, 3, s.Current)
	assert.GreaterOrEqual(t, s.Longest, 3)
}

func TestStreakSkippedDayResets(t *testing.T) {
	t.Parallel()
	var s Streak
	s.Record(at(1, 18, 0))
	s.Record(at(2, 18, 0))
	s.Record(at(4, 18, 0))

	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 2, s.Longest)
	require.NotNil(t, s.LastPracticeDate)
	assert.True(t, s.LastPracticeDate.Equal(at(4, 18, 0)))
}

func TestStreakSameDayIsUnchanged(t *testing.T) {
	t.Parallel()
	var s Streak
	s.Record(at(1, 8, 0))
	s.Record(at(2, 8, 0))
	s.Record(at(2, 21, 0))

	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 2, s.Longest)
	assert.True(t, s.LastPracticeDate.Equal(at(2, 21, 0)))
}

func TestStreakMidnightCrossingContinues(t *testing.T) {
	t.Parallel()
	var s Streak
	s.Record(at(1, 23, 59))
	s.Record(at(2, 0, 1))
	assert.Equal(t, 2, s.Current)
}

func TestStreakUsesCalendarDaysAcrossDST(t *testing.T) {
	t.Parallel()
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 has 23 hours in New York.
	var s Streak
	s.Record(time.Date(2024, time.March, 10, 12, 0, 0, 0, ny))
	s.Record(time.Date(2024, time.March, 11, 0, 30, 0, 0, ny))
	assert.Equal(t, 2, s.Current)

	// 2024-11-03 has 25 hours.
	var fall Streak
	fall.Record(time.Date(2024, time.November, 2, 23, 50, 0, 0, ny))
	fall.Record(time.Date(2024, time.November, 3, 23, 50, 0, 0, ny))
	assert.Equal(t, 2, fall.Current)
}

func TestStreakComparesInNowLocation(t *testing.T) {
	t.Parallel()
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 20:00 UTC on the 1st is already the 2nd in Tokyo.
	last := time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC)
	s := Streak{Current: 4, Longest: 4, LastPracticeDate: &last}
	s.Record(time.Date(2026, time.March, 2, 22, 0, 0, 0, tokyo))

	assert.Equal(t, 4, s.Current)
}

func TestStreakRiskAndBroken(t *testing.T) {
	t.Parallel()
	var s Streak
	assert.False(t, s.AtRisk(at(1, 9, 0)))
	assert.False(t, s.Broken(at(1, 9, 0)))

	s.Record(at(1, 9, 0))
	assert.True(t, s.PracticedToday(at(1, 22, 0)))
	assert.False(t, s.AtRisk(at(1, 22, 0)))
	assert.True(t, s.AtRisk(at(2, 22, 0)))
	assert.False(t, s.Broken(at(2, 22, 0)))
	assert.True(t, s.Broken(at(3, 8, 0)))
}
