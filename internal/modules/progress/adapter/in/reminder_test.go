package in

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafetalk/internal/modules/progress/dto"
	progressin "cafetalk/internal/modules/progress/port/in"
)

type statsStub struct {
	progressin.Usecase
	stats dto.StatsOutput
}

func (s statsStub) GetStats(context.Context) (dto.StatsOutput, error) {
	return s.stats, nil
}

func TestReminderCheck(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		stats  dto.StatsOutput
		wantOK bool
		want   string
	}{
		{name: "practised today", stats: dto.StatsOutput{ConversationsCompleted: 3, Streak: dto.StreakOutput{Current: 3, PracticedToday: true}}},
		{name: "at risk", stats: dto.StatsOutput{ConversationsCompleted: 4, Streak: dto.StreakOutput{Current: 4, AtRisk: true}}, wantOK: true, want: "Your 4-day streak ends at midnight. One conversation keeps it alive."},
		{name: "lapsed", stats: dto.StatsOutput{ConversationsCompleted: 9, Streak: dto.StreakOutput{Current: 2}}, wantOK: true, want: "The café misses you. Start a new streak with a quick conversation today."},
		{name: "new", wantOK: true, want: "Ready for your first café conversation?"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewReminder(time.UTC, 19, 0, statsStub{stats: tt.stats}, func(string) {}, nil)
			msg, ok, err := r.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestReminderRunNotifies(t *testing.T) {
	t.Parallel()
	var got []string
	r := NewReminder(time.UTC, 7, 5, statsStub{stats: dto.StatsOutput{Streak: dto.StreakOutput{Current: 2, AtRisk: true}}}, func(msg string) { got = append(got, msg) }, nil)
	assert.Equal(t, "07:05", r.at)

	r.run(context.Background())
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "2-day streak")
}

func TestReminderStartStop(t *testing.T) {
	t.Parallel()
	r := NewReminder(time.UTC, 23, 59, statsStub{}, func(string) {}, nil)
	require.NoError(t, r.Start(context.Background()))
	r.Stop()
}
