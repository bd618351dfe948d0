package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafetalk/internal/modules/progress/dto"
)

func sample() Input {
	return Input{
		Stats: dto.StatsOutput{
			TotalXP:                80,
			Level:                  3,
			XPToNextLevel:          10,
			LevelProgress:          0.8,
			ConversationsCompleted: 1,
			WordsSpoken:            120,
			DaysActive:             1,
			FavoriteLanguage:       "Spanish",
			FavoriteScenario:       "Server",
			Streak:                 dto.StreakOutput{Current: 2, Longest: 5, AtRisk: true},
			Scenarios:              map[string]int{"server": 1, "host": 0},
			BadgesEarned:           1,
			BadgesTotal:            2,
			StartDate:              time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Badges: []dto.BadgeOutput{
			{Name: "First Words", Icon: "🗣️", Description: "Complete your first conversation", Earned: true},
			{Name: "Regular", Icon: "☕", Description: "Complete 10 conversations"},
		},
		Achievements: []dto.AchievementOutput{{Name: "???", Icon: "🔒", Description: "Hidden achievement", Reward: 25}},
		Recent: []dto.SessionOutput{{
			Timestamp: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC), ScenarioName: "Server",
			Language: "es", Exchanges: 12, GrammarScore: "excellent", XP: 80,
		}},
	}
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(sample())

	assert.Contains(t, md, "**Level 3** · 80 XP · 10 XP to level 4 (80%)")
	assert.Contains(t, md, "| Favourite language | Spanish |")
	assert.Contains(t, md, "| Since | 2026-03-01 |")
	assert.Contains(t, md, "streak ends at midnight")
	assert.Contains(t, md, "- [x] 🗣️ **First Words**")
	assert.Contains(t, md, "- [ ] ☕ **Regular**")
	assert.Contains(t, md, "**???** (+25 XP)")
	assert.Contains(t, md, "| 2026-03-01 14:00 | Server | es | 12 | excellent | 80 |")
	assert.Less(t, strings.Index(md, "- host: 0"), strings.Index(md, "- server: 1"))
}

func TestRenderProducesText(t *testing.T) {
	out, err := Render(Markdown(sample()), 80)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}
