package service

import (
	"time"

	"cafetalk/internal/modules/progress/domain"
	"cafetalk/internal/modules/progress/dto"
)

func StatsOutput(st domain.Stats) dto.StatsOutput {
	return dto.StatsOutput{
		TotalXP:                st.TotalXP,
		Level:                  st.Level,
		XPForCurrentLevel:      st.XPForCurrentLevel,
		XPForNextLevel:         st.XPForNextLevel,
		XPToNextLevel:          st.XPToNextLevel,
		LevelProgress:          st.LevelProgress,
		ConversationsCompleted: st.ConversationsCompleted,
		WordsSpoken:            st.WordsSpoken,
		DaysActive:             st.DaysActive,
		FavoriteLanguage:       st.FavoriteLanguage,
		FavoriteScenario:       st.FavoriteScenario,
		Streak:                 StreakOutput(st.Streak, st.AsOf),
		BadgesEarned:           st.BadgesEarned,
		BadgesTotal:            st.BadgesTotal,
		AchievementsEarned:     st.AchievementsEarned,
		AchievementsTotal:      st.AchievementsTotal,
		LanguagesPracticed:     st.LanguagesPracticed,
		Scenarios:              st.Scenarios,
		StartDate:              st.StartDate,
	}
}

// StreakOutput describes s as seen at now.
func StreakOutput(s domain.Streak, now time.Time) dto.StreakOutput {
	out := dto.StreakOutput{
		Current:        s.Current,
		Longest:        s.Longest,
		PracticedToday: s.PracticedToday(now),
		AtRisk:         s.AtRisk(now),
	}
	if s.LastPracticeDate != nil {
		last := *s.LastPracticeDate
		out.LastPracticeDate = &last
	}
	return out
}

func LevelUpOutput(o domain.Outcome, totalXP int) dto.LevelUpOutput {
	return dto.LevelUpOutput{OldLevel: o.PreviousLevel, NewLevel: o.Level, TotalXP: totalXP}
}

func BadgeOutput(b domain.BadgeDefinition, earned bool) dto.BadgeOutput {
	return dto.BadgeOutput{ID: b.ID, Name: b.Name, Icon: b.Icon, Description: b.Description, Earned: earned}
}

// AchievementOutput masks hidden achievements until they are earned.
func AchievementOutput(a domain.AchievementDefinition, earned bool) dto.AchievementOutput {
	out := dto.AchievementOutput{
		ID:          a.ID,
		Name:        a.Name,
		Icon:        a.Icon,
		Description: a.Description,
		Reward:      a.Reward,
		Hidden:      a.Hidden,
		Earned:      earned,
	}
	if a.Hidden && !earned {
		out.Name = "???"
		out.Icon = "🔒"
		out.Description = "Hidden achievement"
	}
	return out
}

func SessionOutput(seq int, rec domain.SessionRecord) dto.SessionOutput {
	return dto.SessionOutput{
		Seq:          seq,
		ID:           rec.ID,
		Timestamp:    rec.Timestamp,
		Scenario:     rec.Scenario,
		ScenarioName: domain.ScenarioName(rec.Scenario),
		Language:     rec.Language,
		Exchanges:    rec.Exchanges,
		GrammarScore: string(rec.GrammarScore),
		Duration:     rec.Duration,
		XP:           rec.XP,
	}
}

// ExportFileName is the dated download name for a snapshot.
func ExportFileName(now time.Time, ext string) string {
	return "cafe-progress-" + now.Format("2006-01-02") + "." + ext
}
