package domain

import "time"

type AchievementDefinition struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Reward      int
	Hidden      bool
	Trigger     func(s ProgressState, d SessionDetails, now time.Time) bool
}

const perfectRun = 5

var achievementCatalog = []AchievementDefinition{
	{
		ID: "night_owl", Name: "Night Owl", Icon: "🦉", Reward: 25, Hidden: true,
		Description: "Practice between midnight and 6 AM",
		Trigger: func(_ ProgressState, _ SessionDetails, now time.Time) bool {
			return now.Hour() < 6
		},
	},
	{
		ID: "early_bird", Name: "Early Bird", Icon: "🐦", Reward: 25, Hidden: true,
		Description: "Practice between 5 and 7 AM",
		Trigger: func(_ ProgressState, _ SessionDetails, now time.Time) bool {
			h := now.Hour()
			return h >= 5 && h < 7
		},
	},
	{
		ID: "marathon", Name: "Marathon Session", Icon: "🏃", Reward: 50, Hidden: true,
		Description: "Practice for 30 minutes in one session",
		Trigger: func(_ ProgressState, d SessionDetails, _ time.Time) bool {
			return d.Duration >= 1800
		},
	},
	{
		ID: "perfect_score", Name: "Perfect Score", Icon: "💫", Reward: 100, Hidden: true,
		Description: "Score Excellent five sessions in a row",
		Trigger: func(s ProgressState, _ SessionDetails, _ time.Time) bool {
			if len(s.GrammarScores) < perfectRun {
				return false
			}
			for _, score := range s.GrammarScores[len(s.GrammarScores)-perfectRun:] {
				if score != GrammarExcellent {
					return false
				}
			}
			return true
		},
	},
}

func Achievements() []AchievementDefinition {
	return append([]AchievementDefinition(nil), achievementCatalog...)
}

func AchievementByID(id string) (AchievementDefinition, bool) {
	for _, a := range achievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return AchievementDefinition{}, false
}

// DetectAchievements unlocks each triggered achievement at most once and
// credits its reward to TotalXP. Level is left for the caller to re-derive.
func DetectAchievements(s *ProgressState, d SessionDetails, now time.Time) []AchievementDefinition {
	var unlocked []AchievementDefinition
	for _, a := range achievementCatalog {
		if s.HasAchievement(a.ID) || !a.Trigger(*s, d, now) {
			continue
		}
		s.Achievements = append(s.Achievements, a.ID)
		s.TotalXP += a.Reward
		unlocked = append(unlocked, a)
	}
	return unlocked
}
