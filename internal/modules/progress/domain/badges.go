package domain

type BadgeDefinition struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Earned      func(ProgressState) bool
}

func conversationsAtLeast(n int) func(ProgressState) bool {
	return func(s ProgressState) bool { return s.ConversationsCompleted >= n }
}

func scenarioAtLeast(id string, n int) func(ProgressState) bool {
	return func(s ProgressState) bool { return s.Scenarios[id] >= n }
}

func longestStreakAtLeast(n int) func(ProgressState) bool {
	return func(s ProgressState) bool { return s.Streak.Longest >= n }
}

func excellentAtLeast(n int) func(ProgressState) bool {
	return func(s ProgressState) bool {
		count := 0
		for _, score := range s.GrammarScores {
			if score == GrammarExcellent {
				count++
			}
		}
		return count >= n
	}
}

func xpAtLeast(n int) func(ProgressState) bool {
	return func(s ProgressState) bool { return s.TotalXP >= n }
}

var badgeCatalog = []BadgeDefinition{
	{ID: "first_conversation", Name: "First Words", Icon: "☕", Description: "Complete your first conversation", Earned: conversationsAtLeast(1)},
	{ID: "conversations_10", Name: "Regular", Icon: "🥐", Description: "Complete 10 conversations", Earned: conversationsAtLeast(10)},
	{ID: "conversations_50", Name: "Café Veteran", Icon: "🏅", Description: "Complete 50 conversations", Earned: conversationsAtLeast(50)},
	{ID: "conversations_100", Name: "Centurion", Icon: "🏆", Description: "Complete 100 conversations", Earned: conversationsAtLeast(100)},
	{ID: "first_spanish", Name: "¡Hola!", Icon: "🇪🇸", Description: "Practice in Spanish for the first time", Earned: func(s ProgressState) bool {
		return s.LanguagesPracticed[LanguageSpanish] >= 1
	}},
	{ID: "bilingual", Name: "Bilingual", Icon: "🌎", Description: "Practice in both English and Spanish", Earned: func(s ProgressState) bool {
		return s.LanguagesPracticed[LanguageEnglish] >= 1 && s.LanguagesPracticed[LanguageSpanish] >= 1
	}},
	{ID: "server_pro", Name: "Server Pro", Icon: "🍽️", Description: "Play the server 5 times", Earned: scenarioAtLeast(ScenarioServer, 5)},
	{ID: "customer_pro", Name: "Valued Customer", Icon: "🧾", Description: "Play the customer 5 times", Earned: scenarioAtLeast(ScenarioCustomer, 5)},
	{ID: "host_pro", Name: "Gracious Host", Icon: "🚪", Description: "Play the host 5 times", Earned: scenarioAtLeast(ScenarioHost, 5)},
	{ID: "full_experience", Name: "Full Experience", Icon: "🎭", Description: "Complete the full café experience 3 times", Earned: scenarioAtLeast(ScenarioFullExperience, 3)},
	{ID: "streak_3", Name: "On a Roll", Icon: "🔥", Description: "Practice 3 days in a row", Earned: longestStreakAtLeast(3)},
	{ID: "streak_7", Name: "Week Warrior", Icon: "📅", Description: "Practice 7 days in a row", Earned: longestStreakAtLeast(7)},
	{ID: "streak_30", Name: "Monthly Master", Icon: "🗓️", Description: "Practice 30 days in a row", Earned: longestStreakAtLeast(30)},
	{ID: "grammar_star", Name: "Grammar Star", Icon: "⭐", Description: "Earn your first Excellent grammar score", Earned: excellentAtLeast(1)},
	{ID: "grammar_master", Name: "Grammar Master", Icon: "🌟", Description: "Earn 10 Excellent grammar scores", Earned: excellentAtLeast(10)},
	{ID: "xp_100", Name: "100 Club", Icon: "💯", Description: "Reach 100 XP", Earned: xpAtLeast(100)},
	{ID: "xp_1000", Name: "XP Legend", Icon: "💎", Description: "Reach 1000 XP", Earned: xpAtLeast(1000)},
	{ID: "level_5", Name: "Rising Star", Icon: "🚀", Description: "Reach level 5", Earned: func(s ProgressState) bool { return s.Level >= 5 }},
}

// Badges returns the catalog in display order.
func Badges() []BadgeDefinition {
	return append([]BadgeDefinition(nil), badgeCatalog...)
}

func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, b := range badgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}

// CheckBadges appends every newly satisfied badge to s.Badges and returns
// the new ones. Earned badges are never re-evaluated or removed.
func CheckBadges(s *ProgressState) []BadgeDefinition {
	var unlocked []BadgeDefinition
	for _, b := range badgeCatalog {
		if s.HasBadge(b.ID) || !b.Earned(*s) {
			continue
		}
		s.Badges = append(s.Badges, b.ID)
		unlocked = append(unlocked, b)
	}
	return unlocked
}
