package domain

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	BothEqually = "Both equally"
	NoneYet     = "none yet"
)

// Stats is a read-only projection of ProgressState. It is never persisted.
type Stats struct {
	TotalXP                int
	Level                  int
	XPForCurrentLevel      int
	XPForNextLevel         int
	XPToNextLevel          int
	LevelProgress          float64
	ConversationsCompleted int
	WordsSpoken            int
	DaysActive             int
	FavoriteLanguage       string
	FavoriteScenario       string
	Streak                 Streak
	BadgesEarned           int
	BadgesTotal            int
	AchievementsEarned     int
	AchievementsTotal      int
	LanguagesPracticed     map[string]int
	Scenarios              map[string]int
	StartDate              time.Time
	AsOf                   time.Time
}

// ComputeStats projects s as seen at now; calendar days are taken in now's location.
func ComputeStats(s ProgressState, now time.Time) Stats {
	c := s.Clone()
	next := XPForLevel(c.Level + 1)
	return Stats{
		TotalXP:                c.TotalXP,
		Level:                  c.Level,
		XPForCurrentLevel:      XPForLevel(c.Level),
		XPForNextLevel:         next,
		XPToNextLevel:          max(0, next-c.TotalXP),
		LevelProgress:          LevelProgress(c.TotalXP),
		ConversationsCompleted: c.ConversationsCompleted,
		WordsSpoken:            c.WordsSpoken,
		DaysActive:             daysActive(c.Sessions, now.Location()),
		FavoriteLanguage:       favoriteLanguage(c.LanguagesPracticed),
		FavoriteScenario:       favoriteScenario(c.Scenarios),
		Streak:                 c.Streak,
		BadgesEarned:           len(c.Badges),
		BadgesTotal:            len(badgeCatalog),
		AchievementsEarned:     len(c.Achievements),
		AchievementsTotal:      len(achievementCatalog),
		LanguagesPracticed:     c.LanguagesPracticed,
		Scenarios:              c.Scenarios,
		StartDate:              c.StartDate,
		AsOf:                   now,
	}
}

func daysActive(sessions []SessionRecord, loc *time.Location) int {
	days := make(map[civilDate]struct{}, len(sessions))
	for _, rec := range sessions {
		days[dateOf(rec.Timestamp.In(loc))] = struct{}{}
	}
	return len(days)
}

func favoriteLanguage(counts map[string]int) string {
	en, es := counts[LanguageEnglish], counts[LanguageSpanish]
	switch {
	case en > es:
		return LanguageName(LanguageEnglish)
	case es > en:
		return LanguageName(LanguageSpanish)
	default:
		return BothEqually
	}
}

func favoriteScenario(counts map[string]int) string {
	best, bestCount := "", 0
	for _, id := range scenarioOrder(counts) {
		if n := counts[id]; n > bestCount {
			best, bestCount = id, n
		}
	}
	if best == "" {
		return NoneYet
	}
	return ScenarioName(best)
}

// LanguageName renders a language code in English, e.g. "es" -> "Spanish".
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
