package domain

import "time"

// Outcome describes what a single RecordSession call changed.
type Outcome struct {
	Session         SessionRecord
	XPEarned        int
	AchievementXP   int
	PreviousLevel   int
	Level           int
	NewBadges       []BadgeDefinition
	NewAchievements []AchievementDefinition
}

func (o Outcome) LeveledUp() bool {
	return o.Level > o.PreviousLevel
}

// RecordSession applies one completed session: counters and session XP,
// then the streak, then achievements, then a single level check, and
// finally badges so that they see the final XP and level of the call.
func (s *ProgressState) RecordSession(d SessionDetails, id string, now time.Time) Outcome {
	s.fillDefaults()
	d = d.Normalize()

	xp := SessionXP(d)
	rec := SessionRecord{
		ID:           id,
		Timestamp:    now,
		Scenario:     d.Scenario,
		Language:     d.Language,
		Exchanges:    d.Exchanges,
		GrammarScore: d.GrammarScore,
		Duration:     d.Duration,
		XP:           xp,
	}

	s.ConversationsCompleted++
	s.TotalXP += xp
	s.WordsSpoken += d.Exchanges * WordsPerExchange
	s.LanguagesPracticed[d.Language]++
	s.Scenarios[d.Scenario]++
	if d.GrammarScore != "" {
		s.GrammarScores = append(s.GrammarScores, d.GrammarScore)
	}
	s.Sessions = append(s.Sessions, rec)

	s.Streak.Record(now)

	xpBefore := s.TotalXP
	achievements := DetectAchievements(s, d, now)

	previous := s.Level
	if next := LevelForXP(s.TotalXP); next > s.Level {
		s.Level = next
	}

	return Outcome{
		Session:         rec,
		XPEarned:        xp,
		AchievementXP:   s.TotalXP - xpBefore,
		PreviousLevel:   previous,
		Level:           s.Level,
		NewBadges:       CheckBadges(s),
		NewAchievements: achievements,
	}
}
