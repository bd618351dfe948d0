package domain

import (
	"fmt"
	"time"
)

type SessionRecord struct {
	ID           string       `json:"id,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	Scenario     string       `json:"scenario"`
	Language     string       `json:"language"`
	Exchanges    int          `json:"exchanges"`
	GrammarScore GrammarScore `json:"grammarScore,omitempty"`
	Duration     int          `json:"duration"`
	XP           int          `json:"xp"`
}

// ProgressState is the single persisted aggregate.
type ProgressState struct {
	TotalXP                int             `json:"totalXP"`
	Level                  int             `json:"level"`
	ConversationsCompleted int             `json:"conversationsCompleted"`
	WordsSpoken            int             `json:"wordsSpoken"`
	LanguagesPracticed     map[string]int  `json:"languagesPracticed"`
	Scenarios              map[string]int  `json:"scenarios"`
	Streak                 Streak          `json:"streak"`
	Badges                 []string        `json:"badges"`
	Achievements           []string        `json:"achievements"`
	Sessions               []SessionRecord `json:"sessions"`
	GrammarScores          []GrammarScore  `json:"grammarScores"`
	StartDate              time.Time       `json:"startDate"`
}

func NewState(now time.Time) ProgressState {
	s := ProgressState{
		Level:         1,
		Badges:        []string{},
		Achievements:  []string{},
		Sessions:      []SessionRecord{},
		GrammarScores: []GrammarScore{},
		StartDate:     now,
	}
	s.fillDefaults()
	return s
}

// fillDefaults seeds the fixed language and scenario keys and replaces nil
// collections so that encoded state never carries null arrays.
func (s *ProgressState) fillDefaults() {
	if s.LanguagesPracticed == nil {
		s.LanguagesPracticed = map[string]int{}
	}
	for _, code := range []string{LanguageEnglish, LanguageSpanish} {
		if _, ok := s.LanguagesPracticed[code]; !ok {
			s.LanguagesPracticed[code] = 0
		}
	}
	if s.Scenarios == nil {
		s.Scenarios = map[string]int{}
	}
	for _, id := range KnownScenarios() {
		if _, ok := s.Scenarios[id]; !ok {
			s.Scenarios[id] = 0
		}
	}
	if s.Badges == nil {
		s.Badges = []string{}
	}
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	if s.Sessions == nil {
		s.Sessions = []SessionRecord{}
	}
	if s.GrammarScores == nil {
		s.GrammarScores = []GrammarScore{}
	}
}

func (s ProgressState) Clone() ProgressState {
	out := s
	out.LanguagesPracticed = make(map[string]int, len(s.LanguagesPracticed))
	for k, v := range s.LanguagesPracticed {
		out.LanguagesPracticed[k] = v
	}
	out.Scenarios = make(map[string]int, len(s.Scenarios))
	for k, v := range s.Scenarios {
		out.Scenarios[k] = v
	}
	if s.Streak.LastPracticeDate != nil {
		last := *s.Streak.LastPracticeDate
		out.Streak.LastPracticeDate = &last
	}
	out.Badges = append([]string{}, s.Badges...)
	out.Achievements = append([]string{}, s.Achievements...)
	out.Sessions = append([]SessionRecord{}, s.Sessions...)
	out.GrammarScores = append([]GrammarScore{}, s.GrammarScores...)
	return out
}

func (s ProgressState) HasBadge(id string) bool {
	return contains(s.Badges, id)
}

func (s ProgressState) HasAchievement(id string) bool {
	return contains(s.Achievements, id)
}

// Validate reports the first invariant the state breaks.
func (s ProgressState) Validate() error {
	switch {
	case s.StartDate.IsZero():
		return fmt.Errorf("startDate is required")
	case s.TotalXP < 0, s.ConversationsCompleted < 0, s.WordsSpoken < 0:
		return fmt.Errorf("counters must be non-negative")
	case s.Level != LevelForXP(s.TotalXP):
		return fmt.Errorf("level %d does not match totalXP %d", s.Level, s.TotalXP)
	case len(s.Sessions) != s.ConversationsCompleted:
		return fmt.Errorf("%d sessions recorded for %d conversations", len(s.Sessions), s.ConversationsCompleted)
	case s.Streak.Current < 0 || s.Streak.Longest < s.Streak.Current:
		return fmt.Errorf("streak longest %d is below current %d", s.Streak.Longest, s.Streak.Current)
	case s.Streak.LastPracticeDate != nil && s.Streak.Current == 0:
		return fmt.Errorf("streak has a last practice date but no current days")
	}
	if dup, ok := duplicate(s.Badges); ok {
		return fmt.Errorf("badge %q listed twice", dup)
	}
	if dup, ok := duplicate(s.Achievements); ok {
		return fmt.Errorf("achievement %q listed twice", dup)
	}
	for code, n := range s.LanguagesPracticed {
		if n < 0 {
			return fmt.Errorf("language %q has negative count", code)
		}
	}
	for id, n := range s.Scenarios {
		if n < 0 {
			return fmt.Errorf("scenario %q has negative count", id)
		}
	}
	for _, score := range s.GrammarScores {
		if !score.Valid() {
			return fmt.Errorf("unknown grammar score %q", score)
		}
	}
	for i, rec := range s.Sessions {
		if rec.Exchanges < 0 || rec.Duration < 0 || rec.XP < 0 {
			return fmt.Errorf("session %d has negative values", i)
		}
	}
	return nil
}

func duplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
