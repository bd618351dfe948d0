package dto

import "time"

type RecordInput struct {
	Scenario     string
	Language     string
	Exchanges    int
	GrammarScore string
	Duration     int // seconds
}

type RecordOutput struct {
	XPEarned        int
	AchievementXP   int
	TotalXP         int
	Level           int
	PreviousLevel   int
	LeveledUp       bool
	NewBadges       []BadgeOutput
	NewAchievements []AchievementOutput
	Streak          StreakOutput
}

type StreakOutput struct {
	Current          int
	Longest          int
	LastPracticeDate *time.Time
	PracticedToday   bool
	AtRisk           bool
}

type StatsOutput struct {
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
	Streak                 StreakOutput
	BadgesEarned           int
	BadgesTotal            int
	AchievementsEarned     int
	AchievementsTotal      int
	LanguagesPracticed     map[string]int
	Scenarios              map[string]int
	StartDate              time.Time
}

type BadgeOutput struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Earned      bool
}

type AchievementOutput struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Reward      int
	Hidden      bool
	Earned      bool
}

type LevelUpOutput struct {
	OldLevel int
	NewLevel int
	TotalXP  int
}

type ResetInput struct {
	Confirmed bool
}

type ExportOutput struct {
	FileName string
	Payload  []byte
}

type ImportOutput struct {
	OK     bool
	Reason string
}

type HistoryInput struct {
	Scenario string
	Language string
	Limit    int
}

type SessionOutput struct {
	Seq          int
	ID           string
	Timestamp    time.Time
	Scenario     string
	ScenarioName string
	Language     string
	Exchanges    int
	GrammarScore string
	Duration     int
	XP           int
}

type EventKind string

const (
	EventProgress EventKind = "progress"
	EventLevelUp  EventKind = "level_up"
)

// ProgressEvent is what observers receive from the hub. LevelUp is set only
// for EventLevelUp.
type ProgressEvent struct {
	Kind    EventKind
	Stats   StatsOutput
	LevelUp LevelUpOutput
}
