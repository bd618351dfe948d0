// Package report formats a progress summary as markdown and renders it for
// the terminal with glamour.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"cafetalk/internal/modules/progress/dto"
)

type Input struct {
	Stats        dto.StatsOutput
	Badges       []dto.BadgeOutput
	Achievements []dto.AchievementOutput
	Recent       []dto.SessionOutput
}

func Markdown(in Input) string {
	s := in.Stats
	var b strings.Builder

	fmt.Fprintf(&b, "# ☕ Café progress\n\n")
	fmt.Fprintf(&b, "**Level %d** · %d XP · %d XP to level %d (%.0f%%)\n\n",
		s.Level, s.TotalXP, s.XPToNextLevel, s.Level+1, s.LevelProgress*100)

	b.WriteString("## Practice\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Conversations | %d |\n", s.ConversationsCompleted)
	fmt.Fprintf(&b, "| Words spoken | ~%d |\n", s.WordsSpoken)
	fmt.Fprintf(&b, "| Days active | %d |\n", s.DaysActive)
	fmt.Fprintf(&b, "| Streak | %d (best %d) |\n", s.Streak.Current, s.Streak.Longest)
	fmt.Fprintf(&b, "| Favourite language | %s |\n", s.FavoriteLanguage)
	fmt.Fprintf(&b, "| Favourite scenario | %s |\n", s.FavoriteScenario)
	if !s.StartDate.IsZero() {
		fmt.Fprintf(&b, "| Since | %s |\n", s.StartDate.Format("2006-01-02"))
	}
	b.WriteString("\n")
	if s.Streak.AtRisk {
		b.WriteString("> Your streak ends at midnight unless you practise today.\n\n")
	}

	if len(s.Scenarios) > 0 {
		b.WriteString("## Scenarios\n\n")
		for _, k := range sortedKeys(s.Scenarios) {
			fmt.Fprintf(&b, "- %s: %d\n", k, s.Scenarios[k])
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Badges (%d/%d)\n\n", s.BadgesEarned, s.BadgesTotal)
	for _, badge := range in.Badges {
		mark := "[ ]"
		if badge.Earned {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s **%s**: %s\n", mark, badge.Icon, badge.Name, badge.Description)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Achievements (%d/%d)\n\n", s.AchievementsEarned, s.AchievementsTotal)
	for _, a := range in.Achievements {
		fmt.Fprintf(&b, "- %s **%s** (+%d XP): %s\n", a.Icon, a.Name, a.Reward, a.Description)
	}

	if len(in.Recent) > 0 {
		b.WriteString("\n## Recent sessions\n\n")
		b.WriteString("| When | Scenario | Language | Exchanges | Grammar | XP |\n|---|---|---|---|---|---|\n")
		for _, r := range in.Recent {
			grammar := r.GrammarScore
			if grammar == "" {
				grammar = "-"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %d |\n",
				r.Timestamp.Format("2006-01-02 15:04"), r.ScenarioName, r.Language, r.Exchanges, grammar, r.XP)
		}
	}
	return b.String()
}

// Render styles markdown for a dark terminal. A width of 0 disables wrapping.
func Render(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("new renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
