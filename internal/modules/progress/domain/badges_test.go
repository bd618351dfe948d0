package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeCatalogIDsAreUnique(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, b := range Badges() {
		require.False(t, seen[b.ID], "duplicate badge %s", b.ID)
		seen[b.ID] = true
		require.NotNil(t, b.Earned)
	}
	assert.Len(t, seen, 18)
}

func TestCheckBadgesIsIdempotent(t *testing.T) {
	t.Parallel()
	s := NewState(at(1, 9, 0))
	for day := 1; day <= 7; day++ {
		s.RecordSession(SessionDetails{Scenario: ScenarioServer, Language: "es", GrammarScore: GrammarExcellent}, "", at(day, 12, 0))
	}
	before := append([]string(nil), s.Badges...)

	again := CheckBadges(&s)
	assert.Empty(t, again)
	if diff := cmp.Diff(before, s.Badges); diff != "" {
		t.Fatalf("badges changed (-want +got):\n%s", diff)
	}
}

func TestCheckBadgesNeverRevokes(t *testing.T) {
	t.Parallel()
	s := NewState(at(1, 9, 0))
	s.Badges = []string{"conversations_100"}

	CheckBadges(&s)
	assert.Equal(t, []string{"conversations_100"}, s.Badges)
}

func TestCheckBadgesFollowsCatalogOrder(t *testing.T) {
	t.Parallel()
	s := NewState(at(1, 9, 0))
	s.ConversationsCompleted = 10
	s.LanguagesPracticed["en"] = 5
	s.LanguagesPracticed["es"] = 5
	s.Streak.Longest = 7
	s.TotalXP = 1000
	s.Level = LevelForXP(s.TotalXP)

	got := CheckBadges(&s)
	want := []string{
		"first_conversation", "conversations_10", "first_spanish", "bilingual",
		"streak_3", "streak_7", "xp_100", "xp_1000", "level_5",
	}
	assert.Equal(t, want, badgeIDs(got))
}
