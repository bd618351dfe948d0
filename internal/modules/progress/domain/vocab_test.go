package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGrammarScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want GrammarScore
		ok   bool
	}{
		{"Excellent", GrammarExcellent, true},
		{"  good ", GrammarGood, true},
		{"NEEDS   WORK", GrammarNeedsWork, true},
		{"Excelente", GrammarExcellent, true},
		{"Regular", GrammarFair, true},
		{"necesita trabajo", GrammarNeedsWork, true},
		{"", "", false},
		{"Superb", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseGrammarScore(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestNormalizeKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "en", NormalizeLanguage(""))
	assert.Equal(t, "es", NormalizeLanguage(" ES "))
	assert.Equal(t, "pt", NormalizeLanguage("pt"))
	assert.Equal(t, ScenarioUnknown, NormalizeScenario("  "))
	assert.Equal(t, ScenarioHost, NormalizeScenario("Host_Only"))
	assert.Equal(t, ScenarioServer, NormalizeScenario("server"))
	assert.Equal(t, ScenarioCustomer, NormalizeScenario(" Customer "))
	assert.Equal(t, ScenarioHost, NormalizeScenario("HOST"))
	assert.Equal(t, ScenarioFullExperience, NormalizeScenario("full"))
	assert.Equal(t, "free_chat", NormalizeScenario("free_chat"))
	assert.Equal(t, "Full Experience", ScenarioName(ScenarioFullExperience))
	assert.Equal(t, "karaoke", ScenarioName("karaoke"))
}
