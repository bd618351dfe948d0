package domain

import (
	"sort"
	"strings"
)

type GrammarScore string

const (
	GrammarExcellent GrammarScore = "Excellent"
	GrammarGood      GrammarScore = "Good"
	GrammarFair      GrammarScore = "Fair"
	GrammarNeedsWork GrammarScore = "Needs work"
)

func (g GrammarScore) Valid() bool {
	switch g {
	case GrammarExcellent, GrammarGood, GrammarFair, GrammarNeedsWork:
		return true
	}
	return false
}

// The coach prompt asks for Spanish labels when the session language is es.
var grammarLabels = map[string]GrammarScore{
	"excellent":        GrammarExcellent,
	"good":             GrammarGood,
	"fair":             GrammarFair,
	"needs work":       GrammarNeedsWork,
	"excelente":        GrammarExcellent,
	"bueno":            GrammarGood,
	"regular":          GrammarFair,
	"necesita trabajo": GrammarNeedsWork,
}

// ParseGrammarScore maps a coach label to its canonical score. An unknown or
// empty label reports false and is treated as "no score".
func ParseGrammarScore(label string) (GrammarScore, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	score, ok := grammarLabels[key]
	return score, ok
}

const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
)

func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return LanguageEnglish
	}
	return code
}

const (
	ScenarioServer         = "server_only"
	ScenarioCustomer       = "customer_only"
	ScenarioHost           = "host_only"
	ScenarioFullExperience = "full_experience"
	ScenarioUnknown        = "unknown"
)

func KnownScenarios() []string {
	return []string{ScenarioServer, ScenarioCustomer, ScenarioHost, ScenarioFullExperience}
}

var scenarioNames = map[string]string{
	ScenarioServer:         "Server",
	ScenarioCustomer:       "Customer",
	ScenarioHost:           "Host",
	ScenarioFullExperience: "Full Experience",
	"free_chat":            "Free Chat",
}

// Role names as the coach uses them map onto their scenario ids.
var scenarioAliases = map[string]string{
	"server":   ScenarioServer,
	"customer": ScenarioCustomer,
	"host":     ScenarioHost,
	"full":     ScenarioFullExperience,
}

func NormalizeScenario(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ScenarioUnknown
	}
	if canonical, ok := scenarioAliases[id]; ok {
		return canonical
	}
	return id
}

func ScenarioName(id string) string {
	if name, ok := scenarioNames[id]; ok {
		return name
	}
	return id
}

// scenarioOrder lists the known scenarios first, then any others by id.
func scenarioOrder(counts map[string]int) []string {
	order := KnownScenarios()
	var extra []string
	for id := range counts {
		if contains(order, id) {
			continue
		}
		extra = append(extra, id)
	}
	sort.Strings(extra)
	return append(order, extra...)
}
