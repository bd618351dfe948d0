package domain

import "math"

// SessionDetails is one completed practice session as reported by the caller.
// Zero values mean "no bonus".
type SessionDetails struct {
	Scenario     string
	Language     string
	Exchanges    int
	GrammarScore GrammarScore
	Duration     int // seconds
}

func (d SessionDetails) Normalize() SessionDetails {
	d.Scenario = NormalizeScenario(d.Scenario)
	d.Language = NormalizeLanguage(d.Language)
	if d.Exchanges < 0 {
		d.Exchanges = 0
	}
	if d.Duration < 0 {
		d.Duration = 0
	}
	if !d.GrammarScore.Valid() {
		d.GrammarScore = ""
	}
	return d
}

const (
	baseXP           = 10
	engagedBonus     = 10 // exchanges >= 5
	deepBonus        = 15 // exchanges >= 10
	excellentBonus   = 20
	goodBonus        = 10
	longSessionBonus = 25 // duration >= 300s

	WordsPerExchange = 10
)

func SessionXP(d SessionDetails) int {
	xp := baseXP
	if d.Exchanges >= 5 {
		xp += engagedBonus
	}
	if d.Exchanges >= 10 {
		xp += deepBonus
	}
	switch d.GrammarScore {
	case GrammarExcellent:
		xp += excellentBonus
	case GrammarGood:
		xp += goodBonus
	}
	if d.Duration >= 300 {
		xp += longSessionBonus
	}
	return xp
}

// LevelForXP is floor(sqrt(xp/10)) + 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return isqrt(xp/10) + 1
}

func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * (level - 1) * 10
}

// LevelProgress is the fraction of the way from the current level to the next.
func LevelProgress(xp int) float64 {
	level := LevelForXP(xp)
	lo, hi := XPForLevel(level), XPForLevel(level+1)
	frac := float64(xp-lo) / float64(hi-lo)
	return math.Max(0, math.Min(1, frac))
}

func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
