package domain

import "time"

type Streak struct {
	Current          int        `json:"current"`
	Longest          int        `json:"longest"`
	LastPracticeDate *time.Time `json:"lastPracticeDate"`
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// daysBefore walks the calendar, not the clock, so DST days of 23 or 25
// hours still count as one day.
func daysBefore(t time.Time, n int) civilDate {
	y, m, d := t.Date()
	return dateOf(time.Date(y, m, d-n, 12, 0, 0, 0, t.Location()))
}

// Record advances the calendar-day state machine for a session at now.
func (s *Streak) Record(now time.Time) {
	switch {
	case s.LastPracticeDate == nil:
		s.Current = 1
		s.Longest = max(s.Longest, 1)
	default:
		last := dateOf(s.LastPracticeDate.In(now.Location()))
		switch last {
		case dateOf(now):
		case daysBefore(now, 1):
			s.Current++
			s.Longest = max(s.Longest, s.Current)
		default:
			s.Current = 1
			s.Longest = max(s.Longest, 1)
		}
	}
	at := now
	s.LastPracticeDate = &at
}

func (s Streak) PracticedToday(now time.Time) bool {
	return s.LastPracticeDate != nil && dateOf(s.LastPracticeDate.In(now.Location())) == dateOf(now)
}

// AtRisk reports a live streak that ends unless a session happens today.
func (s Streak) AtRisk(now time.Time) bool {
	return s.LastPracticeDate != nil && s.Current > 0 &&
		dateOf(s.LastPracticeDate.In(now.Location())) == daysBefore(now, 1)
}

// Broken reports a streak whose next session will reset it to 1.
func (s Streak) Broken(now time.Time) bool {
	return s.LastPracticeDate != nil && !s.PracticedToday(now) && !s.AtRisk(now)
}
