package realm

import (
	"fmt"

	"github.com/google/uuid"
)

// LogCapacity is how many entries the in-state log keeps.
const LogCapacity = 50

// Log categories.
const (
	CategoryDomestic   = "domestic"
	CategoryMilitary   = "military"
	CategoryDiplomatic = "diplomatic"
	CategoryTech       = "tech"
	CategoryImportant  = "important"
	CategoryBattle     = "battle"
)

// Log priorities.
const (
	PriorityLow      = "low"
	PriorityNormal   = "normal"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// LogEntry is one line of the nation's chronicle.
type LogEntry struct {
	ID       string `json:"id"`
	Day      int    `json:"day"`
	Time     string `json:"time"` // HH:MM within the day
	Category string `json:"category"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// AddLog prepends an entry and drops the oldest beyond LogCapacity.
func (s *State) AddLog(category, priority, message string) LogEntry {
	e := LogEntry{
		ID:       uuid.NewString(),
		Day:      s.DayNumber(),
		Time:     ClockTime(s.Day),
		Category: category,
		Priority: priority,
		Message:  message,
	}
	s.Log = append([]LogEntry{e}, s.Log...)
	if len(s.Log) > LogCapacity {
		s.Log = s.Log[:LogCapacity]
	}
	return e
}

// Logf is AddLog with normal priority and a format string.
func (s *State) Logf(category, format string, args ...any) LogEntry {
	return s.AddLog(category, PriorityNormal, fmt.Sprintf(format, args...))
}

// ClockTime renders the fractional part of a day as HH:MM.
func ClockTime(day float64) string {
	frac := day - float64(int(day))
	minutes := int(frac * 24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
