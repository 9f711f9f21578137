package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskType distinguishes recurring habits from one-off items
type TaskType string

const (
	TypeSingle TaskType = "single"
	TypeHabit  TaskType = "habit"
)

// FrequencyUnit is the recurrence unit for habit reminders
type FrequencyUnit string

const (
	UnitMinute FrequencyUnit = "minute"
	UnitHour   FrequencyUnit = "hour"
	UnitDay    FrequencyUnit = "day"
	UnitWeek   FrequencyUnit = "week"
	UnitMonth  FrequencyUnit = "month"
	UnitYear   FrequencyUnit = "year"
)

// Duration returns the length of one unit. Months count as 30 days and
// years as 365, matching the web client whose backups we restore.
func (u FrequencyUnit) Duration() time.Duration {
	switch u {
	case UnitMinute:
		return time.Minute
	case UnitHour:
		return time.Hour
	case UnitDay:
		return 24 * time.Hour
	case UnitWeek:
		return 7 * 24 * time.Hour
	case UnitMonth:
		return 30 * 24 * time.Hour
	case UnitYear:
		return 365 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Units lists the selectable frequency units in display order
var Units = []FrequencyUnit{UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth, UnitYear}

// Frequency is a recurrence interval like "every 2 days"
type Frequency struct {
	Value int           `json:"value"`
	Unit  FrequencyUnit `json:"unit"`
}

// Interval returns the configured interval. A nil or zero-valued frequency
// falls back to once per day, the default the original client applied.
func (f *Frequency) Interval() time.Duration {
	value := 1
	unit := UnitDay
	if f != nil {
		if f.Value > 0 {
			value = f.Value
		}
		if f.Unit != "" {
			unit = f.Unit
		}
	}
	return time.Duration(value) * unit.Duration()
}

// ID is an opaque task/log identifier. Backups written by older clients
// may carry numeric ids, so decoding normalizes everything to a string
// and all lookups compare the string form.
type ID string

// NewID generates a fresh identifier
func NewID() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both string and numeric identifiers
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Task is a habit or single todo item. Field names mirror the JSON layout
// of the original web client so gist backups round-trip unchanged.
// Timestamps are epoch milliseconds.
type Task struct {
	ID                  ID         `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Type                TaskType   `json:"type"`
	Frequency           *Frequency `json:"frequency,omitempty"`
	NeedsTracking       bool       `json:"needsTracking"`
	IsCompleted         bool       `json:"isCompleted"`
	CreatedAt           int64      `json:"createdAt"`
	Color               string     `json:"color"`
	Icon                string     `json:"icon"`
	NotificationEnabled bool       `json:"notificationEnabled"`
	LastNotifiedAt      *int64     `json:"lastNotifiedAt,omitempty"`
}

// IsHabit returns true for recurring tasks
func (t *Task) IsHabit() bool {
	return t.Type == TypeHabit
}

// Now returns the current time in epoch milliseconds
func Now() int64 {
	return time.Now().UnixMilli()
}

// Icons is the selectable glyph set for task cards
var Icons = []string{"📝", "🏋️", "💊", "💧", "📚", "🧘", "🧹", "💻", "🎨", "🍳", "🏃", "💤"}

// Colors is the selectable card palette. The tokens are kept verbatim from
// the original client so imported backups keep their colors.
var Colors = []string{
	"bg-red-500",
	"bg-orange-500",
	"bg-amber-500",
	"bg-green-500",
	"bg-emerald-500",
	"bg-teal-500",
	"bg-cyan-500",
	"bg-blue-500",
	"bg-indigo-500",
	"bg-violet-500",
	"bg-purple-500",
	"bg-fuchsia-500",
	"bg-pink-500",
	"bg-rose-500",
}
