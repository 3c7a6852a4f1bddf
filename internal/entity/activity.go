package entity

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for activity rows ("2025-04-17").
const DateLayout = "2006-01-02"

// Day is a calendar day persisted in a Postgres date column. Drivers hand
// date values back as time.Time (or as text, depending on the protocol), so
// Day normalizes whatever it scans to the DateLayout string. Streak checks
// compare Days by equality; ISO dates also order correctly as plain strings.
type Day string

// NewDay truncates t to its UTC calendar day.
func NewDay(t time.Time) Day {
	return Day(t.UTC().Format(DateLayout))
}

func (d Day) String() string { return string(d) }

func (d *Day) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Day(v.Format(DateLayout))
	case string:
		*d = truncateDay(v)
	case []byte:
		*d = truncateDay(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Day", value)
	}
	return nil
}

func (d Day) Value() (driver.Value, error) {
	return string(d), nil
}

// truncateDay drops any time-of-day suffix a driver may append, keeping the
// leading "2006-01-02" part.
func truncateDay(s string) Day {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return Day(s)
}

// ActivityKind is the closed set of wellness activities tracked per day.
type ActivityKind string

const (
	ActivityAffirmation ActivityKind = "affirmation"
	ActivityJournaling  ActivityKind = "journaling"
	ActivityMindfulness ActivityKind = "mindfulness"
	ActivityGoalSetting ActivityKind = "goalsetting"
	ActivityVisionBoard ActivityKind = "visionboard"
)

// Valid reports whether k is a known activity kind.
func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityAffirmation, ActivityJournaling, ActivityMindfulness, ActivityGoalSetting, ActivityVisionBoard:
		return true
	}
	return false
}

// FlagColumn returns the daily_activities column holding the completion flag
// for this kind.
func (k ActivityKind) FlagColumn() string {
	switch k {
	case ActivityAffirmation:
		return "affirmation_completed"
	case ActivityJournaling:
		return "journaling"
	case ActivityMindfulness:
		return "mindfulness"
	case ActivityGoalSetting:
		return "goalsetting"
	case ActivityVisionBoard:
		return "visionboard"
	}
	return ""
}

// DailyActivity tracks which wellness activities a user completed on one
// calendar day. At most one row per (user, date); flags only ever flip to
// true and usage time only accumulates.
type DailyActivity struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_user_date,priority:1" json:"user_id"`
	Date                 Day       `gorm:"type:date;not null;uniqueIndex:idx_activity_user_date,priority:2" json:"date"`
	AffirmationCompleted bool      `gorm:"default:false" json:"affirmation_completed"`
	Journaling           bool      `gorm:"default:false" json:"journaling"`
	Mindfulness          bool      `gorm:"default:false" json:"mindfulness"`
	GoalSetting          bool      `gorm:"column:goalsetting;default:false" json:"goalsetting"`
	VisionBoard          bool      `gorm:"column:visionboard;default:false" json:"visionboard"`
	AppUsageTime         int       `gorm:"not null;default:0" json:"app_usage_time"` // seconds
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FlagSet reports whether the completion flag for kind is set on this row.
func (a *DailyActivity) FlagSet(kind ActivityKind) bool {
	switch kind {
	case ActivityAffirmation:
		return a.AffirmationCompleted
	case ActivityJournaling:
		return a.Journaling
	case ActivityMindfulness:
		return a.Mindfulness
	case ActivityGoalSetting:
		return a.GoalSetting
	case ActivityVisionBoard:
		return a.VisionBoard
	}
	return false
}
