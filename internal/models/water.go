// ABOUTME: Water intake, goal, and history models for hydration tracking.
// ABOUTME: Holds goal defaults, clamping rules, and the goal schema migration.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used to partition intake events.
const DateLayout = "2006-01-02"

// Goal bounds and defaults.
const (
	MinDailyGoal = 500
	MaxDailyGoal = 5000

	MinReminderInterval = 15
	MaxReminderInterval = 480

	DefaultDailyGoal        = 2000
	DefaultGlassSize        = 250
	DefaultReminderInterval = 60

	// GoalSchemaVersion is the current on-disk version of WaterGoal.
	GoalSchemaVersion = 1
)

// GlassSizes lists the glass volumes (ml) a goal may be configured with.
var GlassSizes = []int{200, 250, 300, 400, 500}

// WaterIntake is a single logged amount of water.
type WaterIntake struct {
	ID        string    `json:"id" yaml:"id"`
	Date      string    `json:"date" yaml:"date"`
	Amount    int       `json:"amount" yaml:"amount"`
	GlassSize int       `json:"glassSize" yaml:"glass_size"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewWaterIntake creates an intake event stamped with the calendar day of now.
func NewWaterIntake(amount, glassSize int, now time.Time) WaterIntake {
	return WaterIntake{
		ID:        uuid.New().String(),
		Date:      now.Format(DateLayout),
		Amount:    amount,
		GlassSize: glassSize,
		Timestamp: now,
	}
}

// WaterGoal holds the user's hydration settings.
type WaterGoal struct {
	SchemaVersion    int  `json:"schemaVersion" yaml:"schema_version"`
	DailyGoal        int  `json:"dailyGoal" yaml:"daily_goal"`
	GlassSize        int  `json:"glassSize" yaml:"glass_size"`
	ReminderEnabled  bool `json:"reminderEnabled" yaml:"reminder_enabled"`
	ReminderInterval int  `json:"reminderInterval" yaml:"reminder_interval"`
}

// DefaultWaterGoal returns the goal used when nothing has been saved.
func DefaultWaterGoal() WaterGoal {
	return WaterGoal{
		SchemaVersion:    GoalSchemaVersion,
		DailyGoal:        DefaultDailyGoal,
		GlassSize:        DefaultGlassSize,
		ReminderEnabled:  false,
		ReminderInterval: DefaultReminderInterval,
	}
}

// GoalPatch carries a partial goal update. Nil fields are left unchanged.
type GoalPatch struct {
	DailyGoal        *int  `json:"dailyGoal,omitempty"`
	GlassSize        *int  `json:"glassSize,omitempty"`
	ReminderEnabled  *bool `json:"reminderEnabled,omitempty"`
	ReminderInterval *int  `json:"reminderInterval,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p GoalPatch) IsEmpty() bool {
	return p.DailyGoal == nil && p.GlassSize == nil && p.ReminderEnabled == nil && p.ReminderInterval == nil
}

// Apply merges the patch over g and returns the clamped result.
func (p GoalPatch) Apply(g WaterGoal) WaterGoal {
	if p.DailyGoal != nil {
		g.DailyGoal = *p.DailyGoal
	}
	if p.GlassSize != nil {
		g.GlassSize = *p.GlassSize
	}
	if p.ReminderEnabled != nil {
		g.ReminderEnabled = *p.ReminderEnabled
	}
	if p.ReminderInterval != nil {
		g.ReminderInterval = *p.ReminderInterval
	}
	return g.Clamped()
}

// Clamped returns a copy of g with every field forced into its valid range.
// Glass sizes outside GlassSizes snap to the nearest allowed size.
func (g WaterGoal) Clamped() WaterGoal {
	g.SchemaVersion = GoalSchemaVersion
	g.DailyGoal = clamp(g.DailyGoal, MinDailyGoal, MaxDailyGoal)
	g.ReminderInterval = clamp(g.ReminderInterval, MinReminderInterval, MaxReminderInterval)
	g.GlassSize = NearestGlassSize(g.GlassSize)
	return g
}

// IsValidGlassSize reports whether ml is one of GlassSizes.
func IsValidGlassSize(ml int) bool {
	for _, s := range GlassSizes {
		if s == ml {
			return true
		}
	}
	return false
}

// NearestGlassSize returns the allowed glass size closest to ml.
// Ties resolve to the smaller size.
func NearestGlassSize(ml int) int {
	best := GlassSizes[0]
	for _, s := range GlassSizes[1:] {
		if abs(s-ml) < abs(best-ml) {
			best = s
		}
	}
	return best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// WaterHistoryDay is the derived total for one calendar day.
type WaterHistoryDay struct {
	Date        string `json:"date" yaml:"date"`
	TotalIntake int    `json:"totalIntake" yaml:"total_intake"`
	Goal        int    `json:"goal" yaml:"goal"`
	IntakeCount int    `json:"intakeCount" yaml:"intake_count"`
}

// DecodeGoal parses a stored goal record, filling absent fields from the
// defaults and migrating older schema versions forward.
func DecodeGoal(data []byte) (WaterGoal, error) {
	g := DefaultWaterGoal()
	g.SchemaVersion = 0
	if err := json.Unmarshal(data, &g); err != nil {
		return DefaultWaterGoal(), err
	}
	return MigrateGoal(g), nil
}

// MigrateGoal upgrades g to GoalSchemaVersion.
func MigrateGoal(g WaterGoal) WaterGoal {
	if g.SchemaVersion < 1 {
		// v0 records were written without store-side validation.
		g = g.Clamped()
	}
	g.SchemaVersion = GoalSchemaVersion
	return g
}
