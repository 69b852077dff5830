// ABOUTME: Tests for water intake and goal models.
// ABOUTME: Covers defaults, patch merging, clamping, and schema migration.
package models

import (
	"testing"
	"time"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestDefaultWaterGoal(t *testing.T) {
	g := DefaultWaterGoal()
	if g.DailyGoal != 2000 || g.GlassSize != 250 || g.ReminderEnabled || g.ReminderInterval != 60 {
		t.Errorf("DefaultWaterGoal() = %+v", g)
	}
	if g.SchemaVersion != GoalSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", g.SchemaVersion, GoalSchemaVersion)
	}
}

func TestNewWaterIntake(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 59, 0, 0, time.Local)
	in := NewWaterIntake(250, 250, now)

	if in.ID == "" {
		t.Error("expected ID to be set")
	}
	if in.Date != "2025-01-31" {
		t.Errorf("Date = %s, want 2025-01-31", in.Date)
	}
	if !in.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", in.Timestamp, now)
	}
}

func TestGoalPatchApply(t *testing.T) {
	base := DefaultWaterGoal()

	tests := []struct {
		name  string
		patch GoalPatch
		want  WaterGoal
	}{
		{
			name:  "empty patch keeps goal",
			patch: GoalPatch{},
			want:  base,
		},
		{
			name:  "daily goal only",
			patch: GoalPatch{DailyGoal: intPtr(3000)},
			want:  WaterGoal{GoalSchemaVersion, 3000, 250, false, 60},
		},
		{
			name:  "daily goal clamped high",
			patch: GoalPatch{DailyGoal: intPtr(9000)},
			want:  WaterGoal{GoalSchemaVersion, 5000, 250, false, 60},
		},
		{
			name:  "daily goal clamped low",
			patch: GoalPatch{DailyGoal: intPtr(100)},
			want:  WaterGoal{GoalSchemaVersion, 500, 250, false, 60},
		},
		{
			name:  "interval clamped",
			patch: GoalPatch{ReminderEnabled: boolPtr(true), ReminderInterval: intPtr(5)},
			want:  WaterGoal{GoalSchemaVersion, 2000, 250, true, 15},
		},
		{
			name:  "glass size snaps to nearest",
			patch: GoalPatch{GlassSize: intPtr(330)},
			want:  WaterGoal{GoalSchemaVersion, 2000, 300, false, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(base)
			if got != tt.want {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNearestGlassSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 200},
		{200, 200},
		{225, 200},
		{260, 250},
		{350, 300},
		{450, 400},
		{1000, 500},
	}
	for _, tt := range tests {
		if got := NearestGlassSize(tt.in); got != tt.want {
			t.Errorf("NearestGlassSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeGoalMergesOverDefaults(t *testing.T) {
	g, err := DecodeGoal([]byte(`{"dailyGoal": 2500}`))
	if err != nil {
		t.Fatalf("DecodeGoal failed: %v", err)
	}
	want := WaterGoal{GoalSchemaVersion, 2500, 250, false, 60}
	if g != want {
		t.Errorf("DecodeGoal() = %+v, want %+v", g, want)
	}
}

func TestDecodeGoalMigratesLegacyRecord(t *testing.T) {
	g, err := DecodeGoal([]byte(`{"dailyGoal": 12000, "glassSize": 330, "reminderInterval": 1}`))
	if err != nil {
		t.Fatalf("DecodeGoal failed: %v", err)
	}
	want := WaterGoal{GoalSchemaVersion, 5000, 300, false, 15}
	if g != want {
		t.Errorf("DecodeGoal() = %+v, want %+v", g, want)
	}
}

func TestDecodeGoalCurrentVersionUntouched(t *testing.T) {
	g, err := DecodeGoal([]byte(`{"schemaVersion": 1, "dailyGoal": 3000, "glassSize": 400, "reminderEnabled": true, "reminderInterval": 90}`))
	if err != nil {
		t.Fatalf("DecodeGoal failed: %v", err)
	}
	want := WaterGoal{GoalSchemaVersion, 3000, 400, true, 90}
	if g != want {
		t.Errorf("DecodeGoal() = %+v, want %+v", g, want)
	}
}

func TestDecodeGoalInvalidJSON(t *testing.T) {
	g, err := DecodeGoal([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if g != DefaultWaterGoal() {
		t.Errorf("expected defaults on error, got %+v", g)
	}
}
