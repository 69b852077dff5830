// ABOUTME: Tests for Markdown report rendering.
// ABOUTME: Checks section headers, daily water rows, workouts, and the since filter.
package storage

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExportMarkdown(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store)

	data, err := GetAllData(context.Background(), store, exportTime)
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	md := ExportMarkdown(data, nil)

	for _, want := range []string{
		"# Aurofit Export - 2026-03-14",
		"- Daily goal: 2500 ml",
		"## Water",
		"| 2026-03-13 | 300 ml | 1 |",
		"| 2026-03-14 | 750 ml | 2 |",
		"## Workouts",
		"| Push Up | 3 x 12 | 15 min |",
		"## Favorites",
		"- Push Up (chest)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportMarkdownSince(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store)

	data, err := GetAllData(context.Background(), store, exportTime)
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	since := exportTime.Add(-12 * time.Hour)
	md := ExportMarkdown(data, &since)

	if strings.Contains(md, "2026-03-13") {
		t.Errorf("Expected yesterday to be filtered out:\n%s", md)
	}
	if !strings.Contains(md, "| 2026-03-14 | 750 ml | 2 |") {
		t.Errorf("Expected today's row:\n%s", md)
	}
}

func TestExportMarkdownEmpty(t *testing.T) {
	store := setupTestStore(t)

	data, err := GetAllData(context.Background(), store, exportTime)
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	md := ExportMarkdown(data, nil)

	if !strings.Contains(md, "- Reminders: off") {
		t.Errorf("Expected default goal section:\n%s", md)
	}
	if strings.Contains(md, "## Water") || strings.Contains(md, "## Workouts") {
		t.Errorf("Expected no data sections for empty store:\n%s", md)
	}
}
