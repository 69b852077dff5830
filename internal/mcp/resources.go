// ABOUTME: MCP resource implementations for hydration and workout data.
// ABOUTME: Provides aurofit://water/today, aurofit://water/week, and aurofit://workouts/recent.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriWaterToday     = "aurofit://water/today"
	uriWaterWeek      = "aurofit://water/week"
	uriWorkoutsRecent = "aurofit://workouts/recent"
)

func (s *Server) registerResources() {
	// Today's intake events with goal progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriWaterToday,
		Name:        "Today's Water Intake",
		Description: "Water logged today with progress toward the daily goal",
		MIMEType:    "application/json",
	}, s.handleWaterTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriWaterWeek,
		Name:        "Weekly Water History",
		Description: "Daily water totals for the last 7 days with weekly stats",
		MIMEType:    "application/json",
	}, s.handleWaterWeekResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriWorkoutsRecent,
		Name:        "Recent Workouts",
		Description: "Last 10 workouts plus rolling counts",
		MIMEType:    "application/json",
	}, s.handleWorkoutsRecentResource)
}

// Resource handlers

func (s *Server) handleWaterTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.app.Water.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"date":     s.app.Water.Ledger.Today(),
		"total_ml": snap.CurrentIntake,
		"goal":     snap.Goal,
		"progress": snap.Progress,
		"intakes":  s.app.Water.Ledger.TodayIntakes(ctx),
	}
	return jsonResource(uriWaterToday, result)
}

func (s *Server) handleWaterWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.app.Water.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"days":  snap.WeeklyHistory,
		"stats": snap.Stats,
	}
	return jsonResource(uriWaterWeek, result)
}

func (s *Server) handleWorkoutsRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	recent := s.app.Workouts.Sorted(ctx, "", 10)
	stats := s.app.Workouts.Stats(ctx)

	result := map[string]interface{}{
		"workouts":   recent,
		"this_week":  stats.ThisWeek,
		"this_month": stats.ThisMonth,
		"favorites":  len(s.app.Favorites.List(ctx)),
	}
	return jsonResource(uriWorkoutsRecent, result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
