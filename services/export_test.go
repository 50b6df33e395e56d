package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func TestFlattenValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{true, "Yes"},
		{false, "No"},
		{42, "42"},
		{uint(7), "7"},
		{3.0, "3"},
		{3.14159, "3.14"},
		{[]string{"a", "b"}, "a, b"},
		{[]string{}, ""},
		{time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC), "2026-03-15"},
		{(*float64)(nil), ""},
		{floatPtr(0.5), "0.50"},
		{(*string)(nil), ""},
		{strPtr("hi"), "hi"},
		{map[string]int{"a": 1}, `{"a":1}`},
	}
	for _, c := range cases {
		if got := flattenValue(c.in); got != c.want {
			t.Errorf("flattenValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExportCSVShape(t *testing.T) {
	rows := []GamePerformanceRow{
		{GameID: 1, Title: "Quest, The", Genre: "RPG", Price: 59.99, Tags: []string{"rpg", "co-op"}, TotalRevenue: 120},
		{GameID: 2, Title: "Puzzler", Genre: "Puzzle", Price: 10},
	}
	data, err := ExportCSV(GamePerformanceRecords(rows))
	if err != nil {
		t.Fatalf("export should succeed: %v", err)
	}

	parsed, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output should be valid CSV: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("should have header plus 2 rows, got %d lines", len(parsed))
	}
	if parsed[0][0] != "game_id" || parsed[0][1] != "title" {
		t.Errorf("header wrong: %v", parsed[0][:2])
	}
	for i, line := range parsed[1:] {
		if len(line) != len(parsed[0]) {
			t.Errorf("row %d has %d fields, header has %d", i, len(line), len(parsed[0]))
		}
	}
	// Embedded comma survives the round trip.
	if parsed[1][1] != "Quest, The" {
		t.Errorf("title should round-trip intact, got %q", parsed[1][1])
	}
	if parsed[1][3] != "59.99" {
		t.Errorf("price should render with two decimals, got %q", parsed[1][3])
	}
	if parsed[1][7] != "rpg, co-op" {
		t.Errorf("tags should join on commas, got %q", parsed[1][7])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	data, err := ExportCSV(nil)
	if err != nil {
		t.Fatalf("empty export should succeed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("empty export should produce no bytes, got %q", data)
	}
}

func TestExportPDFProducesDocument(t *testing.T) {
	rows := make([]PlayerEngagementRow, 60)
	for i := range rows {
		rows[i] = PlayerEngagementRow{PlayerID: uint(i + 1), Username: "player", Country: "AU", RetentionScore: 50}
	}
	opts := PDFOptions{
		Title:       "Player Engagement Report",
		GeneratedAt: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		Summary:     []ExportField{{Key: "total_players", Value: len(rows)}},
	}
	data, err := ExportPDF(opts, PlayerEngagementRecords(rows))
	if err != nil {
		t.Fatalf("export should succeed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output should start with the PDF magic bytes")
	}
	// 60 rows forces at least a second page.
	if !bytes.Contains(data, []byte("/Count 2")) && !bytes.Contains(data, []byte("/Count 3")) {
		t.Error("a 60-row table should paginate onto a second page")
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	got := ExportFilename("game-performance-report", "csv", now, "", SortAsc)
	if got != "game-performance-report-2026-03-15.csv" {
		t.Errorf("unsorted filename wrong: %q", got)
	}

	got = ExportFilename("game-performance-report", "pdf", now, "total_revenue", SortDesc)
	if got != "game-performance-report-2026-03-15-sorted-total_revenue-desc.pdf" {
		t.Errorf("sorted filename wrong: %q", got)
	}
}

func TestHeaderLabel(t *testing.T) {
	cases := map[string]string{
		"total_revenue":    "Total Revenue",
		"game_id":          "Game Id",
		"retentionScore":   "Retention Score",
		"title":            "Title",
		"revenue_per_game": "Revenue Per Game",
	}
	for in, want := range cases {
		if got := headerLabel(in); got != want {
			t.Errorf("headerLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
