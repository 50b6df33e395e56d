package services

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func sampleGameRows() []GamePerformanceRow {
	return []GamePerformanceRow{
		{GameID: 1, Title: "Bravo", Rating: floatPtr(7.5), Tags: []string{"a", "b", "c"}, TotalRevenue: 100},
		{GameID: 2, Title: "Alpha", Rating: nil, Tags: []string{"a"}, TotalRevenue: 300},
		{GameID: 3, Title: "Delta", Rating: floatPtr(9.1), Tags: nil, TotalRevenue: 200},
	}
}

func TestSortRowsDoesNotMutateInput(t *testing.T) {
	rows := sampleGameRows()
	SortRows(rows, "title", SortAsc)
	if rows[0].GameID != 1 || rows[1].GameID != 2 || rows[2].GameID != 3 {
		t.Error("input slice should keep its original order")
	}
}

func TestSortRowsByString(t *testing.T) {
	sorted := SortRows(sampleGameRows(), "title", SortAsc)
	if sorted[0].Title != "Alpha" || sorted[2].Title != "Delta" {
		t.Errorf("ascending title sort wrong: %v %v %v", sorted[0].Title, sorted[1].Title, sorted[2].Title)
	}

	sorted = SortRows(sampleGameRows(), "title", SortDesc)
	if sorted[0].Title != "Delta" || sorted[2].Title != "Alpha" {
		t.Errorf("descending title sort wrong: %v %v %v", sorted[0].Title, sorted[1].Title, sorted[2].Title)
	}
}

func TestSortRowsNilsLastBothDirections(t *testing.T) {
	asc := SortRows(sampleGameRows(), "rating", SortAsc)
	if asc[0].GameID != 1 || asc[1].GameID != 3 {
		t.Errorf("ascending rating order wrong: %d %d %d", asc[0].GameID, asc[1].GameID, asc[2].GameID)
	}
	if asc[2].Rating != nil {
		t.Error("row without a rating should sort last ascending")
	}

	desc := SortRows(sampleGameRows(), "rating", SortDesc)
	if desc[0].GameID != 3 || desc[1].GameID != 1 {
		t.Errorf("descending rating order wrong: %d %d %d", desc[0].GameID, desc[1].GameID, desc[2].GameID)
	}
	if desc[2].Rating != nil {
		t.Error("row without a rating should sort last descending too")
	}
}

func TestSortRowsArrayFieldsCompareByLength(t *testing.T) {
	sorted := SortRows(sampleGameRows(), "tags", SortDesc)
	if sorted[0].GameID != 1 {
		t.Errorf("longest tag list should come first descending, got game %d", sorted[0].GameID)
	}
	if sorted[2].GameID != 3 {
		t.Errorf("empty tag list should come last descending, got game %d", sorted[2].GameID)
	}
}

func TestSortRowsTiesBreakByID(t *testing.T) {
	rows := []DeveloperSuccessRow{
		{DeveloperID: 5, Name: "Same", TotalRevenue: 10},
		{DeveloperID: 2, Name: "Same", TotalRevenue: 10},
		{DeveloperID: 9, Name: "Same", TotalRevenue: 10},
	}
	for _, dir := range []SortDirection{SortAsc, SortDesc} {
		sorted := SortRows(rows, "total_revenue", dir)
		if sorted[0].DeveloperID != 2 || sorted[1].DeveloperID != 5 || sorted[2].DeveloperID != 9 {
			t.Errorf("equal values should order by ID (%s): %d %d %d",
				dir, sorted[0].DeveloperID, sorted[1].DeveloperID, sorted[2].DeveloperID)
		}
	}
}

func TestSortRowsUnknownOrEmptyFieldKeepsOrder(t *testing.T) {
	sorted := SortRows(sampleGameRows(), "", SortDesc)
	if sorted[0].GameID != 1 || sorted[2].GameID != 3 {
		t.Error("empty sort field should return original order")
	}
}

func TestParseSortDirection(t *testing.T) {
	if ParseSortDirection("desc") != SortDesc {
		t.Error("desc should parse as descending")
	}
	if ParseSortDirection("DESC") != SortDesc {
		t.Error("direction should parse case-insensitively")
	}
	if ParseSortDirection("") != SortAsc {
		t.Error("missing direction should default to ascending")
	}
	if ParseSortDirection("sideways") != SortAsc {
		t.Error("unknown direction should default to ascending")
	}
}

func TestSortRowsPlayerNumericField(t *testing.T) {
	rows := []PlayerEngagementRow{
		{PlayerID: 1, RetentionScore: 40},
		{PlayerID: 2, RetentionScore: 95},
		{PlayerID: 3, RetentionScore: 0},
	}
	sorted := SortRows(rows, "retention_score", SortDesc)
	if sorted[0].PlayerID != 2 || sorted[2].PlayerID != 3 {
		t.Errorf("retention sort wrong: %d %d %d", sorted[0].PlayerID, sorted[1].PlayerID, sorted[2].PlayerID)
	}
}

func TestSortRowsNilPointerStringField(t *testing.T) {
	rows := []DeveloperSuccessRow{
		{DeveloperID: 1, BestSellingGame: strPtr("Zed")},
		{DeveloperID: 2, BestSellingGame: nil},
		{DeveloperID: 3, BestSellingGame: strPtr("Apex")},
	}
	sorted := SortRows(rows, "best_selling_game", SortAsc)
	if sorted[0].DeveloperID != 3 || sorted[1].DeveloperID != 1 || sorted[2].DeveloperID != 2 {
		t.Errorf("nil best seller should sort last: %d %d %d",
			sorted[0].DeveloperID, sorted[1].DeveloperID, sorted[2].DeveloperID)
	}
}
