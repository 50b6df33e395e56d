package models

import (
	"testing"

	"gorm.io/datatypes"
)

func TestParseGameMetadata_Valid(t *testing.T) {
	raw := datatypes.JSON(`{"rating": 8.5, "rating_count": 120, "tags": ["coop", "open-world"], "screenshots": ["a.png"]}`)
	m := ParseGameMetadata(raw)
	if m == nil {
		t.Fatal("expected metadata, got nil")
	}
	if m.Rating == nil || *m.Rating != 8.5 {
		t.Errorf("rating = %v, want 8.5", m.Rating)
	}
	if len(m.Tags) != 2 {
		t.Errorf("tags = %v, want 2 entries", m.Tags)
	}
}

func TestParseGameMetadata_Empty(t *testing.T) {
	if m := ParseGameMetadata(nil); m != nil {
		t.Errorf("nil document should parse to nil, got %+v", m)
	}
}

func TestParseGameMetadata_Malformed(t *testing.T) {
	if m := ParseGameMetadata(datatypes.JSON(`{"tags": "not-an-array"}`)); m != nil {
		t.Errorf("malformed document should degrade to nil, got %+v", m)
	}
}

func TestParseGameMetadata_RatingOutOfRange(t *testing.T) {
	if m := ParseGameMetadata(datatypes.JSON(`{"rating": 42}`)); m != nil {
		t.Errorf("out-of-range rating should degrade to nil, got %+v", m)
	}
}

func TestParseGameMetadata_MissingRating(t *testing.T) {
	m := ParseGameMetadata(datatypes.JSON(`{"tags": ["indie"]}`))
	if m == nil {
		t.Fatal("expected metadata, got nil")
	}
	if m.Rating != nil {
		t.Errorf("absent rating should stay nil, got %v", *m.Rating)
	}
}

func TestParseDeveloperMetadata_Valid(t *testing.T) {
	raw := datatypes.JSON(`{"company_size": "11-50", "founded_year": 2012, "specialties": ["RPG"], "social_links": {"x": "https://x.com/dev"}}`)
	m := ParseDeveloperMetadata(raw)
	if m == nil {
		t.Fatal("expected metadata, got nil")
	}
	if m.FoundedYear != 2012 {
		t.Errorf("founded_year = %d, want 2012", m.FoundedYear)
	}
	if m.SocialLinks["x"] == "" {
		t.Error("social link lost in parse")
	}
}

func TestParseDeveloperMetadata_Malformed(t *testing.T) {
	if m := ParseDeveloperMetadata(datatypes.JSON(`[1,2,3]`)); m != nil {
		t.Errorf("malformed document should degrade to nil, got %+v", m)
	}
}

func TestParseProfileSettings(t *testing.T) {
	s := ParseProfileSettings(datatypes.JSON(`{"privacy": "friends", "theme": "dark", "notifications": {"email": true, "push": false}}`))
	if s == nil {
		t.Fatal("expected settings, got nil")
	}
	if s.Notifications == nil || !s.Notifications.Email || s.Notifications.Push {
		t.Errorf("notifications = %+v, want email on, push off", s.Notifications)
	}
}
