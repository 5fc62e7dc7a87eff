package services

import (
	"errors"
	"testing"

	"signage_server/internal/db"
	"signage_server/internal/models"
)

// TestParseDatePatch tests the nil / empty / value patch semantics for
// schedule dates
func TestParseDatePatch(t *testing.T) {
	set, date, err := parseDatePatch(nil)
	if err != nil || set || date != nil {
		t.Errorf("Nil patch should leave the field untouched, got set=%v date=%v err=%v", set, date, err)
	}

	empty := ""
	set, date, err = parseDatePatch(&empty)
	if err != nil || !set || date != nil {
		t.Errorf("Empty patch should clear the field, got set=%v date=%v err=%v", set, date, err)
	}

	value := "2025-06-15"
	set, date, err = parseDatePatch(&value)
	if err != nil || !set || date == nil {
		t.Fatalf("Valid patch should set the field, got set=%v date=%v err=%v", set, date, err)
	}
	if date.Year() != 2025 || date.Month() != 6 || date.Day() != 15 {
		t.Errorf("Expected 2025-06-15, got %v", date)
	}

	bad := "15/06/2025"
	if _, _, err = parseDatePatch(&bad); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Malformed date should return ErrInvalidInput, got %v", err)
	}
}

// TestBannerLifecycle tests creation, reorder and deletion against a real
// database, verifying rank contiguity after each mutation
func TestBannerLifecycle(t *testing.T) {
	// Initialize database connection for testing
	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	defer db.Close()

	service := NewBannerService(NewPositionService())

	// Create three banners; each should land at the end of the rotation
	var created []*models.Banner
	for _, url := range []string{"https://example.com/a.png", "https://example.com/b.png", "https://example.com/c.png"} {
		banner, err := service.Create(&CreateBannerRequest{Type: "image", URL: url})
		if err != nil {
			t.Fatalf("Failed to create banner: %v", err)
		}
		created = append(created, banner)
	}

	// Clean up - delete the test banners
	defer func() {
		for _, banner := range created {
			if err := service.Delete(banner.ID); err != nil && !errors.Is(err, ErrNotFound) {
				t.Logf("Warning: Failed to clean up test banner %d: %v", banner.ID, err)
			}
		}
	}()

	if created[0].Duration != 10 {
		t.Errorf("Expected default duration 10, got %d", created[0].Duration)
	}
	if !created[0].Active {
		t.Error("Banner should default to active")
	}
	for i := 1; i < len(created); i++ {
		if created[i].Position != created[i-1].Position+1 {
			t.Errorf("Expected consecutive positions, got %d after %d", created[i].Position, created[i-1].Position)
		}
	}

	// Move the last banner onto the first one's rank
	first, last := created[0], created[2]
	newPos := first.Position
	moved, err := service.Update(last.ID, &UpdateBannerRequest{Position: &newPos})
	if err != nil {
		t.Fatalf("Failed to move banner: %v", err)
	}
	if moved.Position != newPos {
		t.Errorf("Expected position %d after move, got %d", newPos, moved.Position)
	}

	shifted, err := service.GetByID(first.ID)
	if err != nil {
		t.Fatalf("Failed to reload shifted banner: %v", err)
	}
	if shifted.Position != first.Position+1 {
		t.Errorf("Displaced banner should move down by one, got %d", shifted.Position)
	}

	// Rejected move must leave everything untouched
	outOfRange := 100000
	if _, err := service.Update(last.ID, &UpdateBannerRequest{Position: &outOfRange}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Out-of-range position should return ErrInvalidInput, got %v", err)
	}

	// Deleting the middle banner closes its gap
	if err := service.Delete(created[1].ID); err != nil {
		t.Fatalf("Failed to delete banner: %v", err)
	}
	reloadedFirst, err := service.GetByID(first.ID)
	if err != nil {
		t.Fatalf("Failed to reload banner after delete: %v", err)
	}
	reloadedLast, err := service.GetByID(last.ID)
	if err != nil {
		t.Fatalf("Failed to reload banner after delete: %v", err)
	}
	if diff := reloadedFirst.Position - reloadedLast.Position; diff != 1 && diff != -1 {
		t.Errorf("Surviving banners should hold adjacent ranks, got %d and %d", reloadedLast.Position, reloadedFirst.Position)
	}

	// Mutations against a missing row fail inside the transaction
	title := "Ghost"
	if _, err := service.Update(999999999, &UpdateBannerRequest{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update of missing banner should return ErrNotFound, got %v", err)
	}
	if err := service.Delete(999999999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete of missing banner should return ErrNotFound, got %v", err)
	}
}

// TestBannerPartialUpdate tests that a patch only touches the fields it
// names
func TestBannerPartialUpdate(t *testing.T) {
	// Initialize database connection for testing
	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	defer db.Close()

	service := NewBannerService(NewPositionService())

	start := "2025-06-01"
	banner, err := service.Create(&CreateBannerRequest{
		Type:      "image",
		URL:       "https://example.com/patch.png",
		Title:     "Original Title",
		StartDate: &start,
	})
	if err != nil {
		t.Fatalf("Failed to create banner: %v", err)
	}
	defer func() {
		if err := service.Delete(banner.ID); err != nil {
			t.Logf("Warning: Failed to clean up test banner: %v", err)
		}
	}()

	// Patch the title only
	title := "Updated Title"
	updated, err := service.Update(banner.ID, &UpdateBannerRequest{Title: &title})
	if err != nil {
		t.Fatalf("Failed to update banner: %v", err)
	}
	if updated.Title != title {
		t.Errorf("Expected title %s, got %s", title, updated.Title)
	}
	if updated.URL != banner.URL {
		t.Errorf("URL should be untouched, got %s", updated.URL)
	}
	if updated.StartDate == nil {
		t.Error("Start date should be untouched by a title patch")
	}

	// An empty string clears the schedule bound
	cleared := ""
	updated, err = service.Update(banner.ID, &UpdateBannerRequest{StartDate: &cleared})
	if err != nil {
		t.Fatalf("Failed to clear start date: %v", err)
	}
	if updated.StartDate != nil {
		t.Errorf("Start date should be cleared, got %v", updated.StartDate)
	}
}
