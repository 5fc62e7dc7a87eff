package models

import (
	"testing"
	"time"

	"signage_server/config"
)

// date builds a plain calendar day from a YYYY-MM-DD string
func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := config.ParseDate(value)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", value, err)
	}
	return &parsed
}

// TestResolveStatus tests the derived lifecycle status against a fixed day
func TestResolveStatus(t *testing.T) {
	today := *date(t, "2025-06-15")

	cases := []struct {
		name   string
		active bool
		start  *time.Time
		end    *time.Time
		want   BannerStatus
	}{
		{"inactive wins over live window", false, date(t, "2025-06-01"), date(t, "2025-06-30"), BannerStatusInactive},
		{"inactive with no window", false, nil, nil, BannerStatusInactive},
		{"no bounds is live", true, nil, nil, BannerStatusLive},
		{"inside window is live", true, date(t, "2025-06-01"), date(t, "2025-06-30"), BannerStatusLive},
		{"start today is live", true, date(t, "2025-06-15"), nil, BannerStatusLive},
		{"end today is live", true, nil, date(t, "2025-06-15"), BannerStatusLive},
		{"single day window on that day", true, date(t, "2025-06-15"), date(t, "2025-06-15"), BannerStatusLive},
		{"start tomorrow is scheduled", true, date(t, "2025-06-16"), nil, BannerStatusScheduled},
		{"future window is scheduled", true, date(t, "2025-07-01"), date(t, "2025-07-31"), BannerStatusScheduled},
		{"end yesterday is expired", true, nil, date(t, "2025-06-14"), BannerStatusExpired},
		{"past window is expired", true, date(t, "2025-05-01"), date(t, "2025-05-31"), BannerStatusExpired},
		{"future start beats past end", true, date(t, "2025-07-01"), date(t, "2025-05-31"), BannerStatusScheduled},
	}

	for _, tc := range cases {
		got := ResolveStatus(tc.active, tc.start, tc.end, today)
		if got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

// TestResolveStatusIgnoresTimeOfDay tests that a timestamp late in the day
// still counts as the same calendar date
func TestResolveStatusIgnoresTimeOfDay(t *testing.T) {
	endOfDay := time.Date(2025, 6, 15, 23, 59, 0, 0, config.GetLocation())
	end := date(t, "2025-06-15")

	if got := ResolveStatus(true, nil, end, endOfDay); got != BannerStatusLive {
		t.Errorf("Banner ending today should still be live at 23:59, got %s", got)
	}

	start := date(t, "2025-06-16")
	if got := ResolveStatus(true, start, nil, endOfDay); got != BannerStatusScheduled {
		t.Errorf("Banner starting tomorrow should be scheduled at 23:59, got %s", got)
	}
}

// TestResolveStatusUTCDecodedDates tests that schedule bounds decoded
// from a date column (midnight UTC) keep their calendar day even when the
// display clock runs in a zone behind UTC
func TestResolveStatusUTCDecodedDates(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}

	// Late evening of June 15 in New York; June 16 in UTC terms
	today := time.Date(2025, 6, 15, 22, 0, 0, 0, newYork)

	start := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if got := ResolveStatus(true, &start, nil, today); got != BannerStatusScheduled {
		t.Errorf("Banner starting tomorrow should be scheduled, got %s", got)
	}

	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := ResolveStatus(true, nil, &end, today); got != BannerStatusLive {
		t.Errorf("Banner ending today should still be live in the evening, got %s", got)
	}

	expired := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	if got := ResolveStatus(true, nil, &expired, today); got != BannerStatusExpired {
		t.Errorf("Banner ended yesterday should be expired, got %s", got)
	}

	b := &Banner{StartDate: &start}
	if b.InWindow(today) {
		t.Error("Banner starting tomorrow should not be in window")
	}
}

// TestResolveStatusIsPure tests that repeated calls give the same answer
func TestResolveStatusIsPure(t *testing.T) {
	today := *date(t, "2025-06-15")
	start := date(t, "2025-06-01")
	end := date(t, "2025-06-30")

	first := ResolveStatus(true, start, end, today)
	for i := 0; i < 100; i++ {
		if got := ResolveStatus(true, start, end, today); got != first {
			t.Fatalf("Status changed between calls: %s then %s", first, got)
		}
	}
}

// TestInWindow tests the schedule window check used by the display path
func TestInWindow(t *testing.T) {
	today := *date(t, "2025-06-15")

	b := &Banner{Active: false, StartDate: date(t, "2025-06-01"), EndDate: date(t, "2025-06-30")}
	if !b.InWindow(today) {
		t.Error("InWindow should not consult the active flag")
	}

	b = &Banner{StartDate: date(t, "2025-06-16")}
	if b.InWindow(today) {
		t.Error("Banner starting tomorrow should not be in window")
	}

	b = &Banner{EndDate: date(t, "2025-06-14")}
	if b.InWindow(today) {
		t.Error("Banner ended yesterday should not be in window")
	}

	b = &Banner{}
	if !b.InWindow(today) {
		t.Error("Unbounded banner should always be in window")
	}
}

// TestUsesTimer tests which banners get a duration timer on the display
func TestUsesTimer(t *testing.T) {
	cases := []struct {
		bannerType BannerType
		duration   int
		want       bool
	}{
		{BannerTypeImage, 10, true},
		{BannerTypeIframe, 10, true},
		{BannerTypeGDrive, 10, true},
		{BannerTypeYoutube, 10, false},
		{BannerTypeVideo, 10, false},
		{BannerTypeImage, 0, false},
		{BannerTypeImage, -5, false},
	}

	for _, tc := range cases {
		b := &Banner{Type: tc.bannerType, Duration: tc.duration}
		if got := b.UsesTimer(); got != tc.want {
			t.Errorf("UsesTimer for %s/%d: expected %v, got %v", tc.bannerType, tc.duration, tc.want, got)
		}
	}
}

// TestBannerTypeValid tests the closed set of content types
func TestBannerTypeValid(t *testing.T) {
	for _, valid := range []BannerType{BannerTypeImage, BannerTypeYoutube, BannerTypeVideo, BannerTypeIframe, BannerTypeGDrive} {
		if !valid.Valid() {
			t.Errorf("Type %s should be valid", valid)
		}
	}
	if BannerType("gif").Valid() {
		t.Error("Unknown type should not be valid")
	}
}
