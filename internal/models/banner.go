package models

import (
	"time"

	"signage_server/config"
)

// BannerType represents the kind of content a banner carries. The set is
// closed; rendering and advance behavior dispatch on it.
type BannerType string

const (
	BannerTypeImage   BannerType = "image"
	BannerTypeYoutube BannerType = "youtube"
	BannerTypeVideo   BannerType = "video"
	BannerTypeIframe  BannerType = "iframe"
	BannerTypeGDrive  BannerType = "gdrive"
)

// Valid reports whether t is one of the known banner types
func (t BannerType) Valid() bool {
	switch t {
	case BannerTypeImage, BannerTypeYoutube, BannerTypeVideo, BannerTypeIframe, BannerTypeGDrive:
		return true
	default:
		return false
	}
}

// SelfTerminating reports whether the content signals its own end.
// These types advance on a playback-ended event, never on the duration timer.
func (t BannerType) SelfTerminating() bool {
	return t == BannerTypeYoutube || t == BannerTypeVideo
}

// BannerStatus is the derived lifecycle label of a banner. It is computed
// at read time and never persisted.
type BannerStatus string

const (
	BannerStatusLive      BannerStatus = "live"
	BannerStatusScheduled BannerStatus = "scheduled"
	BannerStatusExpired   BannerStatus = "expired"
	BannerStatusInactive  BannerStatus = "inactive"
)

// Banner represents a schedulable content unit in the rotation
type Banner struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Type        BannerType `json:"type" gorm:"size:20;not null"`
	URL         string     `json:"url" gorm:"type:text;not null"`
	Duration    int        `json:"duration" gorm:"not null;default:10"`
	Title       string     `json:"title" gorm:"size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	StartDate   *time.Time `json:"start_date" gorm:"type:date"`
	EndDate     *time.Time `json:"end_date" gorm:"type:date"`
	// Position is the dense global rank (0..N-1). Contiguity is enforced by
	// the position service, not by a database constraint.
	Position  int          `json:"position" gorm:"not null;index"`
	Status    BannerStatus `json:"status,omitempty" gorm:"-"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Locations []Location `json:"locations" gorm:"many2many:banner_locations;"`
}

// TableName specifies the table name for Banner model
func (Banner) TableName() string {
	return "banners"
}

// dateOnly reduces a value to its calendar date by reading its own wall
// clock. A date column decodes as midnight UTC; converting that instant
// into the app timezone would shift the day for any zone behind UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, config.GetLocation())
}

// ResolveStatus derives the lifecycle status of a banner from its active
// flag and schedule window. Comparison is by calendar date only: each
// value contributes the date its wall clock shows, whatever zone it
// carries.
func ResolveStatus(active bool, start, end *time.Time, today time.Time) BannerStatus {
	if !active {
		return BannerStatusInactive
	}

	day := dateOnly(today)
	afterStart := start == nil || !dateOnly(*start).After(day)
	beforeEnd := end == nil || !dateOnly(*end).Before(day)

	switch {
	case afterStart && beforeEnd:
		return BannerStatusLive
	case start != nil && dateOnly(*start).After(day):
		return BannerStatusScheduled
	case end != nil && dateOnly(*end).Before(day):
		return BannerStatusExpired
	default:
		// Unreachable with well-formed dates; kept so a banner whose window
		// cannot be evaluated degrades to a non-live status.
		return BannerStatusInactive
	}
}

// ResolveStatus derives this banner's status for the given day
func (b *Banner) ResolveStatus(today time.Time) BannerStatus {
	return ResolveStatus(b.Active, b.StartDate, b.EndDate, today)
}

// InWindow reports whether today falls inside the banner's schedule window.
// Both bounds are inclusive; a nil bound is open on that side. The active
// flag is deliberately not consulted here; displays filter on it in SQL.
func (b *Banner) InWindow(today time.Time) bool {
	day := dateOnly(today)
	if b.StartDate != nil && dateOnly(*b.StartDate).After(day) {
		return false
	}
	if b.EndDate != nil && dateOnly(*b.EndDate).Before(day) {
		return false
	}
	return true
}

// UsesTimer reports whether the display should arm a duration timer for
// this banner. Self-terminating media advances on its own end event, and a
// non-positive duration pins the banner until an external event.
func (b *Banner) UsesTimer() bool {
	return !b.Type.SelfTerminating() && b.Duration > 0
}
