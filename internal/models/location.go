package models

import (
	"time"
)

// Location represents a named, slugged display endpoint. Display clients
// address their rotation by slug.
type Location struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Slug      string    `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Banners []Banner `json:"banners,omitempty" gorm:"many2many:banner_locations;"`
}

// TableName specifies the table name for Location model
func (Location) TableName() string {
	return "locations"
}

// BannerLocation is the join row between banners and locations. A row's
// existence means the banner is eligible for rotation on the location,
// independent of its active flag or schedule window.
type BannerLocation struct {
	BannerID   uint `json:"banner_id" gorm:"primaryKey"`
	LocationID uint `json:"location_id" gorm:"primaryKey"`
}

// TableName specifies the table name for BannerLocation model
func (BannerLocation) TableName() string {
	return "banner_locations"
}
