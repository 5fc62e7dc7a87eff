package config

import (
	"time"
)

// TimezoneConfig holds timezone configuration
type TimezoneConfig struct {
	Location *time.Location
}

var (
	// Default display timezone (Jakarta). All scheduling is calendar-date
	// based, so every date comparison must happen in this one zone.
	JakartaLocation *time.Location
	// Global timezone configuration
	AppTimezone *TimezoneConfig
)

// InitializeTimezone sets up the application timezone
func InitializeTimezone() error {
	tzName := getEnv("APP_TIMEZONE", "Asia/Jakarta")

	location, err := time.LoadLocation(tzName)
	if err != nil {
		// Fallback to Jakarta if the specified timezone is invalid
		location, err = time.LoadLocation("Asia/Jakarta")
		if err != nil {
			return err
		}
	}

	JakartaLocation = location
	AppTimezone = &TimezoneConfig{Location: location}

	return nil
}

// GetLocation returns the application timezone location
func GetLocation() *time.Location {
	if AppTimezone != nil && AppTimezone.Location != nil {
		return AppTimezone.Location
	}
	if JakartaLocation != nil {
		return JakartaLocation
	}
	return time.Local
}

// GetCurrentTime returns current time in the application timezone
func GetCurrentTime() time.Time {
	return time.Now().In(GetLocation())
}

// Today returns the current calendar date (midnight) in the application
// timezone. Schedule window checks must use this, never a UTC instant.
func Today() time.Time {
	now := GetCurrentTime()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDate parses a YYYY-MM-DD string as a plain calendar date, anchored
// at midnight UTC. Schedule bounds are stored and compared by wall clock
// only, so the database date cast can never move the value to a
// neighboring day.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}

// FormatDate formats a time as a YYYY-MM-DD calendar date, reading the
// value's own wall clock
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
