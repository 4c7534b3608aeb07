package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// LocationFromSettings resolves the configured timezone, falling back to
// the system timezone when the stored name is invalid.
func LocationFromSettings(settings models.Settings) *time.Location {
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DayOf returns the calendar day (YYYY-MM-DD) of t as seen in loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDate parses a calendar date in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// NormalizeDate reformats any parseable date to the canonical form, so that
// calendar days can be compared as strings.
func NormalizeDate(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}
	return t.Format(constants.DateFormat), nil
}

// IsBeforeDay reports whether date is strictly earlier than day. Both are
// YYYY-MM-DD strings.
func IsBeforeDay(date, day string) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	ref, err := ParseDate(day)
	if err != nil {
		return false, err
	}
	return d.Before(ref), nil
}

// FormatDisplayDate renders a YYYY-MM-DD date as dd/MM/yyyy. Unparseable
// input is returned unchanged.
func FormatDisplayDate(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(constants.DisplayDateFormat)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
