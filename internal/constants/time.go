package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat is the day/month/year layout used in user-facing notices
	DisplayDateFormat = "02/01/2006"
)

// TimeSlots are the bookable half-hour slots. There is no slot during the
// 13:00-14:00 lunch break.
var TimeSlots = []string{
	"07:00", "07:30", "08:00", "08:30", "09:00", "09:30",
	"10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	"14:00", "14:30", "15:00", "15:30", "16:00",
}

// IsTimeSlot reports whether t is one of the bookable slots.
func IsTimeSlot(t string) bool {
	for _, s := range TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}
