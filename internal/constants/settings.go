package constants

const (
	// General Settings
	SettingTimezone     = "timezone"
	SettingDefaultLab   = "default_lab"
	SettingShowTerminal = "show_terminal"

	// Session keys
	SessionKeyRegistration = "lab-registration"
	SessionKeyAuth         = "lab-session"

	// Default Settings Values
	DefaultTimezone     = "Local" // Use system local timezone by default
	DefaultLabID        = "lab1"
	DefaultShowTerminal = true
)
