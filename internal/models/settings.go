package models

// Settings represents application-wide settings
type Settings struct {
	Timezone     string `json:"timezone"`      // IANA timezone name (e.g. "America/Lima", or "Local" for system timezone)
	DefaultLabID string `json:"default_lab"`   // lab preselected in new appointment forms
	ShowTerminal bool   `json:"show_terminal"` // whether cancelled and completed appointments are listed
}
