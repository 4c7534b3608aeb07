package models

import (
	"github.com/julianstephens/labcita/internal/constants"
)

// DefaultSettings returns the settings written on first init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:     constants.DefaultTimezone,
		DefaultLabID: constants.DefaultLabID,
		ShowTerminal: constants.DefaultShowTerminal,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys absent from the map keep their default value.
func MapToSettings(data map[string]string) Settings {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultLab:
			settings.DefaultLabID = value
		case constants.SettingShowTerminal:
			settings.ShowTerminal = value == "true"
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	showTerminal := "false"
	if settings.ShowTerminal {
		showTerminal = "true"
	}
	return map[string]string{
		constants.SettingTimezone:     settings.Timezone,
		constants.SettingDefaultLab:   settings.DefaultLabID,
		constants.SettingShowTerminal: showTerminal,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultLabID == "" {
		settings.DefaultLabID = constants.DefaultLabID
	}
}
