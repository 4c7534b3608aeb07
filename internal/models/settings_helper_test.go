package models

import (
	"testing"

	"github.com/julianstephens/labcita/internal/constants"
)

func TestMapToSettingsKeepsDefaults(t *testing.T) {
	settings := MapToSettings(map[string]string{
		constants.SettingTimezone: "America/Lima",
	})

	if settings.Timezone != "America/Lima" {
		t.Errorf("expected timezone America/Lima, got %s", settings.Timezone)
	}
	if settings.DefaultLabID != constants.DefaultLabID {
		t.Errorf("expected default lab %s, got %s", constants.DefaultLabID, settings.DefaultLabID)
	}
	if !settings.ShowTerminal {
		t.Error("expected show_terminal to default to true")
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	original := Settings{Timezone: "UTC", DefaultLabID: "lab2", ShowTerminal: false}
	got := MapToSettings(SettingsToMap(original))
	if got != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, original)
	}
}
