package ui

import (
	"testing"
)

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}

	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q): theme name = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitThemeNoColorFlag(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true): theme = %q, want none", GetCurrentTheme().Name)
	}
	if ColorGreen() != "" || ColorReset() != "" {
		t.Error("no-color theme should yield empty escape codes")
	}
}

func TestInitThemeNoColorEnv(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme with NO_COLOR set: theme = %q, want none", GetCurrentTheme().Name)
	}
}

func TestColorAccessorsFollowTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("dark")
	if ColorGreen() != DarkTheme.Success {
		t.Errorf("ColorGreen() = %q, want %q", ColorGreen(), DarkTheme.Success)
	}
	if ColorRed() != DarkTheme.Error {
		t.Errorf("ColorRed() = %q, want %q", ColorRed(), DarkTheme.Error)
	}

	SetTheme("light")
	if ColorGreen() != LightTheme.Success {
		t.Errorf("ColorGreen() after light theme = %q, want %q", ColorGreen(), LightTheme.Success)
	}
}
