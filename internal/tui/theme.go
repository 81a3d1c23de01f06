package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors adapt to light and dark terminal backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted = ac("242", "245")

	colorSelectedBg = ac("254", "236")
	colorSelectedFg = ac("232", "231")

	colorSurfaceBg = ac("255", "235")
	colorSurfaceFg = ac("235", "252")

	colorControlBg = ac("252", "237")
	colorInputBg   = ac("253", "234")

	colorAccent   = ac("25", "69")
	colorAccentFg = ac("255", "234")

	colorInProgress = ac("26", "75")
	colorDone       = ac("28", "78")
	colorError      = ac("160", "203")

	colorModalHeaderBg = colorControlBg
	colorModalHeaderFg = colorSurfaceFg
)

// styleMuted is faint only on dark backgrounds; faint gray on white is
// unreadable.
func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

// colorProfile picks the profile for the TUI. NO_COLOR disables color;
// COLORTERM and TERM may raise what termenv detected. CLICOLOR is not
// consulted.
func colorProfile(getenv func(string) string, detected termenv.Profile) termenv.Profile {
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}
	colorterm := strings.ToLower(getenv("COLORTERM"))
	if detected != termenv.Ascii && (strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit")) {
		return termenv.TrueColor
	}
	if strings.Contains(strings.ToLower(getenv("TERM")), "256color") && (detected == termenv.Ascii || detected == termenv.ANSI) {
		return termenv.ANSI256
	}
	return detected
}

func applyColorProfilePreference() {
	lipgloss.SetColorProfile(colorProfile(os.Getenv, termenv.ColorProfile()))
}

// darkBackground resolves the theme setting (light|dark|auto). For auto it
// reads COLORFGBG ("fg;bg" or "fg;default;bg"); ok is false when nothing
// decides and lipgloss should query the terminal itself.
func darkBackground(theme string, getenv func(string) string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}

	v := getenv("COLORFGBG")
	i := strings.LastIndexByte(v, ';')
	if i < 0 {
		return false, false
	}
	bg, err := strconv.Atoi(strings.TrimSpace(v[i+1:]))
	if err != nil {
		return false, false
	}
	// 7 and 9-15 are the light ANSI colors.
	return bg < 7 || bg == 8, true
}

func applyThemePreference(theme string) {
	if dark, ok := darkBackground(theme, os.Getenv); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}
