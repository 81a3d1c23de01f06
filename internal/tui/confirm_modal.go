package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderButton draws a borderless button. Borders nested inside the modal
// border leave background artifacts on some terminals.
func renderButton(label string, active bool) string {
	st := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	if active {
		st = st.Bold(true).
			Foreground(colorSelectedFg).
			Background(colorSelectedBg)
	}
	return st.Render(label)
}

// renderConfirmModal is a yes/no question; focus marks the highlighted button.
func renderConfirmModal(width int, title, body, yes, no string, focus confirmModalFocus) string {
	buttons := renderButton(yes, focus == confirmFocusConfirm) +
		"  " +
		renderButton(no, focus == confirmFocusCancel)

	help := styleMuted().
		Width(modalBodyWidth(width)).
		Render("y: yes   n/esc: no   tab: switch   enter: choose")

	return renderModalBox(width, title, strings.Join([]string{body, "", buttons, "", help}, "\n"))
}
