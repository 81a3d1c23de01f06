package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxW = 64
	modalMinW = 24
)

// modalOuterWidth is the full modal width (border included) for a screen width.
func modalOuterWidth(screenW int) int {
	w := screenW - 4
	if w > modalMaxW {
		w = modalMaxW
	}
	if w < modalMinW {
		w = modalMinW
	}
	return w
}

// modalBodyWidth is the usable content width inside a modal box.
func modalBodyWidth(screenW int) int {
	// border (2) + horizontal padding (2*2)
	return modalOuterWidth(screenW) - 6
}

// renderModalBox frames content with a title bar and a rounded border.
func renderModalBox(screenW int, title string, content string) string {
	bodyW := modalBodyWidth(screenW)

	header := lipgloss.NewStyle().
		Width(bodyW).
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Render(" " + strings.TrimSpace(title))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 2).
		Width(bodyW + 4)

	return box.Render(header + "\n\n" + content)
}

func placeCentered(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
