package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

var inputLineReplacer = strings.NewReplacer("\n", " ", "\r", " ")

// renderInputLine draws a textinput view as a single line exactly width cells
// wide, on a lighter background while focused.
func renderInputLine(width int, view string, focused bool) string {
	width = max(width, 10)

	bg := colorSurfaceBg
	if focused {
		bg = colorInputBg
	}
	view = xansi.Truncate(inputLineReplacer.Replace(view), width-2, "")
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(bg).
		Render(view)
}
