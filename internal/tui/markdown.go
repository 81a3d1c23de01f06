package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

type markdownKey struct {
	dark  bool
	width int
}

// Renderers are cached per background and width. Building one with
// WithAutoStyle would query the terminal, which blocks on some terminals.
var (
	markdownMu        sync.Mutex
	markdownRenderers = map[markdownKey]*glamour.TermRenderer{}
)

const helpMarkdown = `
## Keys

| Key | Action |
|---|---|
| ` + "`tab`" + ` / ` + "`i`" + ` | focus the new task input |
| ` + "`enter`" + ` | add the typed task (asks for a due date) |
| ` + "`esc`" + ` | back to the list |
| ` + "`space`" + ` / ` + "`x`" + ` | toggle done |
| ` + "`e`" + ` | edit the task text (` + "`ctrl+e`" + ` opens $EDITOR) |
| ` + "`d`" + ` / ` + "`delete`" + ` | delete (asks first) |
| ` + "`f`" + ` | cycle filter |
| ` + "`1`" + ` ` + "`2`" + ` ` + "`3`" + ` | all / in-progress / done |
| ` + "`q`" + ` | quit |

Due dates use **YYYY-MM-DD**. Leave the prompt empty for no due date.

Tasks are sorted with unfinished work first, then by due date.
`

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := markdownRenderer(markdownKey{dark: lipgloss.HasDarkBackground(), width: max(width, 10)})
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownRenderer(key markdownKey) (*glamour.TermRenderer, error) {
	markdownMu.Lock()
	defer markdownMu.Unlock()

	if r, ok := markdownRenderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyles(key.dark)),
		glamour.WithWordWrap(key.width),
	)
	if err != nil {
		return nil, err
	}
	markdownRenderers[key] = r
	return r, nil
}

// markdownStyles is glamour's light or dark style recolored to the TUI
// palette, without a document margin.
func markdownStyles(dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	if dark {
		cfg = styles.DarkStyleConfig
	}
	pick := func(c lipgloss.AdaptiveColor) *string {
		v := c.Light
		if dark {
			v = c.Dark
		}
		return &v
	}

	var margin uint
	cfg.Document.Margin = &margin
	cfg.Heading.Color = pick(colorSurfaceFg)
	cfg.H2.Color = pick(colorSurfaceFg)
	cfg.Code.Color = pick(colorAccent)
	cfg.Text.Color = pick(colorSurfaceFg)
	cfg.Strong.Color = nil
	return cfg
}
