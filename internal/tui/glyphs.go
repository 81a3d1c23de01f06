package tui

import (
	"strings"
	"sync/atomic"
)

// glyphSet holds the characters used for checkboxes and separators. The
// ballot boxes are missing from some terminal fonts, hence the ASCII set.
type glyphSet struct {
	done      string
	open      string
	separator string
}

var (
	glyphSetUnicode = glyphSet{done: "☑", open: "☐", separator: "│"}
	glyphSetASCII   = glyphSet{done: "[x]", open: "[ ]", separator: "|"}
)

var activeGlyphs atomic.Pointer[glyphSet]

// applyGlyphPreference selects the glyph set from the config/env value.
// Unknown values leave the current set alone.
func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) { activeGlyphs.Store(&gs) }

func glyphs() glyphSet {
	if gs := activeGlyphs.Load(); gs != nil {
		return *gs
	}
	return glyphSetUnicode
}

func glyphCheckbox(done bool) string {
	if done {
		return glyphs().done
	}
	return glyphs().open
}

func glyphSeparator() string { return glyphs().separator }
