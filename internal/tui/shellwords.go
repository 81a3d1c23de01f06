package tui

import "unicode"

// splitShellWords splits a command string like $EDITOR into argv. Single
// quotes, double quotes and backslash escapes (outside single quotes) work as
// in a POSIX shell; nothing is expanded.
func splitShellWords(s string) []string {
	var (
		out    []string
		cur    []rune
		quote  rune
		escape bool
	)

	for _, r := range s {
		switch {
		case escape:
			cur = append(cur, r)
			escape = false
		case r == '\\' && quote != '\'':
			escape = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
		default:
			cur = append(cur, r)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
