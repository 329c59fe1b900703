package game

import "strings"

// maxHints is the depth of the hint ladder.
const maxHints = 3

// hintText returns the hint for the nth request (1-based). The ladder
// reveals progressively more of the name: initials, then the first name,
// then a partial surname. Requests past the end repeat the last rung.
func hintText(name string, n int) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	if n > maxHints {
		n = maxHints
	}

	switch n {
	case 1:
		initials := make([]string, len(parts))
		for i, p := range parts {
			initials[i] = firstRune(p) + "."
		}
		return strings.Join(initials, " ")
	case 2:
		out := make([]string, len(parts))
		out[0] = parts[0]
		for i, p := range parts[1:] {
			out[i+1] = firstRune(p) + "."
		}
		return strings.Join(out, " ")
	default:
		out := make([]string, len(parts))
		out[0] = parts[0]
		for i, p := range parts[1:] {
			out[i+1] = runePrefix(p, max(2, len([]rune(p))/2)) + "…"
		}
		return strings.Join(out, " ")
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func runePrefix(s string, n int) string {
	r := []rune(s)
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}
