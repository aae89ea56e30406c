package cvextract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// section returns the text after the first match of header. The header
// pattern must have one group covering the separator that follows the
// heading word. At least minLen runes must follow the heading or no section
// exists; the section itself is at most maxLen runes. When trimming the
// separator leaves fewer than minLen runes, the section is the last minLen
// runes of text instead, so part of the separator is kept.
func section(text string, header *regexp.Regexp, minLen, maxLen int) string {
	loc := header.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	headEnd, sepEnd := loc[2], loc[3]

	if utf8.RuneCountInString(text[headEnd:]) < minLen {
		return ""
	}
	rest := text[sepEnd:]
	if utf8.RuneCountInString(rest) < minLen {
		return lastRunes(text, minLen)
	}
	return truncateRunes(rest, maxLen)
}

// meaningfulLines splits s into trimmed lines longer than minLen runes.
func meaningfulLines(s string, minLen int) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(l)
		if utf8.RuneCountInString(l) > minLen {
			out = append(out, l)
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func lastRunes(s string, n int) string {
	count := utf8.RuneCountInString(s)
	if count <= n {
		return s
	}
	skip := count - n
	i := 0
	for pos := range s {
		if i == skip {
			return s[pos:]
		}
		i++
	}
	return s
}
