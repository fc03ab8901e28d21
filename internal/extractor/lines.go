package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	listNumbering   = regexp.MustCompile(`^\d+[.)]\s*`)
	markdownHeading = regexp.MustCompile(`^#{1,6}[ \t]`)
)

// Lines finds the first line whose text starts with label (ignoring case and
// leading markdown decoration) and captures the lines that follow it. Capture
// stops at the first blank line after some content, at a markdown heading or
// at a line ending in a colon, all of which are taken to be the next header. Text on the header line itself
// is kept only when it follows a colon or dash separator.
func Lines(document, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	var (
		captured  []string
		capturing bool
	)
	for _, line := range strings.Split(document, "\n") {
		trimmed := strings.TrimSpace(line)

		if !capturing {
			rest, ok := cutPrefixFold(stripDecoration(trimmed), label)
			if !ok {
				continue
			}
			capturing = true
			if body := headerRemainder(rest); body != "" {
				captured = append(captured, body)
			}
			continue
		}

		if trimmed == "" {
			if len(captured) == 0 {
				continue
			}
			break
		}
		if isHeaderLine(trimmed) {
			break
		}
		captured = append(captured, strings.TrimRight(line, " \t\r"))
	}

	return strings.TrimSpace(strings.Join(captured, "\n"))
}

// stripDecoration removes markdown heading, emphasis, quote and bullet markers
// plus list numbering from the start of a line.
func stripDecoration(s string) string {
	s = strings.TrimLeft(s, "#*_>- \t")
	s = listNumbering.ReplaceAllString(s, "")
	return strings.TrimLeft(s, "*_ \t")
}

func headerRemainder(rest string) string {
	rest = strings.TrimLeft(rest, "*_ \t")
	switch {
	case strings.HasPrefix(rest, "-"):
		rest = rest[len("-"):]
	case strings.HasPrefix(rest, "–"):
		rest = rest[len("–"):]
	default:
		_, after, found := strings.Cut(rest, ":")
		if !found {
			return ""
		}
		rest = after
	}
	return strings.Trim(rest, "*_ \t\r")
}

func isHeaderLine(trimmed string) bool {
	return markdownHeading.MatchString(trimmed) ||
		strings.HasSuffix(strings.TrimRight(trimmed, "*_ \t"), ":")
}

// cutPrefixFold reports whether s starts with prefix under Unicode case
// folding and returns the remainder of s.
func cutPrefixFold(s, prefix string) (string, bool) {
	for _, want := range prefix {
		got, size := utf8.DecodeRuneInString(s)
		if size == 0 || !strings.EqualFold(string(got), string(want)) {
			return "", false
		}
		s = s[size:]
	}
	return s, true
}
