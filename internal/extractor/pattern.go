package extractor

import (
	"regexp"
	"strings"
)

// Pattern locates label at the start of a line with a case-insensitive,
// multi-line search and takes everything after it and an optional separator.
// The body ends at the next numbered list item, markdown heading or other
// known label. When the body still contains a colon only the text after the
// first colon is returned, which drops a label the model restated.
func Pattern(document, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}

	start, err := regexp.Compile(`(?im)^[ \t>*_#\-]*(?:\d+[.)][ \t]*)?[*_]*` +
		regexp.QuoteMeta(label) + `[*_ \t]*(?:[:\-–][*_ \t]*)?`)
	if err != nil {
		return ""
	}
	loc := start.FindStringIndex(document)
	if loc == nil {
		return ""
	}

	rest := document[loc[1]:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		if end := nextHeader(label).FindStringIndex(rest[nl:]); end != nil {
			rest = rest[:nl+end[0]]
		}
	}
	if _, after, found := strings.Cut(rest, ":"); found {
		rest = strings.TrimLeft(after, "*_ \t")
	}
	return strings.TrimSpace(rest)
}

func nextHeader(label string) *regexp.Regexp {
	alternatives := []string{`\d+[.)][ \t]`, `#{1,6}[ \t]`}

	var others []string
	for _, known := range Labels {
		if strings.EqualFold(known, label) {
			continue
		}
		others = append(others, regexp.QuoteMeta(known))
	}
	if len(others) > 0 {
		alternatives = append(alternatives, `[*_>\-]*[ \t]*(?:`+strings.Join(others, "|")+`)`)
	}

	return regexp.MustCompile(`(?im)^[ \t]*(?:` + strings.Join(alternatives, "|") + `)`)
}
