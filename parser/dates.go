package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Two families of written-English dates are recognized:
//
//	day-first:   "15 March 2024", "12th Feb 2024"
//	month-first: "Feb 12th 2024", "March 15, 2024"
//
// Only the first match of each family is considered.
var (
	dayFirstRe   = regexp.MustCompile(`(?i)\b(\d{1,2}(?:st|nd|rd|th)?\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})\b`)
	monthFirstRe = regexp.MustCompile(`(?i)\b((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2}(?:st|nd|rd|th|,)?\.?\s+\d{4})\b`)
	ordinalRe    = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
)

var (
	dayFirstLayouts   = []string{"2 Jan 2006", "2 January 2006"}
	monthFirstLayouts = []string{"Jan 2 2006", "January 2 2006"}
)

// EventDate scans text for a written date and returns it, or the zero
// time when no pattern matches or the matched text is not a valid
// calendar date. The day-first form is tried first; the month-first
// form is only consulted when day-first yielded nothing usable.
func EventDate(text string) time.Time {
	if m := dayFirstRe.FindStringSubmatch(text); m != nil {
		clean := ordinalRe.ReplaceAllString(m[1], "$1")
		if t, ok := parseWritten(clean, dayFirstLayouts); ok {
			return t
		}
	}
	if m := monthFirstRe.FindStringSubmatch(text); m != nil {
		clean := ordinalRe.ReplaceAllString(m[1], "$1")
		clean = strings.NewReplacer(",", "", ".", "").Replace(clean)
		if t, ok := parseWritten(clean, monthFirstLayouts); ok {
			return t
		}
	}
	return time.Time{}
}

func parseWritten(s string, layouts []string) (time.Time, bool) {
	s = titleWords(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// titleWords uppercases the first letter of each word so month names
// survive the lowercasing of the scanned text; time.Parse is
// case-sensitive about "Feb" vs "feb".
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
