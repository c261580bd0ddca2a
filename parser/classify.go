package parser

import "strings"

// keywordSets is evaluated in order and the first matching set wins, so
// an email mentioning both "interview" and "test" is an interview. The
// priority is load-bearing; keep this a slice, not a map.
var keywordSets = []struct {
	typ      EmailType
	keywords []string
}{
	{TypeInterview, []string{"interview", "pi", "personal interview", "gd", "group discussion"}},
	{TypeTest, []string{"test", "exam", "assessment", "aptitude"}},
	{TypeCallLetter, []string{"call letter", "admit card"}},
	{TypeShortlist, []string{"shortlist", "selected"}},
}

// Classify maps a message to a task category by case-insensitive
// substring search over the subject and snippet. The body is
// deliberately not searched; it is large and noisy. Returns TypeOther
// when no keyword set matches.
func Classify(subject, snippet string) EmailType {
	text := strings.ToLower(subject + " " + snippet)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(text, kw) {
				return set.typ
			}
		}
	}
	return TypeOther
}
