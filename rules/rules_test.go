package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarthakds/admitdesk/parser"
)

func boolPtr(b bool) *bool { return &b }

func TestMatches_EmptyCriteriaMatchesEverything(t *testing.T) {
	e := parser.Email{Subject: "anything at all", Sender: "anyone@example.com"}
	assert.True(t, Matches(e, Rule{Criteria: Criteria{}}))
}

func TestMatches_From(t *testing.T) {
	r := Rule{Criteria: Criteria{From: "iima.ac.in"}}

	assert.True(t, Matches(parser.Email{Sender: "Admissions <admissions@IIMA.ac.in>"}, r))
	assert.False(t, Matches(parser.Email{Sender: "admissions@isb.edu"}, r))
}

func TestMatches_Subject(t *testing.T) {
	r := Rule{Criteria: Criteria{Subject: "call letter"}}

	assert.True(t, Matches(parser.Email{Subject: "Your Call Letter is ready"}, r))
	assert.False(t, Matches(parser.Email{Subject: "Interview schedule"}, r))
}

func TestMatches_SubjectOr(t *testing.T) {
	r := Rule{Criteria: Criteria{Subject: "call letter OR admit card"}}

	assert.True(t, Matches(parser.Email{Subject: "XLRI Admit Card released"}, r))
	assert.True(t, Matches(parser.Email{Subject: "Call letter attached"}, r))
	assert.False(t, Matches(parser.Email{Subject: "Shortlist results"}, r))
}

func TestMatches_SubjectOrShortCircuits(t *testing.T) {
	// A satisfied OR subject settles the rule even when a later
	// criterion would fail.
	r := Rule{Criteria: Criteria{
		Subject:  "call letter OR admit card",
		Includes: "definitely not present",
	}}

	assert.True(t, Matches(parser.Email{Subject: "admit card inside"}, r))
}

func TestMatches_OrLiteralIsCaseSensitive(t *testing.T) {
	// A lowercase " or " is part of the phrase, not a separator.
	r := Rule{Criteria: Criteria{Subject: "now or never"}}

	assert.True(t, Matches(parser.Email{Subject: "It is now or never"}, r))
	assert.False(t, Matches(parser.Email{Subject: "now"}, r))
}

func TestMatches_Includes(t *testing.T) {
	r := Rule{Criteria: Criteria{Includes: "interview"}}

	assert.True(t, Matches(parser.Email{Subject: "Schedule", Body: "Your INTERVIEW is on Monday"}, r))
	assert.True(t, Matches(parser.Email{Subject: "Interview invite", Body: ""}, r))
	assert.False(t, Matches(parser.Email{Subject: "Newsletter", Body: "nothing relevant"}, r))
}

func TestMatches_Excludes(t *testing.T) {
	r := Rule{Criteria: Criteria{Includes: "interview", Excludes: "webinar"}}

	assert.True(t, Matches(parser.Email{Subject: "Interview round 2"}, r))
	assert.False(t, Matches(parser.Email{Subject: "Interview tips webinar"}, r))
}

func TestMatches_HasAttachment(t *testing.T) {
	r := Rule{Criteria: Criteria{HasAttachment: boolPtr(true)}}

	assert.True(t, Matches(parser.Email{HasAttach: true}, r))
	assert.False(t, Matches(parser.Email{HasAttach: false}, r))
}

func TestMatches_AllCriteriaMustHold(t *testing.T) {
	r := Rule{Criteria: Criteria{From: "isb.edu", Subject: "shortlist"}}

	assert.True(t, Matches(parser.Email{Sender: "admissions@isb.edu", Subject: "Shortlist update"}, r))
	assert.False(t, Matches(parser.Email{Sender: "admissions@isb.edu", Subject: "Fee reminder"}, r))
	assert.False(t, Matches(parser.Email{Sender: "other@iima.ac.in", Subject: "Shortlist update"}, r))
}

func TestExcludedBy(t *testing.T) {
	rs := []Rule{
		{IsActive: true, Criteria: Criteria{ExcludeFrom: "noreply@spam.com"}},
		{IsActive: false, Criteria: Criteria{ExcludeFrom: "inactive.example"}},
	}

	assert.True(t, ExcludedBy(parser.Email{Sender: "Spam Bot <NOREPLY@spam.com>"}, rs))
	assert.False(t, ExcludedBy(parser.Email{Sender: "admissions@iima.ac.in"}, rs))
	// Inactive rules never exclude.
	assert.False(t, ExcludedBy(parser.Email{Sender: "news@inactive.example"}, rs))
}

func TestDefaultRules(t *testing.T) {
	rs := DefaultRules()
	assert.Len(t, rs, 4)
	for _, r := range rs {
		assert.NotEmpty(t, r.ID)
		assert.True(t, r.IsActive)
	}

	// The seeded call letter rule takes the OR form.
	assert.True(t, Matches(parser.Email{Subject: "CAT Admit Card"}, rs[1]))
}
