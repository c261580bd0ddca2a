package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		snippet string
		want    EmailType
	}{
		{"interview keyword", "Interview Schedule", "", TypeInterview},
		{"group discussion in snippet", "Next Round", "Your GD slot is confirmed", TypeInterview},
		{"test keyword", "Entrance Test Schedule", "", TypeTest},
		{"aptitude in snippet", "Round 1", "aptitude evaluation next week", TypeTest},
		{"call letter", "Your Call Letter", "", TypeCallLetter},
		{"admit card", "Download Admit Card", "", TypeCallLetter},
		{"shortlist", "Shortlist Announcement", "", TypeShortlist},
		{"selected", "Congratulations", "you have been selected", TypeShortlist},
		{"no match", "Monthly Newsletter", "campus news digest", TypeOther},
		{"empty input", "", "", TypeOther},
		{"case insensitive", "INTERVIEW CALL", "", TypeInterview},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.subject, tt.snippet))
		})
	}
}

func TestClassify_OrderIsLoadBearing(t *testing.T) {
	// Contains both interview and test keywords; interview is checked
	// first, so it must win.
	assert.Equal(t, TypeInterview, Classify("Interview and Test Schedule", ""))

	// call letter keywords also contain "letter"; an email that is
	// both a test notice and a call letter stays a test.
	assert.Equal(t, TypeTest, Classify("Test Call Letter", ""))
}

func TestInstitution(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		subject string
		want    string
	}{
		{"display name", "IIM Ahmedabad <admissions@iima.ac.in>", "Interview Call", "IIM Ahmedabad"},
		{"quoted display name", `"XLRI Jamshedpur" <admit@xlri.ac.in>`, "Test Schedule", "XLRI Jamshedpur"},
		{"bare address falls back to subject colon split", "admissions@iima.ac.in", "IIMA: Interview Call Letter", "IIMA"},
		{"no colon returns subject", "noreply@isb.edu", "Shortlist Announcement", "Shortlist Announcement"},
		{"empty everything", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Institution(tt.from, tt.subject))
		})
	}
}
