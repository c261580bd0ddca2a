package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventDate_DayFirst(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"held on 15th March 2024", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"12th Feb 2024 at the campus", time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC)},
		{"15 March 2024", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		// The classifier lowercases text before scanning.
		{"the entrance test will be held on 15th march 2024.", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, EventDate(tt.text))
		})
	}
}

func TestEventDate_MonthFirst(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"scheduled for Feb 20th 2024", time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{"March 15, 2024 is the deadline", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"your interview for the mba program is scheduled for feb 20th 2024.", time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, EventDate(tt.text))
		})
	}
}

func TestEventDate_DayFirstTriedFirst(t *testing.T) {
	// Both forms present; the day-first occurrence wins even though the
	// month-first one appears earlier in the text.
	got := EventDate("announced Feb 20th 2024, reporting on 15 March 2024")
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestEventDate_Absent(t *testing.T) {
	for _, text := range []string{
		"no recognizable date pattern here",
		"meeting on 2024-03-15",  // ISO form is not recognized
		"reply before 32nd Jan",  // no year
		"",
	} {
		assert.True(t, EventDate(text).IsZero(), "text %q", text)
	}
}

func TestEventDate_FirstMatchOnly(t *testing.T) {
	got := EventDate("first on 10 Jan 2024 and again on 20 Feb 2024")
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), got)
}
