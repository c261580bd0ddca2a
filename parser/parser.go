// Package parser turns raw Gmail messages into structured admission-task
// records: it decodes the message body out of the MIME part tree,
// classifies the message into a task category, and extracts the
// institution name and any announced event date.
//
// Everything here is best-effort heuristics over uncontrolled third-party
// mail. Malformed input never produces an error, only a degraded field:
// a missing header becomes "", an undecodable body falls back to the
// snippet, an unparseable date is simply absent.
package parser

import (
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

// EmailType is the task category assigned to a message. Classification
// is single-label: every email gets exactly one of these values.
type EmailType string

const (
	TypeInterview  EmailType = "interview"
	TypeTest       EmailType = "test"
	TypeCallLetter EmailType = "call_letter"
	TypeShortlist  EmailType = "shortlist"
	TypeOther      EmailType = "other"
)

// Email is the parsed form of one Gmail message. It is built once per
// message and never mutated afterward (Tags is filled in by the pipeline
// before the record is handed to the UI).
type Email struct {
	ID          string
	Subject     string
	Sender      string // raw From header, may embed a display name
	Snippet     string
	Date        time.Time // received date, from Gmail's internal timestamp
	Body        string    // decoded HTML or plain text, snippet if neither
	EventDate   time.Time // zero when no date was found in the text
	Type        EmailType
	Institution string
	Tags        []string // labels of the rules this email matched
	HasAttach   bool
}

// Parse converts a full-format Gmail message into an Email. It never
// fails; every extraction degrades to a fallback on bad input.
func Parse(msg *gmail.Message) Email {
	e := Email{
		ID:      msg.Id,
		Snippet: msg.Snippet,
		Date:    receivedAt(msg.InternalDate),
	}

	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "Subject":
				e.Subject = h.Value
			case "From":
				e.Sender = h.Value
			}
		}
		e.Body = ExtractBody(msg.Payload)
		e.HasAttach = hasAttachment(msg.Payload)
	}
	if e.Body == "" {
		e.Body = e.Snippet
	}

	e.Type = Classify(e.Subject, e.Snippet)
	e.EventDate = EventDate(strings.ToLower(e.Subject + " " + e.Snippet))
	e.Institution = Institution(e.Sender, e.Subject)
	return e
}

// receivedAt converts Gmail's epoch-millisecond internal timestamp.
// A missing timestamp falls back to the processing time so the message
// still sorts near the top of a newest-first list.
func receivedAt(internalDate int64) time.Time {
	if internalDate == 0 {
		return time.Now()
	}
	return time.UnixMilli(internalDate)
}

// displayNameRe captures the display-name portion of a From header such
// as `"IIM Ahmedabad" <admissions@iima.ac.in>` (quotes optional).
var displayNameRe = regexp.MustCompile(`"?([^"<]+)"?\s*<.*>`)

// Institution returns a best-effort short name for the sending
// institution: the display name from the From header when present,
// otherwise the subject prefix before the first colon
// ("IIMA: Interview Call Letter" -> "IIMA"), otherwise the raw subject.
func Institution(from, subject string) string {
	if m := displayNameRe.FindStringSubmatch(from); m != nil {
		return strings.TrimSpace(m[1])
	}
	prefix, _, _ := strings.Cut(subject, ":")
	return strings.TrimSpace(prefix)
}
