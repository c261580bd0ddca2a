// Package rules holds the user-defined tagging and exclusion rules and
// the pure predicate that matches them against parsed emails.
package rules

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sarthakds/admitdesk/parser"
)

// Criteria are the optional match conditions of a rule. Every populated
// field must hold for the rule to match; absent fields are skipped, so
// an empty Criteria matches everything. The Subject field additionally
// supports an OR form: a value containing the literal " OR " separator
// matches when the email subject contains any one alternative.
type Criteria struct {
	From          string `json:"from,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Includes      string `json:"includes,omitempty"`
	Excludes      string `json:"excludes,omitempty"`
	ExcludeFrom   string `json:"excludeFrom,omitempty"`
	HasAttachment *bool  `json:"hasAttachment,omitempty"`
}

// Rule is a user-owned filter. Tag is a free-form label, not restricted
// to the classifier's category set. Color is cosmetic.
type Rule struct {
	ID          string
	Description string
	Tag         string
	Color       string
	IsActive    bool
	Criteria    Criteria
}

// New builds an active rule with a fresh ID.
func New(description, tag, color string, c Criteria) Rule {
	return Rule{
		ID:          uuid.New().String(),
		Description: description,
		Tag:         tag,
		Color:       color,
		IsActive:    true,
		Criteria:    c,
	}
}

// field selects which email text a condition reads.
type field int

const (
	fieldSender field = iota
	fieldSubject
	fieldSubjectBody
)

// condition is one clause of a compiled rule: a set of lowercased
// substring alternatives (a single element for the plain form) checked
// against one field. decisive marks the subject OR form, whose
// satisfaction settles the whole rule without further checks. negate
// inverts the containment test for exclusion clauses.
type condition struct {
	field    field
	anyOf    []string
	decisive bool
	negate   bool
}

const orSeparator = " OR "

// compile lowers Criteria into the ordered condition list Matches
// evaluates. The order mirrors the precedence the criteria are defined
// with: from, subject, includes, excludes.
func compile(c Criteria) []condition {
	var conds []condition
	if c.From != "" {
		conds = append(conds, condition{field: fieldSender, anyOf: []string{strings.ToLower(c.From)}})
	}
	if c.Subject != "" {
		if strings.Contains(c.Subject, orSeparator) {
			var alts []string
			for _, alt := range strings.Split(c.Subject, orSeparator) {
				alts = append(alts, strings.ToLower(alt))
			}
			conds = append(conds, condition{field: fieldSubject, anyOf: alts, decisive: true})
		} else {
			conds = append(conds, condition{field: fieldSubject, anyOf: []string{strings.ToLower(c.Subject)}})
		}
	}
	if c.Includes != "" {
		conds = append(conds, condition{field: fieldSubjectBody, anyOf: []string{strings.ToLower(c.Includes)}})
	}
	if c.Excludes != "" {
		conds = append(conds, condition{field: fieldSubjectBody, anyOf: []string{strings.ToLower(c.Excludes)}, negate: true})
	}
	return conds
}

func (c condition) holds(e parser.Email) bool {
	var source string
	switch c.field {
	case fieldSender:
		source = e.Sender
	case fieldSubject:
		source = e.Subject
	case fieldSubjectBody:
		source = e.Subject + " " + e.Body
	}
	source = strings.ToLower(source)
	for _, alt := range c.anyOf {
		if strings.Contains(source, alt) {
			return !c.negate
		}
	}
	return c.negate
}

// Matches reports whether every populated criterion of the rule holds
// for the email. It is a pure read-only predicate. A satisfied subject
// OR condition short-circuits to a match; any failed condition
// short-circuits to a non-match.
func Matches(e parser.Email, r Rule) bool {
	for _, cond := range compile(r.Criteria) {
		if !cond.holds(e) {
			return false
		}
		if cond.decisive {
			return true
		}
	}
	if r.Criteria.HasAttachment != nil && *r.Criteria.HasAttachment != e.HasAttach {
		return false
	}
	return true
}

// ExcludedBy reports whether any active rule names an ExcludeFrom
// fragment that occurs in the email's sender. The pipeline uses this to
// drop emails before display, independent of the tagging criteria.
func ExcludedBy(e parser.Email, rs []Rule) bool {
	sender := strings.ToLower(e.Sender)
	for _, r := range rs {
		if !r.IsActive || r.Criteria.ExcludeFrom == "" {
			continue
		}
		if strings.Contains(sender, strings.ToLower(r.Criteria.ExcludeFrom)) {
			return true
		}
	}
	return false
}

// DefaultRules is the starter set seeded into an empty store.
func DefaultRules() []Rule {
	return []Rule{
		New(`Subject or Body contains "interview"`, "interview", "bg-orange-soft", Criteria{Includes: "interview"}),
		New(`Subject contains "call letter" or "admit card"`, "call_letter", "bg-green-soft", Criteria{Subject: "call letter OR admit card"}),
		New(`Subject contains "test" or "assessment"`, "test", "bg-red-soft", Criteria{Subject: "test OR assessment"}),
		New(`Subject contains "shortlist"`, "shortlist", "bg-blue-soft", Criteria{Subject: "shortlist"}),
	}
}
