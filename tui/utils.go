package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jaytaylor/html2text"

	"github.com/sarthakds/admitdesk/parser"
)

// truncate shortens a string to a max length, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatListDate formats the received date for the task list.
func formatListDate(t time.Time) string {
	if t.IsZero() {
		return "???"
	}
	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day() {
		return t.Local().Format("15:04")
	}
	return t.Local().Format("Jan02")
}

// categoryLabel is the human form of a task category.
func categoryLabel(t parser.EmailType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// renderBody returns displayable text for an email body. HTML bodies
// are flattened to text; if conversion fails the raw body is shown.
func renderBody(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "<") && !strings.Contains(trimmed, "</") {
		return body
	}
	text, err := html2text.FromString(body, html2text.Options{TextOnly: false})
	if err != nil {
		return body
	}
	return text
}

// formatTaskListItem renders a single email as a 4-line boxed list item:
// a colored category dot plus the subject, then institution and date.
// itemContentTextWidth is the width for text inside the box lines.
func formatTaskListItem(email parser.Email, isSelected bool, itemContentTextWidth int) string {
	var boxCharStyle, subjectStyle, secondaryTextStyle lipgloss.Style
	var itemBlockStyle lipgloss.Style

	if isSelected {
		boxCharStyle = SelectedBoxCharStyle
		subjectStyle = SelectedSubjectStyle
		secondaryTextStyle = SelectedSecondaryTextStyle
		itemBlockStyle = SelectedTaskListItemStyle
	} else {
		boxCharStyle = NormalBoxCharStyle
		subjectStyle = NormalSubjectStyle
		secondaryTextStyle = NormalSecondaryTextStyle
		itemBlockStyle = TaskListItemStyle
	}

	subject := email.Subject
	if subject == "" {
		subject = "(No Subject)"
	}
	// The category dot and its trailing space take 2 columns of the
	// content width; pad the subject to the remainder.
	subjectWidth := itemContentTextWidth - 2
	if subjectWidth < 1 {
		subjectWidth = 1
	}
	paddedSubjectText := fmt.Sprintf("%-*s", subjectWidth, truncate(subject, subjectWidth))

	institution := email.Institution
	if institution == "" {
		institution = "(Unknown)"
	}
	dateStr := formatListDate(email.Date)

	maxInstLen := itemContentTextWidth - len(dateStr) - 1
	if maxInstLen < 1 {
		institution = ""
		if len(dateStr) > itemContentTextWidth {
			dateStr = truncate(dateStr, itemContentTextWidth)
		}
	} else {
		institution = truncate(institution, maxInstLen)
	}

	var secondLine string
	if institution != "" {
		secondLine = fmt.Sprintf("%s %s", institution, dateStr)
	} else {
		secondLine = dateStr
	}
	if len(secondLine) > itemContentTextWidth {
		secondLine = truncate(secondLine, itemContentTextWidth)
	}
	paddedSecondLine := fmt.Sprintf("%-*s", itemContentTextWidth, secondLine)

	horizontalBar := strings.Repeat(BoxHorizontal, itemContentTextWidth+2)

	line1 := fmt.Sprintf("%s%s%s",
		boxCharStyle.Render(BoxTopLeft),
		boxCharStyle.Render(horizontalBar),
		boxCharStyle.Render(BoxTopRight),
	)
	line2 := fmt.Sprintf("%s %s %s %s",
		boxCharStyle.Render(BoxVertical),
		typeDot(email.Type),
		subjectStyle.Render(paddedSubjectText),
		boxCharStyle.Render(BoxVertical),
	)
	line3 := fmt.Sprintf("%s %s %s",
		boxCharStyle.Render(BoxVertical),
		secondaryTextStyle.Render(paddedSecondLine),
		boxCharStyle.Render(BoxVertical),
	)
	line4 := fmt.Sprintf("%s%s%s",
		boxCharStyle.Render(BoxBottomLeft),
		boxCharStyle.Render(horizontalBar),
		boxCharStyle.Render(BoxBottomRight),
	)

	return itemBlockStyle.Render(strings.Join([]string{line1, line2, line3, line4}, "\n"))
}
