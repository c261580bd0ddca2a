package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sarthakds/admitdesk/parser"
)

func (m Model) renderTaskList(paneWidth, paneHeight int) string {
	title := TaskListTitleStyle.Render("Task List")
	listItemsContainerHeight := paneHeight - lipgloss.Height(title)
	if listItemsContainerHeight < 0 {
		listItemsContainerHeight = 0
	}

	itemTextContentWidth := paneWidth - TaskListItemStyle.GetPaddingLeft() - TaskListItemStyle.GetPaddingRight() - 2 - 2
	if itemTextContentWidth < 10 {
		itemTextContentWidth = 10
	}

	numItemsToDisplay := listItemsContainerHeight / taskListItemHeight
	if numItemsToDisplay < 0 {
		numItemsToDisplay = 0
	}

	startIdx := m.viewportTopLine
	endIdx := startIdx + numItemsToDisplay
	if startIdx < 0 {
		startIdx = 0
	}
	if startIdx > len(m.emails) {
		startIdx = len(m.emails)
	}
	if endIdx > len(m.emails) {
		endIdx = len(m.emails)
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}

	visibleItemStrings := []string{}
	if paneWidth > 0 && paneHeight > 0 {
		for i := startIdx; i < endIdx; i++ {
			itemStr := formatTaskListItem(m.emails[i], i == m.selectedIdx, itemTextContentWidth)
			visibleItemStrings = append(visibleItemStrings, itemStr)
		}
	}

	fullListRender := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(visibleItemStrings, "\n"))
	return TaskListStyle.Width(paneWidth).Height(paneHeight).Render(fullListRender)
}

// renderTaskHeaders renders the preview/full-view header block for one
// email: sender, institution, category, dates, and rule tags.
func renderTaskHeaders(email parser.Email, paneWidth int, full bool) string {
	var b strings.Builder

	from := email.Sender
	if !full {
		from = truncate(from, paneWidth-10)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("From:"), HeaderValStyle.Render(from)))
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Institution:"), HeaderValStyle.Render(email.Institution)))
	b.WriteString(fmt.Sprintf("%s %s %s\n", HeaderKeyStyle.Render("Category:"), typeDot(email.Type), HeaderValStyle.Render(categoryLabel(email.Type))))

	dateStr := "N/A"
	if !email.Date.IsZero() {
		dateStr = email.Date.Local().Format(time.RFC1123)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Date:"), HeaderValStyle.Render(dateStr)))

	if !email.EventDate.IsZero() {
		b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Event:"), HeaderValStyle.Render(email.EventDate.Format("Mon, 2 Jan 2006"))))
	}
	if len(email.Tags) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Tags:"), TagStyle.Render(strings.Join(email.Tags, ", "))))
	}

	subject := email.Subject
	if !full {
		subject = truncate(subject, paneWidth-12)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", HeaderKeyStyle.Render("Subject:"), HeaderValStyle.Render(subject)))
	b.WriteString("\n" + strings.Repeat("─", paneWidth/2))
	return b.String()
}

func (m Model) renderPreviewPane(paneWidth, paneHeight int) string {
	var finalContentToRender string
	var titleText string

	if paneWidth <= 0 || paneHeight <= 0 {
		return ""
	}

	styledTitle := TitleStyle.Render("Placeholder") // for height calculation

	if len(m.emails) == 0 || m.selectedIdx < 0 || m.selectedIdx >= len(m.emails) {
		titleText = "Home"
		welcomeMsg := "\n[admitdesk]\n\nNo updates found recently."
		maxContentHeight := paneHeight - lipgloss.Height(styledTitle) - ContentBoxStyle.GetVerticalPadding()
		if maxContentHeight < 0 {
			maxContentHeight = 0
		}
		finalContentToRender = lipgloss.NewStyle().
			Width(paneWidth - ContentBoxStyle.GetHorizontalPadding()).
			MaxHeight(maxContentHeight).
			Padding(1).Render(welcomeMsg)
	} else {
		email := m.emails[m.selectedIdx]
		titleText = fmt.Sprintf("Preview: %s", truncate(email.Subject, paneWidth-(TitleStyle.GetHorizontalPadding()+12)))

		renderedHeaders := renderTaskHeaders(email, paneWidth, false)
		renderedHeaderHeight := lipgloss.Height(renderedHeaders)

		bodyDisplayHeight := m.getVisiblePreviewBodyHeight(paneHeight, renderedHeaderHeight)

		bodyLines := strings.Split(strings.ReplaceAll(renderBody(email.Body), "\r\n", "\n"), "\n")
		startLine := m.previewScrollPos
		if startLine < 0 {
			startLine = 0
		}
		if len(bodyLines) > bodyDisplayHeight && startLine > len(bodyLines)-bodyDisplayHeight && bodyDisplayHeight > 0 {
			startLine = len(bodyLines) - bodyDisplayHeight
		} else if startLine >= len(bodyLines) && len(bodyLines) > 0 {
			startLine = len(bodyLines) - 1
		}
		if len(bodyLines) == 0 {
			startLine = 0
		}

		endLine := startLine + bodyDisplayHeight
		if endLine > len(bodyLines) {
			endLine = len(bodyLines)
		}

		visibleBody := ""
		if startLine < endLine && startLine < len(bodyLines) {
			visibleBody = strings.Join(bodyLines[startLine:endLine], "\n")
		}

		finalContentToRender = lipgloss.JoinVertical(lipgloss.Left,
			renderedHeaders,
			BodyStyle.Render(visibleBody),
		)
		finalContentToRender = lipgloss.NewStyle().
			Width(paneWidth - ContentBoxStyle.GetHorizontalPadding()).
			MaxHeight(paneHeight - lipgloss.Height(styledTitle) - ContentBoxStyle.GetVerticalPadding()).
			Render(finalContentToRender)
	}

	styledTitle = TitleStyle.Render(titleText)
	return ContentBoxStyle.Width(paneWidth).Height(paneHeight).Render(
		lipgloss.JoinVertical(lipgloss.Top, styledTitle, finalContentToRender),
	)
}

func (m Model) renderFocusedEmailView(paneWidth, paneHeight int) string {
	var finalContentToRender string
	var titleText string

	if paneWidth <= 0 || paneHeight <= 0 {
		return ""
	}

	styledTitle := TitleStyle.Render("Placeholder")

	if len(m.emails) == 0 || m.selectedIdx < 0 || m.selectedIdx >= len(m.emails) {
		titleText = "Error"
		maxContentHeight := paneHeight - lipgloss.Height(styledTitle) - ContentBoxStyle.GetVerticalPadding()
		if maxContentHeight < 0 {
			maxContentHeight = 0
		}
		finalContentToRender = lipgloss.NewStyle().
			Width(paneWidth - ContentBoxStyle.GetHorizontalPadding()).
			MaxHeight(maxContentHeight).
			Padding(1).Render("No email selected.")
	} else {
		email := m.emails[m.selectedIdx]
		titleText = fmt.Sprintf("Full View: %s", truncate(email.Subject, paneWidth-(TitleStyle.GetHorizontalPadding()+15)))

		var contentBuilder strings.Builder
		contentBuilder.WriteString(renderTaskHeaders(email, paneWidth, true))
		contentBuilder.WriteString("\n\n")
		contentBuilder.WriteString(BodyStyle.Render(strings.ReplaceAll(renderBody(email.Body), "\r\n", "\n")))

		maxContentHeight := paneHeight - lipgloss.Height(styledTitle) - ContentBoxStyle.GetVerticalPadding()
		if maxContentHeight < 0 {
			maxContentHeight = 0
		}
		finalContentToRender = lipgloss.NewStyle().
			Width(paneWidth - ContentBoxStyle.GetHorizontalPadding()).
			MaxHeight(maxContentHeight).
			Render(contentBuilder.String())
	}

	styledTitle = TitleStyle.Render(titleText)
	return ContentBoxStyle.Width(paneWidth).Height(paneHeight).Render(
		lipgloss.JoinVertical(lipgloss.Top, styledTitle, finalContentToRender),
	)
}
