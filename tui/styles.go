package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sarthakds/admitdesk/parser"
)

var (
	// General
	AppStyle = lipgloss.NewStyle().Padding(0, 0)

	// Task list
	TaskListItemStyle = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

	// For selected items, change foregrounds and border colors instead
	// of a full block background to preserve the box structure.
	SelectedTaskListItemStyle = TaskListItemStyle

	// Styles for parts of the list item (normal state)
	NormalBoxCharStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "238"})
	NormalSubjectStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
	NormalSecondaryTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})

	// Styles for parts of the list item (selected state)
	SelectedBoxCharStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	SelectedSubjectStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	SelectedSecondaryTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("189"))

	TaskListStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("240")).PaddingRight(1)
	TaskListTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1).MarginLeft(1).Foreground(lipgloss.Color("63"))

	// Preview & Focused View
	ContentBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
	TitleStyle      = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	HeaderKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	HeaderValStyle  = lipgloss.NewStyle()
	TagStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	BodyStyle       = lipgloss.NewStyle().MarginTop(1)

	// Status Bar
	StatusBarSuccessStyle = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	StatusBarNormalStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	StatusBarErrorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)

// Category marker colors, mirroring the pastel palette of the summary
// cards: interviews orange, call letters green, tests red, the rest blue.
var typeDotStyles = map[parser.EmailType]lipgloss.Style{
	parser.TypeInterview:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	parser.TypeCallLetter: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	parser.TypeTest:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	parser.TypeShortlist:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	parser.TypeOther:      lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
}

func typeDot(t parser.EmailType) string {
	style, ok := typeDotStyles[t]
	if !ok {
		style = typeDotStyles[parser.TypeOther]
	}
	return style.Render("●")
}

// Box drawing characters
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)
