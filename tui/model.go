// Package tui renders the admissions dashboard: a newest-first task
// list with category markers, a preview pane, and a focused full view.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sarthakds/admitdesk/parser"
	"github.com/sarthakds/admitdesk/pipeline"
)

type viewState int

const (
	viewLoading viewState = iota
	viewDashboard
	viewFocusedEmail
)

const (
	taskListItemHeight  = 4
	minListPaneWidth    = 30
	minPreviewPaneWidth = 40
)

type Model struct {
	results         <-chan pipeline.Result
	apiPollInterval time.Duration

	emails           []parser.Email
	stats            pipeline.Stats
	selectedIdx      int
	viewportTopLine  int
	previewScrollPos int

	currentView viewState

	width, height int
	statusBarText string
	statusIsError bool
	statusIsTemp  bool

	err           error
	monitorIsDone bool
}

func NewInitialModel(results <-chan pipeline.Result, pollInterval time.Duration) Model {
	return Model{
		results:         results,
		apiPollInterval: pollInterval,
		currentView:     viewLoading,
		statusBarText:   "Scanning your inbox...",
		emails:          []parser.Email{},
		selectedIdx:     0,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForResultCmd(m.results),
		statusTickCmd(1*time.Second),
	)
}

func (m Model) getVisibleTaskListHeight() int {
	statusBarHeight := 1
	listTitleRenderedHeight := lipgloss.Height(TaskListTitleStyle.Render(" "))
	availableHeight := m.height - statusBarHeight - listTitleRenderedHeight
	if availableHeight < 0 {
		availableHeight = 0
	}
	return availableHeight
}

func (m Model) getNumItemsThatFitInList() int {
	numFit := m.getVisibleTaskListHeight() / taskListItemHeight
	if numFit < 0 {
		numFit = 0
	}
	return numFit
}

// getVisiblePreviewBodyHeight estimates the number of text lines
// available for the email body in the preview pane, after the headers
// have been rendered.
func (m Model) getVisiblePreviewBodyHeight(paneTotalHeight, renderedHeaderHeight int) int {
	previewTitleHeight := lipgloss.Height(TitleStyle.Render(" "))
	availableHeight := paneTotalHeight - previewTitleHeight - renderedHeaderHeight - ContentBoxStyle.GetVerticalPadding()
	if availableHeight < 0 {
		availableHeight = 0
	}
	return availableHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectedVisible()
		if m.currentView == viewLoading && m.width > 0 {
			if len(m.emails) > 0 || m.monitorIsDone {
				m.currentView = viewDashboard
				m.setStandardStatus()
			} else {
				m.updateStatusBar("Waiting for the first fetch cycle...")
			}
		}

	case tea.KeyMsg:
		switch m.currentView {
		case viewDashboard:
			switch msg.String() {
			case "ctrl+c", "q":
				m.updateStatusBar("Quitting...")
				return m, tea.Quit
			case "up", "k":
				if m.selectedIdx > 0 {
					m.selectedIdx--
					m.ensureSelectedVisible()
					m.previewScrollPos = 0
				}
			case "down", "j":
				if m.selectedIdx < len(m.emails)-1 {
					m.selectedIdx++
					m.ensureSelectedVisible()
					m.previewScrollPos = 0
				}
			case "enter":
				if len(m.emails) > 0 && m.selectedIdx >= 0 && m.selectedIdx < len(m.emails) {
					m.currentView = viewFocusedEmail
					m.setStandardStatus()
				}
			case "K": // Preview scroll up
				if m.previewScrollPos > 0 {
					m.previewScrollPos--
				}
			case "J": // Preview scroll down
				if len(m.emails) > 0 && m.selectedIdx >= 0 && m.selectedIdx < len(m.emails) {
					email := m.emails[m.selectedIdx]
					bodyLines := strings.Split(strings.ReplaceAll(renderBody(email.Body), "\r\n", "\n"), "\n")
					if m.previewScrollPos < len(bodyLines)-1 {
						m.previewScrollPos++
					}
				}
			}
		case viewFocusedEmail:
			switch msg.String() {
			case "ctrl+c", "q":
				m.updateStatusBar("Quitting...")
				return m, tea.Quit
			case "esc":
				m.currentView = viewDashboard
				m.setStandardStatus()
			}
		case viewLoading:
			switch msg.String() {
			case "ctrl+c", "q":
				m.updateStatusBar("Quitting...")
				return m, tea.Quit
			}
		}

	case ResultMsg:
		// A cycle replaces the whole working set; re-anchor the
		// selection on the email that was selected before, if it is
		// still present.
		oldSelectedID := ""
		if len(m.emails) > 0 && m.selectedIdx >= 0 && m.selectedIdx < len(m.emails) {
			oldSelectedID = m.emails[m.selectedIdx].ID
		}

		m.emails = msg.Emails
		m.stats = msg.Stats

		m.selectedIdx = 0
		if oldSelectedID != "" {
			for i, e := range m.emails {
				if e.ID == oldSelectedID {
					m.selectedIdx = i
					break
				}
			}
		}
		if m.selectedIdx >= len(m.emails) && len(m.emails) > 0 {
			m.selectedIdx = len(m.emails) - 1
		}

		if m.currentView == viewLoading && m.width > 0 {
			m.currentView = viewDashboard
			m.setStandardStatus()
		} else {
			m.showTemporaryStatus(fmt.Sprintf("Inbox updated: %d tasks", len(m.emails)), 4*time.Second, &cmds)
		}
		m.ensureSelectedVisible()
		cmds = append(cmds, waitForResultCmd(m.results))

	case MonitorStoppedMsg:
		m.monitorIsDone = true
		if m.currentView == viewLoading {
			m.currentView = viewDashboard
			m.updateStatusBar("Monitoring stopped. No new emails will be fetched.")
		} else if !m.statusIsTemp {
			m.setStandardStatus()
		}

	case ErrorMsg:
		m.err = msg.Err
		m.updateStatusError(fmt.Sprintf("Error: %v", msg.Err))

	case StatusTickMsg:
		if !m.statusIsTemp && m.currentView != viewLoading {
			m.setStandardStatus()
		}
		cmds = append(cmds, statusTickCmd(1*time.Second))

	case clearTempStatusMsg:
		if m.statusIsTemp {
			m.statusIsTemp = false
			m.setStandardStatus()
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) showTemporaryStatus(text string, duration time.Duration, cmds *[]tea.Cmd) {
	m.statusBarText = text
	m.statusIsError = false
	m.statusIsTemp = true
	*cmds = append(*cmds, tea.Tick(duration, func(t time.Time) tea.Msg {
		return clearTempStatusMsg{}
	}))
}

func (m *Model) updateStatusBar(text string) {
	m.statusBarText = text
	m.statusIsError = false
	m.statusIsTemp = false
}

func (m *Model) updateStatusError(text string) {
	m.statusBarText = text
	m.statusIsError = true
	m.statusIsTemp = false
}

func (m *Model) setStandardStatus() {
	if m.statusIsTemp {
		return
	}

	monitorStatus := "Watching"
	if m.monitorIsDone {
		monitorStatus = "Monitor Off"
	}

	statusMsg := fmt.Sprintf(" %s (Poll: %v) | %d tasks: %d interviews, %d tests, %d shortlists ",
		monitorStatus, m.apiPollInterval,
		m.stats.Total, m.stats.Interviews, m.stats.Tests, m.stats.Shortlists)

	keyHints := "[Q/Ctrl+C]:Quit"
	switch m.currentView {
	case viewDashboard:
		keyHints += " | [↑↓/jk]:Nav | [Enter]:Full | [KJ]:Scroll Preview"
	case viewFocusedEmail:
		keyHints += " | [Esc]:Back"
	case viewLoading:
		keyHints = "[Q/Ctrl+C]:Quit"
	}
	m.updateStatusBar(statusMsg + "| " + keyHints)
}

func (m *Model) ensureSelectedVisible() {
	if len(m.emails) == 0 {
		m.viewportTopLine = 0
		return
	}

	itemsThatFit := m.getNumItemsThatFitInList()
	if itemsThatFit <= 0 {
		m.viewportTopLine = m.selectedIdx
		return
	}

	if m.selectedIdx < m.viewportTopLine {
		m.viewportTopLine = m.selectedIdx
	} else if m.selectedIdx >= m.viewportTopLine+itemsThatFit {
		m.viewportTopLine = m.selectedIdx - itemsThatFit + 1
	}

	if m.viewportTopLine < 0 {
		m.viewportTopLine = 0
	}
	maxPossibleViewportTop := len(m.emails) - itemsThatFit
	if maxPossibleViewportTop < 0 {
		maxPossibleViewportTop = 0
	}
	if m.viewportTopLine > maxPossibleViewportTop {
		m.viewportTopLine = maxPossibleViewportTop
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing terminal size..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n   Application Error: %v\n\n   Press Ctrl+C to quit.", m.err)
	}

	var mainUIView string
	statusBarHeight := 1
	contentHeight := m.height - statusBarHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	switch m.currentView {
	case viewLoading:
		loadingText := "Scanning your inbox..."
		if m.statusBarText != "" {
			loadingText = m.statusBarText
		}
		mainUIView = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, loadingText)
	case viewDashboard:
		listPaneTargetWidth := int(float64(m.width) * 0.35)
		actualListPaneWidth := listPaneTargetWidth
		if actualListPaneWidth < minListPaneWidth {
			actualListPaneWidth = minListPaneWidth
		}
		if actualListPaneWidth > m.width-minPreviewPaneWidth && m.width > minPreviewPaneWidth {
			actualListPaneWidth = m.width - minPreviewPaneWidth
		}
		if actualListPaneWidth < 0 {
			actualListPaneWidth = 0
		}
		if actualListPaneWidth > m.width {
			actualListPaneWidth = m.width
		}

		actualPreviewPaneWidth := m.width - actualListPaneWidth
		if actualPreviewPaneWidth < 0 {
			actualPreviewPaneWidth = 0
		}

		if m.width < minListPaneWidth+minPreviewPaneWidth {
			if m.width < minListPaneWidth {
				actualListPaneWidth = m.width
				actualPreviewPaneWidth = 0
			} else {
				actualListPaneWidth = minListPaneWidth
				actualPreviewPaneWidth = m.width - actualListPaneWidth
			}
		}

		taskListRendered := m.renderTaskList(actualListPaneWidth, contentHeight)
		previewPaneRendered := m.renderPreviewPane(actualPreviewPaneWidth, contentHeight)

		mainUIView = lipgloss.JoinHorizontal(lipgloss.Top, taskListRendered, previewPaneRendered)

	case viewFocusedEmail:
		mainUIView = m.renderFocusedEmailView(m.width, contentHeight)
	}

	statusBarRendered := m.renderStatusBar()
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mainUIView, statusBarRendered))
}

func (m Model) renderStatusBar() string {
	styleToUse := StatusBarNormalStyle
	if m.statusIsError {
		styleToUse = StatusBarErrorStyle
	} else if m.statusIsTemp {
		styleToUse = StatusBarSuccessStyle
	}
	return styleToUse.Width(m.width).Render(truncate(m.statusBarText, m.width))
}
