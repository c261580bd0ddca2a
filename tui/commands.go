package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sarthakds/admitdesk/pipeline"
)

// waitForResultCmd listens on the pipeline channel and delivers the next
// fetch cycle. It re-queues itself from Update until the channel closes.
func waitForResultCmd(results <-chan pipeline.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return MonitorStoppedMsg{}
		}
		return ResultMsg(res)
	}
}

// statusTickCmd creates a ticker for updating the status bar.
func statusTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return StatusTickMsg{Time: t}
	})
}
