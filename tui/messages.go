package tui

import (
	"time"

	"github.com/sarthakds/admitdesk/pipeline"
)

// ResultMsg carries a completed fetch cycle into the UI.
type ResultMsg pipeline.Result

// ErrorMsg wraps an error surfaced from a command.
type ErrorMsg struct{ Err error }

func (e ErrorMsg) Error() string { return e.Err.Error() }

// StatusTickMsg drives the periodic status bar refresh.
type StatusTickMsg struct{ Time time.Time }

// MonitorStoppedMsg signals that the result channel closed and no more
// fetch cycles will arrive.
type MonitorStoppedMsg struct{}

// clearTempStatusMsg clears a temporary status message after its
// timeout.
type clearTempStatusMsg struct{}
