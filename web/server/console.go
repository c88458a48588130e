package server

import (
	"fmt"
	"time"

	"github.com/df07/go-raycaster/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// WebLogger implements log.Logger by forwarding every message to the server log
// and copying it to a console channel for the client.
type WebLogger struct {
	renderID    string
	base        log.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, base log.Logger, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		base:        base,
		consoleChan: consoleChan,
	}
}

// send copies a message to the console channel without blocking
func (wl *WebLogger) send(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip (don't block)
	}
}

func (wl *WebLogger) Debug(v ...interface{}) {
	wl.base.Debug(v...)
	wl.send("debug", fmt.Sprint(v...))
}

func (wl *WebLogger) Debugf(format string, v ...interface{}) {
	wl.base.Debugf(format, v...)
	wl.send("debug", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Info(v ...interface{}) {
	wl.base.Info(v...)
	wl.send("info", fmt.Sprint(v...))
}

func (wl *WebLogger) Infof(format string, v ...interface{}) {
	wl.base.Infof(format, v...)
	wl.send("info", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Notice(v ...interface{}) {
	wl.base.Notice(v...)
	wl.send("notice", fmt.Sprint(v...))
}

func (wl *WebLogger) Noticef(format string, v ...interface{}) {
	wl.base.Noticef(format, v...)
	wl.send("notice", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Warning(v ...interface{}) {
	wl.base.Warning(v...)
	wl.send("warning", fmt.Sprint(v...))
}

func (wl *WebLogger) Warningf(format string, v ...interface{}) {
	wl.base.Warningf(format, v...)
	wl.send("warning", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Error(v ...interface{}) {
	wl.base.Error(v...)
	wl.send("error", fmt.Sprint(v...))
}

func (wl *WebLogger) Errorf(format string, v ...interface{}) {
	wl.base.Errorf(format, v...)
	wl.send("error", fmt.Sprintf(format, v...))
}
