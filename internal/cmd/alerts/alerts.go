// Package alerts prints short status notices from commands, such as the
// result of an add or a sync.
package alerts

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/agentstation/quotebook/internal/cmd/emoji"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure.
	LevelError Level = iota
	// LevelWarning indicates a notice the user should read.
	LevelWarning
	// LevelInfo indicates general information.
	LevelInfo
	// LevelSuccess indicates a completed operation.
	LevelSuccess
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Error
	case LevelWarning:
		return emoji.Warning
	case LevelInfo:
		return emoji.Info
	case LevelSuccess:
		return emoji.Success
	default:
		return emoji.Unknown
	}
}

func (l Level) color() *color.Color {
	switch l {
	case LevelError:
		return color.New(color.FgRed)
	case LevelWarning:
		return color.New(color.FgYellow)
	case LevelSuccess:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}

// Alert is a status notice.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates an alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message, Timestamp: time.Now()}
}

// NewError creates an error alert.
func NewError(message string) *Alert { return New(LevelError, message) }

// NewWarning creates a warning alert.
func NewWarning(message string) *Alert { return New(LevelWarning, message) }

// NewInfo creates an info alert.
func NewInfo(message string) *Alert { return New(LevelInfo, message) }

// NewSuccess creates a success alert.
func NewSuccess(message string) *Alert { return New(LevelSuccess, message) }

// WithError attaches an underlying error.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends indented detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the icon and message.
func (a *Alert) String() string {
	message := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}
