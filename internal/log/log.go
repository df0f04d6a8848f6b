// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// InitLogger sets up Apex with the line handler and a log level taken from the
// CLIWIRE_LOG env variable. Output goes to stderr so that discovery chatter
// never mixes with command output.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("CLIWIRE_LOG"))
	SetLevel(envLevel)
	log.SetHandler(NewLineHandler(os.Stderr))
}

// SetLevel maps a textual level to apex levels. Unknown values fall back to
// error.
func SetLevel(level string) {
	traceEnabled = level == "trace"
	var apexLevel log.Level
	switch level {
	case "trace", "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.ErrorLevel
	}
	log.SetLevel(apexLevel)
}

// LineHandler formats each entry on a single line:
// "<timestamp> <level letter> <message> [k=v ...]".
type LineHandler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineHandler returns a LineHandler writing to w.
func NewLineHandler(w io.Writer) *LineHandler {
	return &LineHandler{w: w}
}

// HandleLog implements the log.Handler interface.
func (h *LineHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s %s %s%s\n", timestamp, level, message, fields.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields map[string]interface{}) *log.Entry {
	return log.WithFields(log.Fields(fields))
}
