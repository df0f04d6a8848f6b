// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestLineHandler(t *testing.T) {
	tests := []struct {
		name   string
		level  log.Level
		msg    string
		fields log.Fields
		want   string
	}{
		{name: "debug", level: log.DebugLevel, msg: "hello", want: " D hello\n"},
		{name: "warn", level: log.WarnLevel, msg: "careful", want: " W careful\n"},
		{name: "trace prefix", level: log.DebugLevel, msg: "TRACE: deep", want: " T deep\n"},
		{name: "fields", level: log.InfoLevel, msg: "bound", fields: log.Fields{"module": "a.groups"}, want: " I bound module=a.groups\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewLineHandler(&buf)
			err := h.HandleLog(&log.Entry{Level: tt.level, Message: tt.msg, Fields: tt.fields})
			assert.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel("trace")
	assert.True(t, traceEnabled)

	SetLevel("warn")
	assert.False(t, traceEnabled)

	SetLevel("bogus")
	assert.False(t, traceEnabled)
}
