// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler_Levels(t *testing.T) {
	tests := []struct {
		level log.Level
		msg   string
		want  string
	}{
		{log.DebugLevel, "loaded", " D loaded\n"},
		{log.InfoLevel, "stale", " I stale\n"},
		{log.WarnLevel, "bad header", " W bad header\n"},
		{log.ErrorLevel, "flush failed", " E flush failed\n"},
		{log.DebugLevel, "TRACE: resolve", " T resolve\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(&buf)

			err := h.HandleLog(&log.Entry{Level: tt.level, Message: tt.msg})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestCustomHandler_ErrorField(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)

	err := h.HandleLog(&log.Entry{
		Level:   log.ErrorLevel,
		Message: "flush failed",
		Fields:  log.Fields{"error": errors.New("disk full")},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "flush failed: error=disk full")
}

func TestInitLogger_Levels(t *testing.T) {
	tests := []struct {
		env   string
		trace bool
	}{
		{"", false},
		{"trace", true},
		{"DEBUG", false},
		{"bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvLevel, tt.env)
			InitLogger()
			assert.Equal(t, tt.trace, traceEnabled)
		})
	}
}
