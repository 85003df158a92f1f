package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		level     string
		wantLevel zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			if got := New(&bytes.Buffer{}, tc.level).GetLevel(); got != tc.wantLevel {
				t.Errorf("New(%q).GetLevel() = %v, want %v", tc.level, got, tc.wantLevel)
			}
		})
	}
}

func TestNew_Writes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	log.Debug().Msg("hidden")
	log.Info().Str("key", "value").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "info")
	log.Info().Msg("hello")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"message":"hello"`) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewJSON(&buf, "info"))
	log := FromContext(ctx)
	log.Info().Msg("from context")
	if buf.Len() == 0 {
		t.Error("expected output from the logger stored in the context")
	}

	nop := FromContext(context.Background())
	if nop.GetLevel() != zerolog.Disabled {
		t.Errorf("FromContext(empty) level = %v, want disabled", nop.GetLevel())
	}
}
