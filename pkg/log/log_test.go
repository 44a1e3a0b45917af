package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var out bytes.Buffer

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Setenv("LOG_LEVEL", "info")
	NewLogger().SetOutput(&out)
	os.Exit(m.Run())
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  logrus.Level
	}{
		{value: "warn", want: logrus.WarnLevel},
		{value: "ERROR", want: logrus.ErrorLevel},
		{value: "", want: logrus.DebugLevel},
		{value: "loud", want: logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.value)
		if got := levelFromEnv(); got != tt.want {
			t.Errorf("levelFromEnv(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if NewLogger().GetLevel() != logrus.InfoLevel {
		t.Errorf("singleton level = %v", NewLogger().GetLevel())
	}
}

func TestErrorWithTraceIDKeepsRequestID(t *testing.T) {
	out.Reset()

	traceID := ErrorWithTraceID(Fields{"request_id": "3EB0ABCDEF"}, "send failed")

	if traceID != "3EB0ABCDEF" {
		t.Errorf("trace id = %q", traceID)
	}
	if !strings.Contains(out.String(), "send failed") || !strings.Contains(out.String(), "3EB0ABCDEF") {
		t.Errorf("log output = %q", out.String())
	}
}

func TestErrorWithTraceIDGeneratesID(t *testing.T) {
	for _, fields := range []Fields{nil, {"request_id": "unknown"}, {"request_id": 42}} {
		traceID := ErrorWithTraceID(fields, "engine fault")
		if _, err := uuid.Parse(traceID); err != nil {
			t.Errorf("ErrorWithTraceID(%v) = %q, not a uuid", fields, traceID)
		}
	}
}
