package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New(false)
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("New(false) level = %v, expected info", log.GetLevel())
	}
	if New(true).GetLevel() != zerolog.DebugLevel {
		t.Error("New(true) should log at debug level")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, false)

	log.Info().Msg("test message")
	log.Debug().Msg("hidden")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
	if strings.Contains(output, "hidden") {
		t.Errorf("Debug message written at info level: %s", output)
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format   string
		wantJSON bool
	}{
		{"json", true},
		{"console", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := ForFormat(buf, tt.format, false)
			l.Info().Str("party", "Ramesh").Msg("entry added")

			var fields map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &fields) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("ForFormat(%q) JSON output = %v, expected %v: %s", tt.format, isJSON, tt.wantJSON, buf.String())
			}
			if isJSON && fields["message"] != "entry added" {
				t.Errorf("message = %v, expected entry added", fields["message"])
			}
			if !strings.Contains(buf.String(), "Ramesh") {
				t.Errorf("output is missing the party field: %s", buf.String())
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, true))

	retrieved := FromContext(ctx)
	retrieved.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("FromContext() without logger level = %v, expected disabled", log.GetLevel())
	}
}
