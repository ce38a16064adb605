package pipeline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigureLogger(t *testing.T) {
	testcases := []struct {
		name     string
		config   LogConfig
		expected string
	}{
		{
			name:     "message",
			config:   LogConfig{Output: "message"},
			expected: "hello\n",
		},
		{
			name:     "text without color",
			config:   LogConfig{Output: "text", Colors: map[logrus.Level]string{}},
			expected: "app.step ≫ hello\n",
		},
		{
			name:     "default output is text",
			config:   LogConfig{Colors: map[logrus.Level]string{}},
			expected: "app.step ≫ hello\n",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logrus.New()

			tc.config.Writer = &buf
			if err := ConfigureLogger(log, tc.config); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			log.WithFields(logrus.Fields{"app": "app", "step": "step"}).Info("hello")

			if buf.String() != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, buf.String())
			}
		})
	}
}

func TestConfigureLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()

	if err := ConfigureLogger(log, LogConfig{Output: "json", Writer: &buf}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.WithField("step", "pipe1").Info("hello")

	entry := map[string]interface{}{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" || entry["step"] != "pipe1" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestConfigureLoggerLevels(t *testing.T) {
	log := logrus.New()

	if err := ConfigureLogger(log, LogConfig{Level: "warn", Writer: &bytes.Buffer{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", log.GetLevel())
	}

	if err := ConfigureLogger(log, LogConfig{Level: "warn", Verbose: true, Writer: &bytes.Buffer{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected verbose to force debug level, got %s", log.GetLevel())
	}

	if err := ConfigureLogger(log, LogConfig{Level: "loud"}); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
	if err := ConfigureLogger(log, LogConfig{Output: "bunyan"}); err == nil {
		t.Errorf("expected an error for an unknown output format")
	}
}

func TestTextFormatterColors(t *testing.T) {
	f := newTextFormatter(DefaultLogColors, true)

	out, err := f.Format(&logrus.Entry{Level: logrus.InfoLevel, Message: "hi", Data: logrus.Fields{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(out, []byte("\x1b[36m")) {
		t.Errorf("expected cyan escape code in %q", out)
	}

	plain := newTextFormatter(DefaultLogColors, false)
	out, err = plain.Format(&logrus.Entry{Level: logrus.InfoLevel, Message: "hi", Data: logrus.Fields{"step": "pipe1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "pipe1 ≫ hi\n" {
		t.Errorf("unexpected output %q", out)
	}
}
