package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	for _, chunk := range []string{"first li", "ne\nsecond\nthi", "rd"} {
		if _, err := pw.Write([]byte(chunk)); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := out.String(), "> first line\n> second\n"; got != want {
		t.Errorf("before flush = %q, want %q", got, want)
	}

	if err := pw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "> first line\n> second\n> third"; got != want {
		t.Errorf("after flush = %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		cli      string
		env      string
		json     string
		level    string
		source   string
		wantJSON bool
	}{
		{name: "default", level: "info", source: "default"},
		{name: "env", env: "debug", level: "debug", source: EnvLogLevel},
		{name: "cli wins", cli: "trace", env: "debug", level: "trace", source: "CLI --log-level"},
		{name: "json prefix", cli: "json:warn", level: "warn", source: "CLI --log-level", wantJSON: true},
		{name: "bare json", cli: "json", level: "info", source: "CLI --log-level", wantJSON: true},
		{name: "json env", json: "1", level: "info", source: "default", wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.env)
			t.Setenv(EnvJSONLog, tt.json)
			t.Setenv(EnvLogPath, "")

			cfg := Resolve(tt.cli, "info")
			if cfg.Level != tt.level || cfg.Source != tt.source || cfg.JSON != tt.wantJSON {
				t.Errorf("Resolve(%q) = %+v", tt.cli, cfg)
			}
		})
	}
}

func TestNewTextAndJSON(t *testing.T) {
	var text bytes.Buffer
	New("binvid", Config{Level: "info"}, &text).Info("hello", "k", "v")
	if !strings.HasPrefix(text.String(), LinePrefix) || !strings.Contains(text.String(), "hello") {
		t.Errorf("text output = %q", text.String())
	}

	var js bytes.Buffer
	New("binvid", Config{Level: "info", JSON: true}, &js).Info("hello", "k", "v")
	var entry map[string]interface{}
	if err := json.Unmarshal(js.Bytes(), &entry); err != nil {
		t.Fatalf("json output %q: %v", js.String(), err)
	}
	if entry["@message"] != "hello" || entry["k"] != "v" {
		t.Errorf("json entry = %v", entry)
	}

	var quiet bytes.Buffer
	New("binvid", Config{Level: "error"}, &quiet).Info("hidden")
	if quiet.Len() != 0 {
		t.Errorf("info logged at error level: %q", quiet.String())
	}
}
