package config

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/lightremote/internal/light"
	"github.com/dshills/lightremote/internal/remote"
)

// MemFS is an in-memory file system for testing.
type MemFS map[string]string

func (m MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func newTestLoader(files MemFS, environ map[string]string) *Loader {
	if environ == nil {
		environ = map[string]string{}
	}
	return NewLoader(WithFS(files), WithEnvironment(environ))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := newTestLoader(MemFS{}, nil).Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestDefaultMessagesMatchComponents(t *testing.T) {
	want := MessagesConfig{
		On:            light.MessageOn,
		Off:           light.MessageOff,
		NothingToUndo: remote.MessageNothingToUndo,
	}
	if diff := cmp.Diff(want, Default().Messages); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	files := MemFS{"remote.toml": `
script = "evening.lua"

[light]
name = "kitchen"

[messages]
on = "Kitchen lit."

[history]
max_entries = 10

[logging]
level = "debug"
format = "json"
`}

	cfg, err := newTestLoader(files, nil).Load("remote.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Script = "evening.lua"
	want.Light.Name = "kitchen"
	want.Messages.On = "Kitchen lit."
	want.History.MaxEntries = 10
	want.Logging = LoggingConfig{Level: "debug", Format: "json"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	files := MemFS{"remote.yml": `
light:
  name: porch
messages:
  nothing_to_undo: "Nothing left."
interactive: true
`}

	cfg, err := newTestLoader(files, nil).Load("remote.yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Light.Name != "porch" || cfg.Messages.NothingToUndo != "Nothing left." || !cfg.Interactive {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Messages.On != "The light is ON." {
		t.Errorf("unset field lost its default: %q", cfg.Messages.On)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := newTestLoader(MemFS{"empty.yaml": ""}, nil).Load("empty.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Light.Name != "living-room" {
		t.Errorf("Light.Name = %q", cfg.Light.Name)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	files := MemFS{"remote.toml": `
[light]
name = "kitchen"

[history]
max_entries = 10
`}
	environ := map[string]string{
		"LIGHTREMOTE_LIGHT_NAME":          "garage",
		"LIGHTREMOTE_HISTORY_MAX_ENTRIES": "3",
		"LIGHTREMOTE_LOG_LEVEL":           "error",
		"LIGHTREMOTE_MESSAGES_OFF":        "Dark.",
		"UNRELATED":                       "x",
	}

	cfg, err := newTestLoader(files, environ).Load("remote.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Light.Name != "garage" {
		t.Errorf("Light.Name = %q, want garage", cfg.Light.Name)
	}
	if cfg.History.MaxEntries != 3 {
		t.Errorf("History.MaxEntries = %d, want 3", cfg.History.MaxEntries)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
	if cfg.Messages.Off != "Dark." {
		t.Errorf("Messages.Off = %q", cfg.Messages.Off)
	}
}

func TestLoadErrors(t *testing.T) {
	files := MemFS{
		"bad.toml":     "[light\nname = ",
		"unknown.toml": "[light]\ncolour = \"red\"\n",
		"bad.yaml":     "light: [unterminated",
		"remote.json":  "{}",
		"neg.toml":     "[history]\nmax_entries = -1\n",
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"missing file", "nope.toml", ErrFileNotFound},
		{"unsupported", "remote.json", ErrUnsupportedFormat},
		{"negative history", "neg.toml", ErrValidationFailed},
	}
	for _, tt := range tests {
		_, err := newTestLoader(files, nil).Load(tt.path)
		if !errors.Is(err, tt.target) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.target)
		}
	}

	for _, path := range []string{"bad.toml", "unknown.toml", "bad.yaml"} {
		_, err := newTestLoader(files, nil).Load(path)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected ParseError, got %v", path, err)
			continue
		}
		if perr.Path != path {
			t.Errorf("%s: ParseError.Path = %q", path, perr.Path)
		}
	}
}

func TestLoadBadEnv(t *testing.T) {
	environ := map[string]string{"LIGHTREMOTE_HISTORY_MAX_ENTRIES": "lots"}
	if _, err := newTestLoader(MemFS{}, environ).Load(""); err == nil {
		t.Error("expected error for non-numeric env value")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Light.Name = ""
	cfg.Messages.On = ""
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"
	cfg.Script = "x.lua"
	cfg.Interactive = true

	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Problems) != 5 {
		t.Errorf("got %d problems, want 5: %v", len(verr.Problems), verr.Problems)
	}
	if !strings.Contains(err.Error(), "5 problems") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
		{&ParseError{Path: "a.toml", Line: 2, Message: "bad"}, "parse error in a.toml at line 2: bad"},
		{&ParseError{Path: "a.toml", Line: 2, Column: 5, Message: "bad"}, "parse error in a.toml at line 2, column 5: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestLoadExampleFile(t *testing.T) {
	cfg, err := NewLoader(WithEnvironment(map[string]string{})).Load("../../remote.example.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("example file should match defaults (-want +got):\n%s", diff)
	}
}
