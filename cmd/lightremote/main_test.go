package main

import (
	"testing"

	"github.com/dshills/lightremote/internal/config"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	applyFlags(cfg, options{scriptPath: "x.lua", logFormat: "json"})

	if cfg.Script != "x.lua" {
		t.Errorf("Script = %q", cfg.Script)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("empty flag overrode level: %q", cfg.Logging.Level)
	}
	if cfg.Interactive {
		t.Error("Interactive should stay false")
	}

	applyFlags(cfg, options{interactive: true, logLevel: "error"})
	if !cfg.Interactive || cfg.Logging.Level != "error" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestApplyFlagsModeOverridesConfig(t *testing.T) {
	tests := []struct {
		name            string
		cfgScript       string
		cfgInteractive  bool
		opts            options
		wantScript      string
		wantInteractive bool
	}{
		{"script flag over interactive config", "", true, options{scriptPath: "evening.lua"}, "evening.lua", false},
		{"interactive flag over script config", "night.lua", false, options{interactive: true}, "", true},
		{"no mode flag keeps config", "night.lua", false, options{logLevel: "info"}, "night.lua", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Script = tt.cfgScript
			cfg.Interactive = tt.cfgInteractive

			applyFlags(cfg, tt.opts)

			if cfg.Script != tt.wantScript || cfg.Interactive != tt.wantInteractive {
				t.Errorf("Script=%q Interactive=%v, want %q %v",
					cfg.Script, cfg.Interactive, tt.wantScript, tt.wantInteractive)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestApplyFlagsOverEnvironment(t *testing.T) {
	loader := config.NewLoader(config.WithEnvironment(map[string]string{
		"LIGHTREMOTE_INTERACTIVE": "true",
	}))
	cfg, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	applyFlags(cfg, options{scriptPath: "evening.lua"})

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Interactive {
		t.Error("script flag should clear interactive")
	}
}
