package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("factorcalc", []string{"25852"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Strategy != StrategyAuto {
		t.Errorf("Strategy = %q, want %q", cfg.Strategy, StrategyAuto)
	}
	if cfg.TablesDir != "." {
		t.Errorf("TablesDir = %q, want %q", cfg.TablesDir, ".")
	}
	if cfg.Timeout != 5*time.Minute {
		t.Errorf("Timeout = %v, want 5m", cfg.Timeout)
	}
	if cfg.Concurrency < 1 {
		t.Errorf("Concurrency = %d, want >= 1", cfg.Concurrency)
	}
	if len(cfg.Inputs) != 1 || cfg.Inputs[0] != "25852" {
		t.Errorf("Inputs = %v, want [25852]", cfg.Inputs)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-strategy", "trial",
		"-tables", "/opt/tables",
		"-timeout", "30s",
		"-concurrency", "2",
		"-v",
		"-stats",
		"3^20", "97",
	}
	cfg, err := ParseConfig("factorcalc", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Strategy != StrategyTrial {
		t.Errorf("Strategy = %q, want trial", cfg.Strategy)
	}
	if cfg.TablesDir != "/opt/tables" {
		t.Errorf("TablesDir = %q, want /opt/tables", cfg.TablesDir)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Concurrency)
	}
	if !cfg.Verbose || !cfg.ShowStats {
		t.Error("expected -v and -stats to be set")
	}
	if len(cfg.Inputs) != 2 {
		t.Errorf("Inputs = %v, want two entries", cfg.Inputs)
	}
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no inputs", []string{}},
		{"bad strategy", []string{"-strategy", "magic", "97"}},
		{"zero concurrency", []string{"-concurrency", "0", "97"}},
		{"negative timeout", []string{"-timeout", "-5s", "97"}},
		{"quiet and verbose", []string{"-q", "-v", "97"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("factorcalc", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("factorcalc", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("error = %v, want flag.ErrHelp", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env fills in unset flags", func(t *testing.T) {
		t.Setenv(EnvPrefix+"STRATEGY", "rho")
		t.Setenv(EnvPrefix+"TIMEOUT", "90s")
		t.Setenv(EnvPrefix+"VERBOSE", "yes")

		cfg, err := ParseConfig("factorcalc", []string{"97"}, io.Discard)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.Strategy != StrategyRho {
			t.Errorf("Strategy = %q, want rho", cfg.Strategy)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
		}
		if !cfg.Verbose {
			t.Error("expected FACTORCALC_VERBOSE to apply")
		}
	})

	t.Run("explicit flags beat the environment", func(t *testing.T) {
		t.Setenv(EnvPrefix+"STRATEGY", "rho")

		cfg, err := ParseConfig("factorcalc", []string{"-strategy", "trial", "97"}, io.Discard)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.Strategy != StrategyTrial {
			t.Errorf("Strategy = %q, want trial (flag wins)", cfg.Strategy)
		}
	})

	t.Run("invalid env values are ignored", func(t *testing.T) {
		t.Setenv(EnvPrefix+"TIMEOUT", "soon")
		t.Setenv(EnvPrefix+"CONCURRENCY", "many")

		cfg, err := ParseConfig("factorcalc", []string{"97"}, io.Discard)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.Timeout != 5*time.Minute {
			t.Errorf("Timeout = %v, want the default", cfg.Timeout)
		}
	})
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
