package segscroll

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func TestParseConfig(t *testing.T) {
	t.Run("empty input gives defaults", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("fields override defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("policy: page-on-touch\naxis: horizontal\nepsilon: 1.5\nlogging:\n  level: debug\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Policy != PageOwnsOverscrollOnTouch {
			t.Errorf("expected page-on-touch, got %s", cfg.Policy)
		}
		if cfg.Axis != Horizontal {
			t.Errorf("expected horizontal, got %s", cfg.Axis)
		}
		if cfg.Epsilon != 1.5 {
			t.Errorf("expected 1.5, got %v", cfg.Epsilon)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug, got %q", cfg.Logging.Level)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		if _, err := ParseConfig([]byte("bounce: yes\n")); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("unknown policy rejected", func(t *testing.T) {
		_, err := ParseConfig([]byte("policy: sideways\n"))
		if err == nil || !strings.Contains(err.Error(), "sideways") {
			t.Errorf("expected error naming the policy, got %v", err)
		}
	})

	t.Run("every invalid field reported", func(t *testing.T) {
		_, err := ParseConfig([]byte("epsilon: -1\nlogging:\n  level: loud\n"))
		if err == nil {
			t.Fatal("expected error")
		}
		if n := len(multierr.Errors(err)); n != 2 {
			t.Errorf("expected 2 errors, got %d: %v", n, err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segscroll.yaml")
	if err := os.WriteFile(path, []byte("policy: page-at-root-edge\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Policy != PageOwnsOverscrollAtRootEdge {
		t.Errorf("expected page-at-root-edge, got %s", cfg.Policy)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigDump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PageOwnsOverscrollOnTouch
	out, err := cfg.Dump()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "policy: page-on-touch") || !strings.Contains(string(out), "axis: vertical") {
		t.Errorf("expected names in output, got:\n%s", out)
	}

	back, err := ParseConfig(out)
	if err != nil {
		t.Fatalf("unexpected error reading dump back: %v", err)
	}
	if back != cfg {
		t.Errorf("expected %+v, got %+v", cfg, back)
	}
}

func TestConfigNewCoordinator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PageOwnsOverscrollAtRootEdge
	cfg.Axis = Horizontal
	c := cfg.NewCoordinator(zaptest.NewLogger(t))
	if c.Policy() != PageOwnsOverscrollAtRootEdge || c.Axis() != Horizontal {
		t.Errorf("expected page-at-root-edge horizontal, got %s %s", c.Policy(), c.Axis())
	}
}
