package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No explicit path and no canopy.toml in a fresh directory.
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\"): %v", err)
	}
	want := defaultConfig()
	if cfg != want {
		t.Errorf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.toml")
	data := `
[style]
fill = "#ffffff"

[layout]
gap = 32
direction = "LR"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Style.Fill != "#ffffff" {
		t.Errorf("fill = %q, want overridden value", cfg.Style.Fill)
	}
	if cfg.Layout.Gap != 32 {
		t.Errorf("gap = %g, want 32", cfg.Layout.Gap)
	}
	// Unset keys keep their defaults.
	if cfg.Style.Border != defaultConfig().Style.Border {
		t.Errorf("border = %q, want default", cfg.Style.Border)
	}
	if cfg.Layout.ChildWidth != defaultConfig().Layout.ChildWidth {
		t.Errorf("child_width = %g, want default", cfg.Layout.ChildWidth)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("got %v, want INVALID_CONFIG for a missing explicit path", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"negative gap", "[layout]\ngap = -1\n"},
		{"zero child size", "[layout]\nchild_width = 0\n"},
		{"bad direction", "[layout]\ndirection = \"UP\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "canopy.toml")
			if err := os.WriteFile(path, []byte(tt.toml), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := loadConfig(path)
			if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
				t.Errorf("got %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigDirection(t *testing.T) {
	cfg := defaultConfig()
	cfg.Layout.Direction = "LR"

	// An empty flag falls back to the config's layout.direction.
	got, err := cfg.direction("")
	if err != nil {
		t.Fatalf("direction(\"\"): %v", err)
	}
	if got != descriptor.LR {
		t.Errorf("direction(\"\") = %v, want LR from config", got)
	}

	// An explicit flag wins over the config.
	got, err = cfg.direction("top")
	if err != nil {
		t.Fatalf("direction(\"top\"): %v", err)
	}
	if got != descriptor.DT {
		t.Errorf("direction(\"top\") = %v, want DT", got)
	}

	if _, err := cfg.direction("diagonal"); err == nil {
		t.Error("direction should reject an unknown flag value")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    descriptor.Direction
		wantErr bool
	}{
		{"right", descriptor.LR, false},
		{"left", descriptor.RL, false},
		{"bottom", descriptor.TD, false},
		{"down", descriptor.TD, false},
		{"top", descriptor.DT, false},
		{"up", descriptor.DT, false},
		{"LR", descriptor.LR, false},
		{"td", descriptor.TD, false},
		{"diagonal", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := parseDirection(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDirection(%q) err = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDirection(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("40,72.5")
	if err != nil {
		t.Fatalf("parsePoint: %v", err)
	}
	if p.X != 40 || p.Y != 72.5 {
		t.Errorf("got (%g, %g), want (40, 72.5)", p.X, p.Y)
	}

	if _, err := parsePoint("40;60"); err == nil {
		t.Error("parsePoint should reject a malformed pair")
	}
}

func TestParseSize(t *testing.T) {
	sz, err := parseSize("120x48")
	if err != nil {
		t.Fatalf("parseSize: %v", err)
	}
	if sz.Width != 120 || sz.Height != 48 {
		t.Errorf("got %gx%g, want 120x48", sz.Width, sz.Height)
	}

	if _, err := parseSize("120,48"); err == nil {
		t.Error("parseSize should reject a malformed pair")
	}
	if _, err := parseSize("0x48"); err == nil {
		t.Error("parseSize should reject non-positive dimensions")
	}
}
