package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/descriptor"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/tree"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given. A missing file silently falls back to the defaults.
const defaultConfigFile = "canopy.toml"

// Config carries every styling and geometry knob the commands use.
// There are no ambient style globals; the config value travels explicitly
// into the tree operations.
type Config struct {
	Style  styleConfig  `toml:"style"`
	Line   lineConfig   `toml:"line"`
	Layout layoutConfig `toml:"layout"`
}

type styleConfig struct {
	Fill        string  `toml:"fill"`
	Border      string  `toml:"border"`
	BorderWidth float64 `toml:"border_width"`
	FontFamily  string  `toml:"font_family"`
	FontSize    float64 `toml:"font_size"`
	FontColor   string  `toml:"font_color"`
}

type lineConfig struct {
	Color  string  `toml:"color"`
	Width  float64 `toml:"width"`
	Dashed bool    `toml:"dashed"`
	Arrow  bool    `toml:"arrow"`
}

type layoutConfig struct {
	Gap         float64 `toml:"gap"`
	ChildWidth  float64 `toml:"child_width"`
	ChildHeight float64 `toml:"child_height"`
	Direction   string  `toml:"direction"`
}

// defaultConfig returns the built-in defaults: a blue-on-white rectangle
// style, solid arrowed connectors, 20pt gaps and 120x48pt children growing
// downward.
func defaultConfig() Config {
	return Config{
		Style: styleConfig{
			Fill:        "#dbe9f9",
			Border:      "#4a78a8",
			BorderWidth: 1,
			FontFamily:  "Arial",
			FontSize:    12,
			FontColor:   "#1a2733",
		},
		Line: lineConfig{
			Color: "#4a78a8",
			Width: 1,
			Arrow: true,
		},
		Layout: layoutConfig{
			Gap:         20,
			ChildWidth:  120,
			ChildHeight: 48,
			Direction:   string(descriptor.TD),
		},
	}
}

// loadConfig reads a TOML config file, overlaying the defaults. An empty
// path tries canopy.toml in the working directory and falls back to the
// defaults when it does not exist; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Layout.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.gap must not be negative, got %g", c.Layout.Gap)
	}
	if c.Layout.ChildWidth <= 0 || c.Layout.ChildHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.child_width and layout.child_height must be positive, got %gx%g",
			c.Layout.ChildWidth, c.Layout.ChildHeight)
	}
	if dir := descriptor.Direction(c.Layout.Direction); !dir.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.direction must be one of LR, RL, TD, DT, got %q", c.Layout.Direction)
	}
	return nil
}

// visualStyle converts the config's style section into the canvas type.
func (c Config) visualStyle() canvas.VisualStyle {
	return canvas.VisualStyle{
		Fill:        c.Style.Fill,
		Border:      c.Style.Border,
		BorderWidth: c.Style.BorderWidth,
		FontFamily:  c.Style.FontFamily,
		FontSize:    c.Style.FontSize,
		FontColor:   c.Style.FontColor,
	}
}

// lineStyle converts the config's line section into the canvas type.
func (c Config) lineStyle() canvas.LineStyle {
	return canvas.LineStyle{
		Color:  c.Line.Color,
		Width:  c.Line.Width,
		Dashed: c.Line.Dashed,
		Arrow:  c.Line.Arrow,
	}
}

// treeOptions converts the config into the tree operation options.
func (c Config) treeOptions() tree.Options {
	return tree.Options{
		Gap:       c.Layout.Gap,
		ChildSize: layout.Size{Width: c.Layout.ChildWidth, Height: c.Layout.ChildHeight},
		Line:      c.lineStyle(),
	}
}

// direction resolves the growth direction for a command: an explicit flag
// value wins, an empty flag falls back to the config's layout.direction.
func (c Config) direction(flag string) (descriptor.Direction, error) {
	if flag == "" {
		return descriptor.Direction(c.Layout.Direction), nil
	}
	return parseDirection(flag)
}

// parseDirection maps a user-supplied direction word (right, left, top,
// bottom, or a literal LR/RL/TD/DT tag) to a layout direction.
func parseDirection(s string) (descriptor.Direction, error) {
	switch s {
	case "right", "LR", "lr":
		return descriptor.LR, nil
	case "left", "RL", "rl":
		return descriptor.RL, nil
	case "bottom", "down", "TD", "td":
		return descriptor.TD, nil
	case "top", "up", "DT", "dt":
		return descriptor.DT, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unknown direction %q (use right, left, top, bottom)", s)
}

// formatRect renders bounds for log output, e.g. "120x48 @ (40, 60)".
func formatRect(r layout.Rect) string {
	return fmt.Sprintf("%gx%g @ (%g, %g)", r.Width, r.Height, r.Left, r.Top)
}
