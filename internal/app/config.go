package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"flowergame/internal/flower"
)

// SimConfig holds the settings of the simulation command.
type SimConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	LogFile string `yaml:"logfile"`
	Backend string `yaml:"backend"`
	Seed    int64  `yaml:"seed"`

	ConfigPath string `yaml:"-"`
}

// NewSimConfig returns a SimConfig populated with defaults.
func NewSimConfig() *SimConfig {
	return &SimConfig{LogFile: "game_log.db", Backend: "sqlite"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *SimConfig) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.LogFile, "logfile", c.LogFile, "log file for game states")
	fs.StringVar(&c.Backend, "backend", c.Backend, "snapshot store backend (sqlite, memory)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "optional YAML file with default settings")
}

// Parse binds, parses args and applies the optional YAML file. Explicit flags
// and positional width/height win over file values.
func (c *SimConfig) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.ConfigPath != "" {
		var file SimConfig
		if err := loadYAML(c.ConfigPath, &file); err != nil {
			return err
		}
		set := visited(fs)
		if !set["logfile"] && file.LogFile != "" {
			c.LogFile = file.LogFile
		}
		if !set["backend"] && file.Backend != "" {
			c.Backend = file.Backend
		}
		if !set["seed"] && file.Seed != 0 {
			c.Seed = file.Seed
		}
		c.Width, c.Height = file.Width, file.Height
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
		if c.ConfigPath == "" {
			return errors.New("usage: flowergame [flags] width height")
		}
	case 2:
		w, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("width: %w", err)
		}
		h, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("height: %w", err)
		}
		c.Width, c.Height = w, h
	default:
		return fmt.Errorf("expected width and height, got %d positional arguments", len(rest))
	}
	return c.Validate()
}

// Validate rejects board sizes the grid cannot hold.
func (c *SimConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", flower.ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

// EffectiveSeed returns Seed, or a clock-derived seed when Seed is zero.
func (c *SimConfig) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// ViewConfig holds the settings of the visualization command.
type ViewConfig struct {
	LogFile  string `yaml:"logfile"`
	Interval int    `yaml:"interval"`
	Output   string `yaml:"output"`
	Scale    int    `yaml:"scale"`
	Run      string `yaml:"run"`
	Seed     int64  `yaml:"seed"`

	ConfigPath string `yaml:"-"`
}

// NewViewConfig returns a ViewConfig populated with defaults.
func NewViewConfig() *ViewConfig {
	return &ViewConfig{Interval: 200, Scale: 8}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *ViewConfig) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Interval, "interval", c.Interval, "interval between frames in milliseconds")
	fs.StringVar(&c.Output, "output", c.Output, "output file for the animation (e.g. animation.gif)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.StringVar(&c.Run, "run", c.Run, "run id to replay (default latest)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for species colors (0 picks one from the clock)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "optional YAML file with default settings")
}

// Parse binds, parses args and applies the optional YAML file. Explicit flags
// and the positional log file win over file values.
func (c *ViewConfig) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.ConfigPath != "" {
		var file ViewConfig
		if err := loadYAML(c.ConfigPath, &file); err != nil {
			return err
		}
		set := visited(fs)
		if file.LogFile != "" {
			c.LogFile = file.LogFile
		}
		if !set["interval"] && file.Interval > 0 {
			c.Interval = file.Interval
		}
		if !set["output"] && file.Output != "" {
			c.Output = file.Output
		}
		if !set["scale"] && file.Scale > 0 {
			c.Scale = file.Scale
		}
		if !set["run"] && file.Run != "" {
			c.Run = file.Run
		}
		if !set["seed"] && file.Seed != 0 {
			c.Seed = file.Seed
		}
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		c.LogFile = rest[0]
	default:
		return fmt.Errorf("expected a single log file, got %d positional arguments", len(rest))
	}
	if c.LogFile == "" {
		return errors.New("usage: animate [flags] logfile")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", c.Interval)
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	return nil
}

// FrameInterval converts Interval to a duration.
func (c *ViewConfig) FrameInterval() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

// EffectiveSeed returns Seed, or a clock-derived seed when Seed is zero.
func (c *ViewConfig) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// ScreenSize returns the window size for a w x h board drawn at scale with a
// status panel of hudWidth pixels on its right.
func ScreenSize(w, h, scale, hudWidth int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	if hudWidth < 0 {
		hudWidth = 0
	}
	return w*scale + hudWidth, h * scale
}

func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config YAML from %s: %w", path, err)
	}
	return nil
}

func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
