// Package config loads nodeseq settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/engine"
	"github.com/ingyamilmolinar/nodeseq/core/sim"
	"github.com/ingyamilmolinar/nodeseq/internal/audio"
)

type Config struct {
	LogLevel string        `yaml:"log_level"`
	Window   WindowConfig  `yaml:"window"`
	Sim      SimConfig     `yaml:"sim"`
	FX       FXConfig      `yaml:"fx"`
	Audio    AudioConfig   `yaml:"audio"`
	Spawner  SpawnerConfig `yaml:"spawner"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type SimConfig struct {
	BarDuration  float64 `yaml:"bar_duration"`   // seconds
	PixelsPerBar float64 `yaml:"pixels_per_bar"` // world units a signal covers per bar
	NodeRadius   float64 `yaml:"node_radius"`
	HoverRadius  float64 `yaml:"hover_radius"`
	EdgeMargin   float64 `yaml:"edge_margin"`
	DeleteCutoff float64 `yaml:"delete_cutoff"`
	CameraSpeed  float64 `yaml:"camera_speed"`
}

type FXConfig struct {
	Count      int     `yaml:"count"`
	SpeedMin   float64 `yaml:"speed_min"`
	SpeedMax   float64 `yaml:"speed_max"`
	Lifetime   float64 `yaml:"lifetime"`
	Turbulence float64 `yaml:"turbulence"`
	Seed       int64   `yaml:"seed"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	QueueSize  int     `yaml:"queue_size"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

type SpawnerConfig struct {
	BarDelay float64 `yaml:"bar_delay"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	ed := editor.DefaultConfig
	return Config{
		LogLevel: "INFO",
		Window:   WindowConfig{Width: 1280, Height: 720, Title: "nodeseq"},
		Sim: SimConfig{
			BarDuration:  engine.DefaultConfig.BarDuration,
			PixelsPerBar: engine.DefaultConfig.PixelsPerBar,
			NodeRadius:   ed.NodeRadius,
			HoverRadius:  ed.HoverRadius,
			EdgeMargin:   ed.EdgeMargin,
			DeleteCutoff: ed.DeleteCutoff,
			CameraSpeed:  engine.DefaultConfig.CameraSpeed,
		},
		FX: FXConfig{
			Count:    sim.DefaultBurst.Count,
			SpeedMin: sim.DefaultBurst.SpeedMin,
			SpeedMax: sim.DefaultBurst.SpeedMax,
			Lifetime: sim.DefaultBurst.Lifetime,
		},
		Audio: AudioConfig{
			Enabled:    audio.DefaultConfig.Enabled,
			QueueSize:  audio.DefaultConfig.QueueSize,
			SampleRate: audio.DefaultConfig.SampleRate,
			Volume:     audio.DefaultConfig.Volume,
		},
		Spawner: SpawnerConfig{BarDelay: 1},
	}
}

// Load reads path over the defaults. Unknown keys are errors. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}
	positive("window.width", float64(c.Window.Width))
	positive("window.height", float64(c.Window.Height))
	positive("sim.bar_duration", c.Sim.BarDuration)
	positive("sim.pixels_per_bar", c.Sim.PixelsPerBar)
	positive("sim.node_radius", c.Sim.NodeRadius)
	positive("sim.hover_radius", c.Sim.HoverRadius)
	positive("sim.delete_cutoff", c.Sim.DeleteCutoff)
	positive("fx.lifetime", c.FX.Lifetime)
	positive("spawner.bar_delay", c.Spawner.BarDelay)
	if c.Sim.EdgeMargin < 0 || c.Sim.EdgeMargin >= 1 {
		errs = append(errs, fmt.Errorf("sim.edge_margin must be in [0,1), got %g", c.Sim.EdgeMargin))
	}
	if c.Sim.CameraSpeed < 0 {
		errs = append(errs, fmt.Errorf("sim.camera_speed must not be negative, got %g", c.Sim.CameraSpeed))
	}
	if c.FX.Count < 0 {
		errs = append(errs, fmt.Errorf("fx.count must not be negative, got %d", c.FX.Count))
	}
	if c.FX.SpeedMin < 0 || c.FX.SpeedMax < c.FX.SpeedMin {
		errs = append(errs, fmt.Errorf("fx speed range [%g,%g] is invalid", c.FX.SpeedMin, c.FX.SpeedMax))
	}
	if c.Audio.Enabled {
		positive("audio.queue_size", float64(c.Audio.QueueSize))
		positive("audio.sample_rate", float64(c.Audio.SampleRate))
		if c.Audio.Volume <= 0 || c.Audio.Volume > 1 {
			errs = append(errs, fmt.Errorf("audio.volume must be in (0,1], got %g", c.Audio.Volume))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Engine maps the settings onto the frame driver's configuration.
func (c Config) Engine() engine.Config {
	return engine.Config{
		BarDuration:  c.Sim.BarDuration,
		PixelsPerBar: c.Sim.PixelsPerBar,
		CameraSpeed:  c.Sim.CameraSpeed,
		Editor: editor.Config{
			NodeRadius:   c.Sim.NodeRadius,
			HoverRadius:  c.Sim.HoverRadius,
			EdgeMargin:   c.Sim.EdgeMargin,
			DeleteCutoff: c.Sim.DeleteCutoff,
		},
		Burst: sim.Burst{
			Count:    c.FX.Count,
			SpeedMin: c.FX.SpeedMin,
			SpeedMax: c.FX.SpeedMax,
			Lifetime: c.FX.Lifetime,
		},
		Turbulence: c.FX.Turbulence,
		Seed:       c.FX.Seed,
	}
}

func (c Config) AudioService() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		QueueSize:  c.Audio.QueueSize,
		SampleRate: c.Audio.SampleRate,
		Volume:     c.Audio.Volume,
	}
}
