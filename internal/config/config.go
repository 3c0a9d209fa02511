// Package config loads springdeck settings from YAML. Every tunable constant
// of the demos has a default here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/springdeck/internal/gesture"
	"github.com/olivier-w/springdeck/internal/interaction"
	"github.com/olivier-w/springdeck/internal/motion"
)

// Config is the full settings tree.
type Config struct {
	FPS      int              `yaml:"fps"`
	LogFile  string           `yaml:"log_file,omitempty"`
	Motion   motion.Tolerance `yaml:"motion"`
	Sequence motion.Tolerance `yaml:"sequence"`
	Gesture  Gesture          `yaml:"gesture"`
	Heart    Heart            `yaml:"heart"`
	Scale    Scale            `yaml:"scale"`
	Drawer   Drawer           `yaml:"drawer"`
	Confetti Confetti         `yaml:"confetti"`
	Carousel Carousel         `yaml:"carousel"`
	Sound    Sound            `yaml:"sound"`
}

type Gesture struct {
	TapInterval     time.Duration `yaml:"tap_interval"`
	TapRadius       float64       `yaml:"tap_radius"`
	VelocityWindow  time.Duration `yaml:"velocity_window"`
	DragMinDistance float64       `yaml:"drag_min_distance"`
}

type Heart struct {
	Taps       int                 `yaml:"taps"`
	Spring     motion.SpringConfig `yaml:"spring"`
	FadeSpring motion.SpringConfig `yaml:"fade_spring"`
	Hold       time.Duration       `yaml:"hold"`
}

type Scale struct {
	Peak       float64             `yaml:"peak"`
	UpSpring   motion.SpringConfig `yaml:"up_spring"`
	DownSpring motion.SpringConfig `yaml:"down_spring"`
}

type Drawer struct {
	VelocityThreshold float64             `yaml:"velocity_threshold"`
	Spring            motion.SpringConfig `yaml:"spring"`
}

type Confetti struct {
	Count      int                 `yaml:"count"`
	Gravity    float64             `yaml:"gravity"`
	Spread     float64             `yaml:"spread"`
	DelayMax   time.Duration       `yaml:"delay_max"`
	Duration   time.Duration       `yaml:"duration"`
	PopSpring  motion.SpringConfig `yaml:"pop_spring"`
	RiseSpring motion.SpringConfig `yaml:"rise_spring"`
}

type Carousel struct {
	Spacing      int                 `yaml:"spacing"`
	MaxCardWidth int                 `yaml:"max_card_width"`
	Spring       motion.SpringConfig `yaml:"spring"`
}

type Sound struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	// Pop and Tap are optional sample files (.wav, .mp3, .ogg, .flac). Empty
	// means a synthesized cue.
	Pop string `yaml:"pop,omitempty"`
	Tap string `yaml:"tap,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FPS:      60,
		Motion:   motion.DefaultTolerance,
		Sequence: motion.Tolerance{Value: 0.01, Velocity: 2},
		Gesture: Gesture{
			TapInterval:    gesture.DefaultTapInterval,
			TapRadius:      gesture.DefaultTapRadius,
			VelocityWindow: gesture.DefaultVelocityWindow,
		},
		Heart: Heart{
			Taps:       2,
			Spring:     motion.SpringConfig{Damping: 15, Stiffness: 200, Mass: 1},
			FadeSpring: motion.DefaultSpring,
			Hold:       500 * time.Millisecond,
		},
		Scale: Scale{
			Peak:       1.4,
			UpSpring:   motion.SpringConfig{Damping: 4, Stiffness: 300, Mass: 1},
			DownSpring: motion.SpringConfig{Damping: 15, Stiffness: 300, Mass: 1},
		},
		Drawer: Drawer{
			VelocityThreshold: interaction.DefaultVelocityThreshold,
			Spring:            motion.SpringConfig{Damping: 20, Stiffness: 100, Mass: 1},
		},
		Confetti: Confetti{
			Count:      50,
			Gravity:    60,
			Spread:     20,
			DelayMax:   300 * time.Millisecond,
			Duration:   2 * time.Second,
			PopSpring:  motion.SpringConfig{Damping: 5, Stiffness: 100, Mass: 1},
			RiseSpring: motion.SpringConfig{Damping: 10, Stiffness: 100, Mass: 1},
		},
		Carousel: Carousel{
			Spacing:      4,
			MaxCardWidth: 48,
			Spring:       motion.SpringConfig{Damping: 20, Stiffness: 200, Mass: 1},
		},
		Sound: Sound{Enabled: true, Volume: 0.8},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "springdeck", "config.yaml")
}

// Load overlays the YAML file at path onto the defaults. With an empty path it
// reads DefaultPath and treats a missing file as "use defaults".
func Load(path string) (Config, string, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, "", nil
		}
		return cfg, path, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, path, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, path, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate rejects settings the demos cannot run with.
func (c Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps must be in 1..240, got %d", c.FPS)
	}
	if err := tolerance("motion", c.Motion); err != nil {
		return err
	}
	if err := tolerance("sequence", c.Sequence); err != nil {
		return err
	}
	if c.Gesture.TapInterval <= 0 {
		return fmt.Errorf("gesture.tap_interval must be positive")
	}
	if c.Gesture.TapRadius <= 0 {
		return fmt.Errorf("gesture.tap_radius must be positive")
	}
	if c.Gesture.VelocityWindow <= 0 {
		return fmt.Errorf("gesture.velocity_window must be positive")
	}
	if c.Gesture.DragMinDistance < 0 {
		return fmt.Errorf("gesture.drag_min_distance must not be negative")
	}
	if c.Heart.Taps < 1 {
		return fmt.Errorf("heart.taps must be at least 1")
	}
	if c.Heart.Hold < 0 {
		return fmt.Errorf("heart.hold must not be negative")
	}
	if c.Scale.Peak <= 0 {
		return fmt.Errorf("scale.peak must be positive")
	}
	if c.Drawer.VelocityThreshold < 0 {
		return fmt.Errorf("drawer.velocity_threshold must not be negative")
	}
	if c.Confetti.Count < 1 || c.Confetti.Count > 500 {
		return fmt.Errorf("confetti.count must be in 1..500, got %d", c.Confetti.Count)
	}
	if c.Confetti.Gravity <= 0 {
		return fmt.Errorf("confetti.gravity must be positive")
	}
	if c.Confetti.Duration <= 0 || c.Confetti.DelayMax < 0 {
		return fmt.Errorf("confetti.duration must be positive and delay_max not negative")
	}
	if c.Carousel.Spacing < 0 || c.Carousel.MaxCardWidth < 8 {
		return fmt.Errorf("carousel.spacing must not be negative and max_card_width at least 8")
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume must be in 0..1, got %v", c.Sound.Volume)
	}

	springs := []struct {
		name string
		cfg  motion.SpringConfig
	}{
		{"heart.spring", c.Heart.Spring},
		{"heart.fade_spring", c.Heart.FadeSpring},
		{"scale.up_spring", c.Scale.UpSpring},
		{"scale.down_spring", c.Scale.DownSpring},
		{"drawer.spring", c.Drawer.Spring},
		{"confetti.pop_spring", c.Confetti.PopSpring},
		{"confetti.rise_spring", c.Confetti.RiseSpring},
		{"carousel.spring", c.Carousel.Spring},
	}
	for _, s := range springs {
		if !s.cfg.Valid() {
			return fmt.Errorf("%s: damping, stiffness and mass must be positive", s.name)
		}
	}
	return nil
}

func tolerance(name string, t motion.Tolerance) error {
	if t.Value <= 0 || t.Velocity <= 0 {
		return fmt.Errorf("%s epsilons must be positive", name)
	}
	return nil
}
