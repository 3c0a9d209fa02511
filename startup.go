package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springdeck/internal/catalog"
	"github.com/olivier-w/springdeck/internal/config"
	"github.com/olivier-w/springdeck/internal/sound"
	"github.com/olivier-w/springdeck/internal/ui"
)

// logEnv overrides the config's log_file.
const logEnv = "SPRINGDECK_LOG"

// setupLogging sends the standard logger to a file, since the terminal belongs
// to the UI. With no file configured, log output is dropped.
func setupLogging(path string) (func(), error) {
	if env := os.Getenv(logEnv); env != "" {
		path = env
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "springdeck")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return func() { f.Close() }, nil
}

func logConfigSource(used string) {
	if used == "" {
		log.Printf("config: built-in defaults")
		return
	}
	log.Printf("config: loaded %s", used)
}

// openSound returns silent cues when audio is off or unavailable.
func openSound(cfg config.Sound) *sound.Cues {
	cues, err := sound.New(cfg)
	if err != nil {
		log.Printf("sound: %v; continuing without sound", err)
	}
	return cues
}

// buildGallery assembles the root model, optionally opened on a demo.
func buildGallery(cfg config.Config, screen string, opts ...ui.Option) (ui.Gallery, error) {
	cat, err := catalog.Load()
	if err != nil {
		return ui.Gallery{}, err
	}
	g := ui.New(cfg, cat, openSound(cfg.Sound), opts...)
	if screen != "" {
		if _, ok := cat.Demo(screen); !ok {
			return ui.Gallery{}, fmt.Errorf("unknown screen %q", screen)
		}
		if err := g.Open(screen); err != nil {
			return ui.Gallery{}, err
		}
	}
	return g, nil
}
