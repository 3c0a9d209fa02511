package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/springdeck/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file (default: "+config.DefaultPath()+")")
	screen := flag.String("screen", "", "open this demo on start: heart, scale, drawer, confetti or carousel")
	dumpConfig := flag.Bool("dump-config", false, "print the effective config as YAML and exit")
	flag.Parse()

	cfg, used, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if *dumpConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		return nil
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logConfigSource(used)

	gallery, err := buildGallery(cfg, *screen)
	if err != nil {
		return err
	}

	program := tea.NewProgram(gallery, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}
