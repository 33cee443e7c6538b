package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/vinser/pathbot/internal/app"
	"github.com/vinser/pathbot/internal/config"
	"github.com/vinser/pathbot/internal/coordinator"
	"github.com/vinser/pathbot/internal/flags"
	"github.com/vinser/pathbot/internal/notify"
	"github.com/vinser/pathbot/internal/pathbot"
	"github.com/vinser/pathbot/internal/sim"
	"github.com/vinser/pathbot/internal/state"
)

var version = "dev"

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := flags.Parse(flags.NewFlagSetWithVisit(os.Args[0], flag.ExitOnError), os.Args[1:], cfg); err != nil {
		os.Exit(2)
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "pathbot")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	baseURL := cfg.API.BaseURL
	if cfg.Sim.Enabled {
		if baseURL, err = startSim(ctx, cfg.Sim); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}

	client := pathbot.NewClient(pathbot.Config{BaseURL: baseURL, Timeout: cfg.API.Timeout})
	coord := coordinator.New(client, state.New(), notify.New(), coordinator.Options{
		CoordinateCache: !cfg.API.NoCache,
	})

	p := tea.NewProgram(app.New(coord, version), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// startSim serves a generated maze on a loopback port until ctx is done and
// returns its base URL.
func startSim(ctx context.Context, cfg config.SimConfig) (string, error) {
	s, err := sim.New(sim.Config{Width: cfg.Width, Height: cfg.Height, Seed: cfg.Seed})
	if err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen for simulator: %w", err)
	}
	go func() {
		if err := sim.Run(ctx, ln, s); err != nil {
			log.Printf("sim: %v", err)
		}
	}()
	return "http://" + ln.Addr().String(), nil
}
