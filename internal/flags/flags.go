package flags

import (
	"fmt"

	"github.com/vinser/pathbot/internal/config"
	"github.com/vinser/pathbot/internal/sim"
)

// Parse applies the client command-line options on top of cfg, so flags
// win over the environment.
func Parse(fsv *FlagSetWithVisit, args []string, cfg *config.Config) error {
	fsv.StringVar(&cfg.API.BaseURL, "url", "u", cfg.API.BaseURL, "Pathbot API base URL")
	fsv.DurationVar(&cfg.API.Timeout, "timeout", "t", cfg.API.Timeout, "Request timeout")
	fsv.BoolVar(&cfg.API.NoCache, "no-cache", "n", cfg.API.NoCache, "Always ask the server, even for known rooms")
	fsv.StringVar(&cfg.LogFile, "log", "l", cfg.LogFile, "Write debug log to this file")
	fsv.BoolVar(&cfg.Sim.Enabled, "sim", "s", cfg.Sim.Enabled, "Explore a locally generated maze instead of the API")
	fsv.Int64Var(&cfg.Sim.Seed, "seed", "", cfg.Sim.Seed, "Simulator maze seed, 0 for random")

	if err := fsv.Parse(args); err != nil {
		return err
	}
	if len(fsv.Args()) > 0 {
		return usageError(fsv, fmt.Errorf("unexpected arguments %q", fsv.Args()))
	}
	if fsv.IsCustom("seed") && !cfg.Sim.Enabled {
		return usageError(fsv, fmt.Errorf("-seed is only valid with -sim"))
	}
	if err := cfg.Validate(); err != nil {
		return usageError(fsv, err)
	}
	return nil
}

// SimFlags stores the simulator command-line options
type SimFlags struct {
	Addr string
	sim.Config
}

// ParseSim parses the simulator command-line options.
func ParseSim(fsv *FlagSetWithVisit, args []string) (*SimFlags, error) {
	f := &SimFlags{}
	fsv.StringVar(&f.Addr, "addr", "a", "127.0.0.1:8080", "Listen address")
	fsv.IntVar(&f.Width, "width", "", sim.DefaultWidth, "Maze width in cells")
	fsv.IntVar(&f.Height, "height", "", sim.DefaultHeight, "Maze height in cells")
	fsv.Int64Var(&f.Seed, "seed", "s", 0, "Maze seed, 0 for random")

	if err := fsv.Parse(args); err != nil {
		return nil, err
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, usageError(fsv, fmt.Errorf("maze size must be positive, got %dx%d", f.Width, f.Height))
	}
	return f, nil
}

func usageError(fsv *FlagSetWithVisit, err error) error {
	fmt.Fprintln(fsv.fs.Output(), err)
	fsv.Usage()
	return err
}
