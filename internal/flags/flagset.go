package flags

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

type FlagSetWithVisit struct {
	fs       *flag.FlagSet
	visited  map[string]bool
	aliases  map[string]string // short name → long name
	usageMap map[string]string // long name → usage string
}

func NewFlagSetWithVisit(name string, errorHandling flag.ErrorHandling) *FlagSetWithVisit {
	fs := flag.NewFlagSet(name, errorHandling)

	fsv := &FlagSetWithVisit{
		fs:       fs,
		visited:  make(map[string]bool),
		aliases:  make(map[string]string),
		usageMap: make(map[string]string),
	}

	// Override default usage
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
		fsv.printUsage()
	}

	return fsv
}

func (fsv *FlagSetWithVisit) SetOutput(w io.Writer) {
	fsv.fs.SetOutput(w)
}

func (fsv *FlagSetWithVisit) register(name, short, usage string) {
	if short != "" {
		fsv.aliases[short] = name
	}
	fsv.usageMap[name] = usage
}

// Register a bool flag with optional short alias
func (fsv *FlagSetWithVisit) BoolVar(p *bool, name, short string, value bool, usage string) {
	fsv.fs.BoolVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register a string flag with optional short alias
func (fsv *FlagSetWithVisit) StringVar(p *string, name, short, value, usage string) {
	fsv.fs.StringVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register an int flag with optional short alias
func (fsv *FlagSetWithVisit) IntVar(p *int, name, short string, value int, usage string) {
	fsv.fs.IntVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register an int64 flag with optional short alias
func (fsv *FlagSetWithVisit) Int64Var(p *int64, name, short string, value int64, usage string) {
	fsv.fs.Int64Var(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register a duration flag with optional short alias
func (fsv *FlagSetWithVisit) DurationVar(p *time.Duration, name, short string, value time.Duration, usage string) {
	fsv.fs.DurationVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Expand short aliases and parse args
func (fsv *FlagSetWithVisit) Parse(args []string) error {
	args = fsv.expandAliases(args)
	err := fsv.fs.Parse(args)
	if err != nil {
		return err
	}
	fsv.fs.Visit(func(f *flag.Flag) {
		fsv.visited[f.Name] = true
	})
	return nil
}

// Replace short flags (e.g. -u) with full names (e.g. -url)
func (fsv *FlagSetWithVisit) expandAliases(args []string) []string {
	var expanded []string
	for i, arg := range args {
		if arg == "--" {
			return append(expanded, args[i:]...)
		}
		// Match: -u or -u=value
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			expanded = append(expanded, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[1:], "=")
		if full, ok := fsv.aliases[name]; ok {
			name = full
		}
		if hasValue {
			expanded = append(expanded, "-"+name+"="+value)
		} else {
			expanded = append(expanded, "-"+name)
		}
	}
	return expanded
}

// Check if a specific flag was explicitly set
func (fsv *FlagSetWithVisit) IsCustom(name string) bool {
	return fsv.visited[name]
}

// Check if any non-default flags were set
func (fsv *FlagSetWithVisit) HasCustom() bool {
	hasCustom := false
	fsv.fs.Visit(func(f *flag.Flag) {
		if f.Value.String() != f.DefValue {
			hasCustom = true
		}
	})
	return hasCustom
}

func (fsv *FlagSetWithVisit) Args() []string {
	return fsv.fs.Args()
}

func (fsv *FlagSetWithVisit) Usage() {
	fsv.fs.Usage()
}

// Print formatted usage with short aliases
func (fsv *FlagSetWithVisit) printUsage() {
	var names []string
	var nameLen int
	for name := range fsv.usageMap {
		names = append(names, name)
		if len(name) > nameLen {
			nameLen = len(name)
		}
	}
	sort.Strings(names)
	out := fsv.fs.Output()
	for _, name := range names {
		usage := fsv.usageMap[name]
		if def := fsv.fs.Lookup(name).DefValue; def != "" && def != "false" && def != "0" {
			usage = fmt.Sprintf("%s (default %s)", usage, def)
		}
		short := ""
		for s, full := range fsv.aliases {
			if full == name {
				short = s
				break
			}
		}
		if short != "" {
			fmt.Fprintf(out, "  -%s, -%-*s\t%s\n", short, nameLen, name, usage)
		} else {
			fmt.Fprintf(out, "      -%-*s\t%s\n", nameLen, name, usage)
		}
	}
}
