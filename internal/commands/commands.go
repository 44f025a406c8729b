// Package commands parses viewer terminal lines into subcommands with
// flag.FlagSet argument handling.
package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// prefix is accepted and stripped in front of any line, so "cmd grid" and
// "grid" run the same command.
const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function. Flags
// are defined on FlagSet; Run is called after Parse and reads flag state.
type Command struct {
	Name    string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run
// with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. fs is that command's FlagSet; run is called
// after fs.Parse succeeds and can read flag state.
func (r *Registry) Register(name string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse tokenizes a terminal line into command arguments. A leading
// "cmd " is stripped. Empty lines yield nil, false.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, prefix)
	if line == "" {
		return nil, false
	}
	return strings.Fields(line), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag and
// positional arguments. Returns an error for an unknown command, a flag
// parse error, or from Run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}
