package cli

import (
	"fmt"
	"strings"

	"github.com/cardops/backoffice/config"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool     `help:"Show timing telemetry for operations."`
	Option    []string `help:"Set a config option as key=value (relaxation_epsilon, staleness_threshold, dp_granularity, currencies), repeatable." name:"option" placeholder:"KEY=VALUE"`
}

// Config builds a config.Config from the repeated --option key=value flags,
// the way the teacher's configFromAST turns repeated "option" directives
// into the options map configFromOptions parses.
func (g *Globals) Config() (*config.Config, error) {
	options := make(map[string][]string, len(g.Option))
	for _, entry := range g.Option {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --option entry %q, expected key=value", entry)
		}
		options[key] = append(options[key], value)
	}
	return config.ConfigFromOptions(options)
}

// Commands is the root kong command tree.
type Commands struct {
	Globals

	Detect   DetectCmd   `cmd:"" help:"Detect currency arbitrage opportunities from a quote file."`
	Balance  BalanceCmd  `cmd:"" help:"Compute sweep-line daily and average balances from a change file."`
	Allocate AllocateCmd `cmd:"" help:"Allocate a payment across debt buckets using a chosen strategy."`
}
