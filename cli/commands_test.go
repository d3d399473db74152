package cli

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
)

func TestCommands_KongParse_Detect(t *testing.T) {
	var cmds Commands
	parser, err := kong.New(&cmds, kong.Exit(func(int) {}))
	assert.NoError(t, err)

	_, err = parser.Parse([]string{"detect", "--telemetry", "-"})
	assert.NoError(t, err)
	assert.True(t, cmds.Telemetry)
}

func TestCommands_KongParse_Balance_RequiresFromAndTo(t *testing.T) {
	var cmds Commands
	parser, err := kong.New(&cmds, kong.Exit(func(int) {}))
	assert.NoError(t, err)

	_, err = parser.Parse([]string{"balance", "-"})
	assert.Error(t, err)
}

func TestCommands_KongParse_Allocate_DefaultsToBankRule(t *testing.T) {
	var cmds Commands
	parser, err := kong.New(&cmds, kong.Exit(func(int) {}))
	assert.NoError(t, err)

	_, err = parser.Parse([]string{"allocate", "-", "--payment", "100"})
	assert.NoError(t, err)
	assert.Equal(t, cmds.Allocate.Strategy, "bank-rule")
}

func TestCommands_KongParse_Allocate_RejectsUnknownStrategy(t *testing.T) {
	var cmds Commands
	parser, err := kong.New(&cmds, kong.Exit(func(int) {}))
	assert.NoError(t, err)

	_, err = parser.Parse([]string{"allocate", "-", "--payment", "100", "--strategy", "bogus"})
	assert.Error(t, err)
}
