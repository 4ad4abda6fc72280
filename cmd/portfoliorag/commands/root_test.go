package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "portfoliorag", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	tests := []struct {
		flagName  string
		shorthand string
		defValue  string
	}{
		{"config", "", ""},
		{"index", "", ""},
		{"verbose", "v", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "--%s flag not found", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	expected := []string{"build", "search", "ask", "inspect", "stats", "suggest", "bench", "mcp", "version"}
	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			found := false
			for _, sub := range cmd.Commands() {
				if sub.Use == name || strings.HasPrefix(sub.Use, name+" ") {
					found = true
					break
				}
			}
			assert.True(t, found, "subcommand %q not found", name)
		})
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	out := output.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "Flags:")
}

func TestSubcommandFlags(t *testing.T) {
	tests := []struct {
		cmd   string
		flags []string
	}{
		{"search", []string{"top-k", "min-similarity", "no-boost", "expand", "json", "context"}},
		{"ask", []string{"expand", "sources"}},
		{"inspect", []string{"top-k"}},
		{"stats", []string{"json"}},
		{"suggest", []string{"limit"}},
		{"bench", []string{"json"}},
	}

	root := NewRootCmd()
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			sub, _, err := root.Find([]string{tt.cmd})
			require.NoError(t, err)
			assert.NotEmpty(t, sub.Short)
			for _, f := range tt.flags {
				assert.NotNil(t, sub.Flags().Lookup(f), "--%s flag not found", f)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "portfoliorag 1.2.3")
	assert.Contains(t, out, "Commit: abc123")
	assert.Contains(t, out, "Built:  2026-01-01")
}
