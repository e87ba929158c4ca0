package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "greenline", cmd.Use)
	assert.Contains(t, cmd.Long, "key-value backend")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"picture", "add"}, {"picture", "rm"}, {"picture", "ls"},
		{"leader", "add"}, {"leader", "rm"}, {"leader", "ls"}, {"leader", "templates"},
		{"activity", "ls"},
		{"export"}, {"import"}, {"check"}, {"seed"}, {"stats"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "env-file", "backend", "db"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestListCommandDefaults(t *testing.T) {
	cmd := NewRootCommand()

	pictureLs, _, err := cmd.Find([]string{"picture", "ls"})
	require.NoError(t, err)
	assert.Equal(t, "newest", pictureLs.Flags().Lookup("sort").DefValue)
	assert.Equal(t, "all", pictureLs.Flags().Lookup("page").DefValue)

	leaderLs, _, err := cmd.Find([]string{"leader", "ls"})
	require.NoError(t, err)
	assert.Equal(t, "order", leaderLs.Flags().Lookup("sort").DefValue)

	export, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)
	output := export.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "-", output.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "stats"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
