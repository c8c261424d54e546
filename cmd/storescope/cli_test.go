package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/storescope/cmd/storescope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"fetch", "serve", "history", "show", "delete"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars(main.Vars()),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli,
		kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
		kong.Vars(main.Vars()),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"fetch", "acme.test"})
	require.NoError(t, err)

	assert.Equal(t, "acme.test", cli.Fetch.URL)
	assert.Equal(t, "gemini-2.5-flash", cli.Model)
	assert.Equal(t, 3, cli.Burst)
	assert.False(t, cli.Sequential)
	assert.False(t, cli.Fetch.Save)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
