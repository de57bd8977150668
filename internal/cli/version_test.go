package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jakoblorz/mcp-init/internal/module"
	"github.com/stretchr/testify/require"
)

type fakeReleaseSource struct {
	tag string
	err error
}

func (f fakeReleaseSource) LatestReleaseTag(context.Context) (string, error) {
	return f.tag, f.err
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewVersionCommand(fakeReleaseSource{})
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "mcp-init version "+Version)
}

func TestVersionCommandCheckOutdated(t *testing.T) {
	prev := Version
	Version = "1.0.0"
	defer func() { Version = prev }()

	var buf bytes.Buffer
	cmd := NewVersionCommand(fakeReleaseSource{tag: "v2.0.0"})
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--check"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "A newer release is available: 2.0.0")
}

func TestVersionCommandCheckUpToDate(t *testing.T) {
	prev := Version
	Version = "2.0.0"
	defer func() { Version = prev }()

	var buf bytes.Buffer
	cmd := NewVersionCommand(fakeReleaseSource{tag: "v2.0.0"})
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--check"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "latest release")
}

func TestVersionCommandCheckFailure(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewVersionCommand(fakeReleaseSource{err: errors.New("api unreachable")})
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--check"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "release check failed")
}

func TestModulesCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewModulesCommand(module.NewRegistry())
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "serena")
	require.Contains(t, buf.String(), "cipher")
	require.Contains(t, buf.String(), "v1.0.0")
}

func TestModulesCommandVerbose(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewModulesCommand(module.NewRegistry())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--verbose"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, buf.String(), "loaded in")
}
