package cli

import (
	"bytes"
	"testing"

	"github.com/jakoblorz/mcp-init/internal/filesystem"
	"github.com/jakoblorz/mcp-init/internal/module"
	"github.com/jakoblorz/mcp-init/internal/tui"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestCommand(fs filesystem.FileSystem) (*bytes.Buffer, func(args ...string) error) {
	var buf bytes.Buffer
	return &buf, func(args ...string) error {
		cmd := NewRootCommand(fs, module.NewRegistry(), tui.FixedConfirmer{})
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(args)
		return cmd.Execute()
	}
}

func TestRootCommandFullSetup(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	buf, run := newTestCommand(fs)

	err := run("--mcp", "serena,cipher", "--cipher-anthropic-key", "sk-ant-abcdefgh", "demo", "python")
	require.NoError(t, err)

	require.True(t, fs.Exists("/workspace/demo/.serena/project.yml"))
	require.True(t, fs.Exists("/workspace/demo/memAgent/cipher.yml"))
	require.True(t, fs.Exists("/workspace/demo/.mcp.json"))
	require.True(t, fs.Exists("/workspace/demo/.env"))
	require.True(t, fs.Exists("/workspace/demo/MCP_SETUP_INSTRUCTIONS.md"))

	require.Contains(t, buf.String(), "Setup Summary")
	// The provided key never appears unmasked in the output.
	require.NotContains(t, buf.String(), "sk-ant-abcdefgh")
}

func TestRootCommandSerenaOnly(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	_, run := newTestCommand(fs)

	err := run("--mcp", "serena", "demo", "rust")
	require.NoError(t, err)

	data, err := fs.ReadFile("/workspace/demo/.serena/project.yml")
	require.NoError(t, err)
	require.Contains(t, string(data), "language: rust")

	registry, err := fs.ReadFile("/workspace/demo/.mcp.json")
	require.NoError(t, err)
	require.Len(t, gjson.GetBytes(registry, "mcpServers").Map(), 1)
}

func TestRootCommandSerenaFlags(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	_, run := newTestCommand(fs)

	err := run(
		"--mcp", "serena",
		"--serena-language", "go",
		"--serena-read-only",
		"--serena-excluded-tools", "execute_shell_command,write_file",
		"demo", "python",
	)
	require.NoError(t, err)

	data, err := fs.ReadFile("/workspace/demo/.serena/project.yml")
	require.NoError(t, err)
	// The module-specific language flag beats the positional argument.
	require.Contains(t, string(data), "language: go")
	require.Contains(t, string(data), "read_only: true")
	require.Contains(t, string(data), "execute_shell_command")
}

func TestRootCommandCipherWithoutKeyFails(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	_, run := newTestCommand(fs)

	err := run("--mcp", "cipher", "demo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no module could be configured")
}

func TestRootCommandPartialFailureExitsNonZero(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	_, run := newTestCommand(fs)

	err := run("--mcp", "serena,ghost", "demo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "error(s)")

	// The valid module still completed before the run was reported failed.
	require.True(t, fs.Exists("/workspace/demo/.serena/project.yml"))
}

func TestRootCommandNoArgsShowsHelp(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	buf, run := newTestCommand(fs)

	err := run("--mcp", "serena")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Usage:")
}

func TestRootCommandInvalidProjectName(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	_, run := newTestCommand(fs)

	err := run("--mcp", "serena", "bad;name")
	require.Error(t, err)
}

func TestRootCommandInPlace(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.SetWorkingDir("/workspace/current")
	_, run := newTestCommand(fs)

	err := run("-n", "--mcp", "serena", "demo")
	require.NoError(t, err)

	require.True(t, fs.Exists("/workspace/current/.serena/project.yml"))
	require.False(t, fs.Exists("/workspace/current/demo"))
}

func TestSplitList(t *testing.T) {
	require.Nil(t, splitList(""))
	require.Nil(t, splitList("  "))
	require.Equal(t, []string{"serena", "cipher"}, splitList("serena, cipher"))
	require.Equal(t, []string{"serena"}, splitList("serena,,"))
}

func TestResolveModulesFlagWins(t *testing.T) {
	modules, err := resolveModules("cipher", module.NewRegistry())
	require.NoError(t, err)
	require.Equal(t, []string{"cipher"}, modules)

	_, err = resolveModules(",", module.NewRegistry())
	require.Error(t, err)
}
