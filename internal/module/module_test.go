package module

import (
	"errors"
	"testing"

	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSerenaMetadataFromEmbeddedDoc(t *testing.T) {
	mod, err := NewSerenaModule()
	require.NoError(t, err)

	meta := mod.Metadata()
	require.Equal(t, "serena", meta.Name)
	require.Equal(t, "1.0.0", meta.Version)
	require.NotEmpty(t, meta.Description)
	require.NotEmpty(t, mod.SetupInstructions())
	require.Equal(t, ".serena/project.yml", mod.ConfigPath())
}

func TestSerenaGenerateFiles(t *testing.T) {
	mod, err := NewSerenaModule()
	require.NoError(t, err)

	req := models.ProjectRequest{Name: "demo", Language: "rust"}.Normalize()
	files, err := mod.GenerateFiles("/workspace/demo", req)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, ".serena/project.yml", files[0].Path)
	require.Equal(t, models.FormatYAML, files[0].Format)
	require.Contains(t, files[0].Content, "language: rust")
}

func TestSerenaServerEntry(t *testing.T) {
	mod, err := NewSerenaModule()
	require.NoError(t, err)

	entry, err := mod.ServerEntry("/workspace/demo", models.ProjectRequest{Name: "demo"})
	require.NoError(t, err)

	require.Equal(t, "stdio", entry.Type)
	require.Equal(t, "uvx", entry.Command)
	require.Contains(t, entry.Args, "git+https://github.com/oraios/serena")
	require.Contains(t, entry.Args, "serena-mcp-server")
	require.Contains(t, entry.Args, "/workspace/demo")
	require.Empty(t, entry.Env)
	require.Empty(t, mod.EnvVars(models.ProjectRequest{}))
}

func TestCipherValidateRequirements(t *testing.T) {
	mod, err := NewCipherModule()
	require.NoError(t, err)

	tests := []struct {
		name    string
		opts    models.CipherOptions
		wantErr string
	}{
		{
			name:    "no keys",
			opts:    models.CipherOptions{},
			wantErr: "requires an OpenAI or Anthropic API key",
		},
		{
			name: "valid openai key",
			opts: models.CipherOptions{OpenAIKey: "sk-abcdefghijklmnopqrstu"},
		},
		{
			name: "valid anthropic key",
			opts: models.CipherOptions{AnthropicKey: "sk-ant-abcdefgh"},
		},
		{
			name:    "malformed openai key",
			opts:    models.CipherOptions{OpenAIKey: "not-a-key"},
			wantErr: "invalid OpenAI API key format",
		},
		{
			name:    "unknown embedding provider",
			opts:    models.CipherOptions{AnthropicKey: "sk-ant-abcdefgh", Embedding: "acme"},
			wantErr: "unknown embedding provider",
		},
		{
			name: "disabled embedding is fine",
			opts: models.CipherOptions{AnthropicKey: "sk-ant-abcdefgh", Embedding: "disabled"},
		},
		{
			name: "voyage embedding with key",
			opts: models.CipherOptions{
				AnthropicKey: "sk-ant-abcdefgh",
				Embedding:    "voyage",
				EmbeddingKey: "vo-abcdefghij",
			},
		},
		{
			name: "malformed embedding key",
			opts: models.CipherOptions{
				AnthropicKey: "sk-ant-abcdefgh",
				Embedding:    "voyage",
				EmbeddingKey: "bad",
			},
			wantErr: "invalid voyage embedding API key format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mod.ValidateRequirements(models.ProjectRequest{Name: "demo", Cipher: tt.opts})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCipherServerEntry(t *testing.T) {
	mod, err := NewCipherModule()
	require.NoError(t, err)

	req := models.ProjectRequest{
		Name: "demo",
		Cipher: models.CipherOptions{
			AnthropicKey: "sk-ant-abcdefgh",
			Embedding:    "voyage",
			EmbeddingKey: "vo-abcdefghij",
		},
	}

	entry, err := mod.ServerEntry("/workspace/demo", req)
	require.NoError(t, err)

	require.Equal(t, "cipher", entry.Command)
	require.Equal(t, []string{"--mode", "mcp", "--agent", "/workspace/demo/memAgent/cipher.yml"}, entry.Args)
	require.Equal(t, "sk-ant-abcdefgh", entry.Env["ANTHROPIC_API_KEY"])
	require.Equal(t, "vo-abcdefghij", entry.Env["VOYAGE_API_KEY"])
	// Absent keys contribute no env entries.
	require.NotContains(t, entry.Env, "OPENAI_API_KEY")
}

func TestCipherEnvVars(t *testing.T) {
	mod, err := NewCipherModule()
	require.NoError(t, err)

	t.Run("both llm slots always present", func(t *testing.T) {
		vars := mod.EnvVars(models.ProjectRequest{
			Cipher: models.CipherOptions{OpenAIKey: "sk-abcdefghijklmnopqrstu"},
		})
		require.Len(t, vars, 2)
		require.Equal(t, "OPENAI_API_KEY", vars[0].Key)
		require.Equal(t, "sk-abcdefghijklmnopqrstu", vars[0].Value)
		require.Equal(t, "ANTHROPIC_API_KEY", vars[1].Key)
		require.Equal(t, "", vars[1].Value)
	})

	t.Run("hosted embedding adds a slot", func(t *testing.T) {
		vars := mod.EnvVars(models.ProjectRequest{
			Cipher: models.CipherOptions{AnthropicKey: "sk-ant-abcdefgh", Embedding: "voyage"},
		})
		require.Len(t, vars, 3)
		require.Equal(t, "VOYAGE_API_KEY", vars[2].Key)
	})

	t.Run("local embedding adds no slot", func(t *testing.T) {
		vars := mod.EnvVars(models.ProjectRequest{
			Cipher: models.CipherOptions{AnthropicKey: "sk-ant-abcdefgh", Embedding: "ollama"},
		})
		require.Len(t, vars, 2)
	})
}

func TestCipherGenerateFilesEmbeddingError(t *testing.T) {
	mod, err := NewCipherModule()
	require.NoError(t, err)

	req := models.ProjectRequest{
		Name:   "demo",
		Cipher: models.CipherOptions{AnthropicKey: "sk-ant-abcdefgh", Embedding: "acme"},
	}
	_, err = mod.GenerateFiles("/workspace/demo", req)
	require.Error(t, err)
}

func TestRegistryLoadCachesInstances(t *testing.T) {
	r := NewRegistry()

	first, err := r.Load("serena")
	require.NoError(t, err)

	second, err := r.Load("serena")
	require.NoError(t, err)
	require.Same(t, first, second)

	_, ok := r.LoadTime("serena")
	require.True(t, ok)
}

func TestRegistryUnknownModule(t *testing.T) {
	r := NewRegistry()

	_, err := r.Load("ghost")
	require.ErrorIs(t, err, ErrUnknownModule)
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()

	first, err := r.Load("cipher")
	require.NoError(t, err)

	r.Reset()
	_, ok := r.LoadTime("cipher")
	require.False(t, ok)

	second, err := r.Load("cipher")
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()

	metas := r.List()
	require.Len(t, metas, 2)

	names := make([]string, 0, len(metas))
	for _, m := range metas {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"cipher", "serena"}, names)
}

func TestRegistryRegisterOverride(t *testing.T) {
	r := NewRegistry()

	r.Register("serena", func() (Module, error) {
		return nil, errors.New("boom")
	})

	_, err := r.Load("serena")
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
