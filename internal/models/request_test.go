package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"supported stays", "python", "python"},
		{"uppercase normalized", "Python", "python"},
		{"default for empty", "", "typescript"},
		{"unsupported falls back", "cobol", "typescript"},
		{"legacy php falls back", "php", "typescript"},
		{"legacy c falls back", "c", "typescript"},
		{"go stays", "go", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeLanguage(tt.input))
		})
	}
}

func TestRequestNormalize(t *testing.T) {
	req := ProjectRequest{
		Name:     "demo",
		Language: "Rust",
		Serena:   SerenaOptions{Language: "elixir"},
	}

	normalized := req.Normalize()

	require.Equal(t, "rust", normalized.Language)
	require.Equal(t, "typescript", normalized.Serena.Language)

	// The original request is untouched.
	require.Equal(t, "Rust", req.Language)
}

func TestEffectiveSerenaLanguage(t *testing.T) {
	req := ProjectRequest{Language: "go"}
	require.Equal(t, "go", req.EffectiveSerenaLanguage())

	req.Serena.Language = "python"
	require.Equal(t, "python", req.EffectiveSerenaLanguage())

	// An unsupported positional language resolves to the default.
	req = ProjectRequest{Language: "fortran"}
	require.Equal(t, "typescript", req.EffectiveSerenaLanguage())
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	require.Len(t, langs, 9)
	require.Contains(t, langs, "typescript")
	require.Contains(t, langs, "csharp")
	require.NotContains(t, langs, "php")
}
