package render

// EmbeddingSpec describes one embedding provider the memory module can be
// wired to. Local providers run without an API key.
type EmbeddingSpec struct {
	Name   string
	Model  string
	EnvVar string
	Local  bool
}

// embeddingProviders is ordered by selection priority: hosted providers
// first, local runtimes last.
var embeddingProviders = []EmbeddingSpec{
	{Name: "openai", Model: "text-embedding-3-small", EnvVar: "OPENAI_API_KEY"},
	{Name: "voyage", Model: "voyage-3-large", EnvVar: "VOYAGE_API_KEY"},
	{Name: "gemini", Model: "text-embedding-004", EnvVar: "GEMINI_API_KEY"},
	{Name: "qwen", Model: "text-embedding-v3", EnvVar: "QWEN_API_KEY"},
	{Name: "aws", Model: "amazon.titan-embed-text-v2:0", EnvVar: "AWS_ACCESS_KEY_ID"},
	{Name: "azure", Model: "text-embedding-3-small", EnvVar: "AZURE_OPENAI_API_KEY"},
	{Name: "lmstudio", Model: "nomic-embed-text-v1.5", Local: true},
	{Name: "ollama", Model: "nomic-embed-text", Local: true},
}

// LookupEmbedding resolves a provider by name.
func LookupEmbedding(name string) (EmbeddingSpec, bool) {
	for _, spec := range embeddingProviders {
		if spec.Name == name {
			return spec, true
		}
	}
	return EmbeddingSpec{}, false
}

// EmbeddingProviderNames returns the known provider names in priority order.
func EmbeddingProviderNames() []string {
	names := make([]string, 0, len(embeddingProviders))
	for _, spec := range embeddingProviders {
		names = append(names, spec.Name)
	}
	return names
}

// APIKeyRef returns the $VAR reference written into cipher.yml, empty for
// local providers.
func (s EmbeddingSpec) APIKeyRef() string {
	if s.Local || s.EnvVar == "" {
		return ""
	}
	return "$" + s.EnvVar
}
