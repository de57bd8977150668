package models

import "strings"

// DefaultLanguage is substituted whenever an unsupported language is requested.
const DefaultLanguage = "typescript"

// supportedLanguages is the set the code-analysis server ships language
// servers for.
var supportedLanguages = map[string]bool{
	"csharp":     true,
	"python":     true,
	"rust":       true,
	"java":       true,
	"typescript": true,
	"javascript": true,
	"go":         true,
	"cpp":        true,
	"ruby":       true,
}

// legacyLanguages were accepted by earlier releases and now map to the
// default language.
var legacyLanguages = map[string]bool{
	"php":     true,
	"elixir":  true,
	"clojure": true,
	"c":       true,
}

// SerenaOptions carries the code-analysis module's per-run settings.
type SerenaOptions struct {
	Language      string
	ReadOnly      bool
	ExcludedTools []string
	InitialPrompt string
}

// CipherOptions carries the memory module's per-run settings.
type CipherOptions struct {
	OpenAIKey    string
	AnthropicKey string
	Embedding    string
	EmbeddingKey string
	SystemPrompt string
}

// ProjectRequest is the normalized input of a single run. It is built once
// from the parsed CLI arguments and not mutated afterwards.
type ProjectRequest struct {
	Name     string
	Language string
	Modules  []string
	InPlace  bool

	Serena SerenaOptions
	Cipher CipherOptions
}

// IsSupportedLanguage reports whether the code-analysis server understands
// the given language. Legacy languages count as unsupported here; callers
// use NormalizeLanguage to map them.
func IsSupportedLanguage(language string) bool {
	return supportedLanguages[strings.ToLower(language)]
}

// SupportedLanguages returns the supported set in no particular order.
func SupportedLanguages() []string {
	out := make([]string, 0, len(supportedLanguages))
	for lang := range supportedLanguages {
		out = append(out, lang)
	}
	return out
}

// NormalizeLanguage lowercases the language and maps unsupported or legacy
// values to the default. Normalization happens exactly once, before any
// renderer sees the request.
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" || legacyLanguages[language] || !supportedLanguages[language] {
		return DefaultLanguage
	}
	return language
}

// Normalize returns a copy of the request with the language fields mapped
// into the supported set.
func (r ProjectRequest) Normalize() ProjectRequest {
	r.Language = NormalizeLanguage(r.Language)
	if r.Serena.Language != "" {
		r.Serena.Language = NormalizeLanguage(r.Serena.Language)
	}
	return r
}

// EffectiveSerenaLanguage resolves the language written into the
// code-analysis config: the module-specific override wins over the
// positional language argument.
func (r ProjectRequest) EffectiveSerenaLanguage() string {
	if r.Serena.Language != "" {
		return r.Serena.Language
	}
	return NormalizeLanguage(r.Language)
}
