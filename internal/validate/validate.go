// Package validate holds the pure input checks the CLI applies before any
// file is touched. Every check is total: it returns a bool and never
// normalizes its input, the caller decides between fallback and abort.
package validate

import (
	"regexp"
	"strings"

	"github.com/jakoblorz/mcp-init/internal/models"
)

var (
	projectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,99}$`)
	moduleNamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	genericKeyPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{8,}$`)
)

// ProjectName reports whether s is a usable project name: starts with an
// alphanumeric, contains only letters, digits, dots, hyphens and
// underscores, at most 100 characters.
func ProjectName(s string) bool {
	return projectNamePattern.MatchString(s)
}

// Language reports membership in the supported language set. Callers decide
// the fallback policy; see models.NormalizeLanguage.
func Language(s string) bool {
	return models.IsSupportedLanguage(s)
}

// ModuleName reports whether s is a well-formed module name. Well-formed but
// unknown names pass here so future modules can be requested; the registry
// reports the miss.
func ModuleName(s string) bool {
	return moduleNamePattern.MatchString(s)
}

// APIKey applies provider-specific shape checks. Unknown providers fall back
// to a generic rule: at least 8 characters of alnum/hyphen/underscore.
func APIKey(key, provider string) bool {
	if key == "" {
		return false
	}

	switch strings.ToLower(provider) {
	case "openai":
		return strings.HasPrefix(key, "sk-") && len(key) > 20
	case "anthropic":
		return (strings.HasPrefix(key, "sk-ant-") || strings.HasPrefix(key, "claude-")) && len(key) > 10
	case "voyage":
		return strings.HasPrefix(key, "vo-") && len(key) > 10
	case "gemini", "azure", "aws", "qwen":
		return len(key) > 10
	default:
		return genericKeyPattern.MatchString(key)
	}
}

// FilePath rejects shell metacharacters and path-traversal sequences in any
// path derived from user input. This guards the filesystem layer, it is not
// a sandbox.
func FilePath(s string) bool {
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, ";|&$`") {
		return false
	}
	if strings.Contains(s, "../") || strings.Contains(s, `..\`) {
		return false
	}
	return true
}
