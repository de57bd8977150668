package merge

import (
	"strings"
)

// MergeEnv overlays the new .env content onto the existing file. Existing
// keys keep their value unless this run explicitly supplies a non-empty one;
// keys the existing file does not have are appended, blank slots included.
// Comments and line order of the existing file survive untouched.
func MergeEnv(existing, fragment []byte) []byte {
	lines := splitLines(existing)

	keyLine := make(map[string]int, len(lines))
	for i, line := range lines {
		if key, _, ok := parseEnvLine(line); ok {
			keyLine[key] = i
		}
	}

	for _, line := range splitLines(fragment) {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}

		if i, exists := keyLine[key]; exists {
			if value != "" {
				lines[i] = key + "=" + value
			}
			continue
		}

		lines = append(lines, key+"="+value)
		keyLine[key] = len(lines) - 1
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}

// ParseEnv extracts the key/value pairs of a .env file, skipping comments
// and blank lines. Later occurrences of a key win.
func ParseEnv(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range splitLines(data) {
		if key, value, ok := parseEnvLine(line); ok {
			out[key] = value
		}
	}
	return out
}

func parseEnvLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	key, value, found := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func splitLines(data []byte) []string {
	s := strings.TrimRight(string(data), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
