package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/tidwall/sjson"
)

// RegistryJSON renders the .mcp.json fragment for this run: a top-level
// mcpServers object with one entry per configured module, in the order the
// modules were requested.
func RegistryJSON(order []string, entries map[string]models.ServerEntry) (string, error) {
	doc := []byte(`{"mcpServers":{}}`)

	for _, name := range order {
		entry, ok := entries[name]
		if !ok {
			continue
		}

		raw, err := json.Marshal(entry)
		if err != nil {
			return "", fmt.Errorf("failed to encode server entry for %s: %w", name, err)
		}

		doc, err = sjson.SetRawBytes(doc, "mcpServers."+name, raw)
		if err != nil {
			return "", fmt.Errorf("failed to place server entry for %s: %w", name, err)
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format registry JSON: %w", err)
	}
	pretty.WriteString("\n")

	return pretty.String(), nil
}
