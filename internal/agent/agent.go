package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed agent.json
var agentCard []byte

// Card returns the agent card with its URL pointed at baseURL. An empty
// baseURL keeps the embedded URL.
func Card(baseURL string) ([]byte, error) {
	var card map[string]any
	if err := json.Unmarshal(agentCard, &card); err != nil {
		return nil, fmt.Errorf("invalid embedded agent card: %w", err)
	}
	if baseURL != "" {
		card["url"] = strings.TrimRight(baseURL, "/") + "/a2a/campaign"
	}
	return json.MarshalIndent(card, "", "  ")
}
