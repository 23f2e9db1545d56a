// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

//go:embed agent.json
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

// Card is the subset of the agent card the service reads back.
type Card struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Version      string            `json:"version"`
	URL          string            `json:"url"`
	Capabilities map[string]bool   `json:"capabilities"`
	Endpoints    map[string]string `json:"endpoints"`
}

// LoadAgentCard checks once that the embedded card is well formed.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card Card
		if err := jsoniter.Unmarshal(AgentCardData, &card); err != nil {
			loadErr = fmt.Errorf("invalid agent card: %w", err)
			return
		}
		if card.Name == "" || card.Version == "" {
			loadErr = fmt.Errorf("agent card is missing name or version")
		}
	})
	return loadErr
}
