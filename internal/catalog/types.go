package catalog

// ModelDefinition describes a model that ships with a provider definition
type ModelDefinition struct {
	Name            string   `json:"name"`
	ContextWindow   int      `json:"contextWindow"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
	Capabilities    []string `json:"capabilities"`
}

// Definition describes the canonical provider a legacy category maps to
type Definition struct {
	Category        string                 `json:"category"`
	Name            string                 `json:"name"`
	Type            string                 `json:"type"`
	BaseURL         string                 `json:"baseUrl"`
	DefaultSettings map[string]interface{} `json:"defaultSettings"`
	Models          []ModelDefinition      `json:"models"`

	// DeprecatedKeys lists rawConfig keys that are no longer honored after
	// migration and should be surfaced by compatibility checks.
	DeprecatedKeys []string `json:"deprecatedKeys,omitempty"`
}
