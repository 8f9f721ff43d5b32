package catalog

import "sort"

// staticRegistry implements Registry over an in-memory definition map
type staticRegistry struct {
	definitions map[string]*Definition
}

// NewRegistry creates a registry from the given definitions, keyed by category
func NewRegistry(definitions []*Definition) Registry {
	byCategory := make(map[string]*Definition, len(definitions))
	for _, def := range definitions {
		byCategory[def.Category] = def
	}
	return &staticRegistry{definitions: byCategory}
}

// NewBuiltinRegistry creates a registry with the provider definitions known to
// the platform
func NewBuiltinRegistry() Registry {
	return NewRegistry(builtinDefinitions())
}

// Lookup returns the definition for a category, if one exists
func (r *staticRegistry) Lookup(category string) (*Definition, bool) {
	def, ok := r.definitions[category]
	return def, ok
}

// Categories returns all known categories in sorted order
func (r *staticRegistry) Categories() []string {
	categories := make([]string, 0, len(r.definitions))
	for category := range r.definitions {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func builtinDefinitions() []*Definition {
	return []*Definition{
		{
			Category: "openai",
			Name:     "OpenAI",
			Type:     "openai",
			BaseURL:  "https://api.openai.com/v1",
			DefaultSettings: map[string]interface{}{
				"timeoutSeconds": 60,
				"maxRetries":     3,
			},
			Models: []ModelDefinition{
				{Name: "gpt-4o", ContextWindow: 128000, MaxOutputTokens: 16384, Capabilities: []string{"chat", "vision", "tools"}},
				{Name: "gpt-4o-mini", ContextWindow: 128000, MaxOutputTokens: 16384, Capabilities: []string{"chat", "tools"}},
			},
			DeprecatedKeys: []string{"engine", "use_completions_api"},
		},
		{
			Category: "anthropic",
			Name:     "Anthropic",
			Type:     "anthropic",
			BaseURL:  "https://api.anthropic.com/v1",
			DefaultSettings: map[string]interface{}{
				"timeoutSeconds": 60,
				"maxRetries":     3,
			},
			Models: []ModelDefinition{
				{Name: "claude-3-5-sonnet", ContextWindow: 200000, MaxOutputTokens: 8192, Capabilities: []string{"chat", "vision", "tools"}},
				{Name: "claude-3-5-haiku", ContextWindow: 200000, MaxOutputTokens: 8192, Capabilities: []string{"chat"}},
			},
			DeprecatedKeys: []string{"claude_v1_format"},
		},
		{
			Category: "ollama",
			Name:     "Ollama",
			Type:     "ollama",
			BaseURL:  "http://localhost:11434",
			DefaultSettings: map[string]interface{}{
				"keepAlive": "5m",
			},
			Models: []ModelDefinition{
				{Name: "llama3.1", ContextWindow: 131072, MaxOutputTokens: 4096, Capabilities: []string{"chat"}},
				{Name: "mistral", ContextWindow: 32768, MaxOutputTokens: 4096, Capabilities: []string{"chat"}},
			},
		},
		{
			Category: "huggingface",
			Name:     "Hugging Face Inference",
			Type:     "huggingface",
			BaseURL:  "https://api-inference.huggingface.co",
			DefaultSettings: map[string]interface{}{
				"waitForModel": true,
			},
			Models: []ModelDefinition{
				{Name: "meta-llama/Llama-3.1-8B-Instruct", ContextWindow: 131072, MaxOutputTokens: 4096, Capabilities: []string{"chat"}},
			},
			DeprecatedKeys: []string{"use_gpu"},
		},
		{
			Category: "azure-openai",
			Name:     "Azure OpenAI",
			Type:     "azure-openai",
			BaseURL:  "",
			DefaultSettings: map[string]interface{}{
				"apiVersion": "2024-06-01",
			},
			Models: []ModelDefinition{
				{Name: "gpt-4o", ContextWindow: 128000, MaxOutputTokens: 16384, Capabilities: []string{"chat", "vision", "tools"}},
			},
		},
	}
}
