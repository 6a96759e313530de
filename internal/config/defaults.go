package config

const (
	EndpointOpenAI   = "openai"
	EndpointLMStudio = "lmstudio"
	EndpointOllama   = "ollama"
)

// DefaultConfig returns a configuration with the well known endpoints and
// the generation defaults of the editor.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointOpenAI,
		Endpoints: map[string]Endpoint{
			EndpointOpenAI: {
				BaseURL:   "https://api.openai.com/v1/",
				APIKeyEnv: "OPENAI_API_KEY",
				Model:     "gpt-4o-mini",
			},
			EndpointLMStudio: {
				BaseURL: "http://localhost:1234/v1/",
			},
			EndpointOllama: {
				BaseURL: "http://localhost:11434/v1/",
				Model:   "llama3",
			},
		},
		Temperature: 0.8,
		MaxTokens:   2048,
		LogLevel:    "info",
		LogPretty:   true,
	}
}
