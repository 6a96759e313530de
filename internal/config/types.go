package config

// Endpoint is an OpenAI compatible chat-completions server.
type Endpoint struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	// APIKeyEnv names the environment variable holding the bearer token.
	// Empty means the endpoint is called without an Authorization header.
	APIKeyEnv string `yaml:"api_key_env,omitempty" koanf:"api_key_env"`
	// Model is used when neither the request nor the config selects one.
	Model string `yaml:"model,omitempty" koanf:"model"`
}

// Config is the storywriter configuration, usually storywriter.yaml.
type Config struct {
	Endpoint    string              `yaml:"endpoint" koanf:"endpoint"`
	Endpoints   map[string]Endpoint `yaml:"endpoints" koanf:"endpoints"`
	Model       string              `yaml:"model,omitempty" koanf:"model"`
	Temperature float64             `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int                 `yaml:"max_tokens" koanf:"max_tokens"`
	MaxRetries  int                 `yaml:"max_retries" koanf:"max_retries"`
	NATSURL     string              `yaml:"nats_url,omitempty" koanf:"nats_url"`
	LogLevel    string              `yaml:"log_level" koanf:"log_level"`
	LogPretty   bool                `yaml:"log_pretty" koanf:"log_pretty"`
}
