package config

// Default model per provider. Groq's llama-3.1-8b-instant is the
// tutoring workhorse; vision requests need a multimodal model and fall
// back to the provider's vision default at call time.
var defaultModels = map[ProviderType]string{
	ProviderGroq:   "llama-3.1-8b-instant",
	ProviderOpenAI: "gpt-4o-mini",
}

var defaultVisionModels = map[ProviderType]string{
	ProviderGroq:   "llama-3.2-11b-vision-preview",
	ProviderOpenAI: "gpt-4o-mini",
}

// DefaultModel returns the default chat model for the given provider.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderGroq]
}

// DefaultVisionModel returns the default multimodal model for the provider.
func DefaultVisionModel(provider ProviderType) string {
	if m, ok := defaultVisionModels[provider]; ok {
		return m
	}
	return defaultVisionModels[ProviderGroq]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       8080,
			DataDir:    "data",
			Provider:   ProviderGroq,
			Model:      DefaultModel(ProviderGroq),
			DailyLimit: 5,
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:8080",
			Theme:   ThemeDark,
		},
	}
}
