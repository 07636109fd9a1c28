package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
)

// Theme is the console color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Config is the top-level configuration, corresponding to .schoolai.yml.
type Config struct {
	Server ServerConfig `yaml:"server" koanf:"server"`
	Client ClientConfig `yaml:"client" koanf:"client"`
}

// ServerConfig holds settings for the `serve` command.
type ServerConfig struct {
	Port       int          `yaml:"port" koanf:"port"`
	DataDir    string       `yaml:"data_dir" koanf:"data_dir"`
	Provider   ProviderType `yaml:"provider" koanf:"provider"`
	Model      string       `yaml:"model" koanf:"model"`
	// VisionModel serves image questions; empty means use Model.
	VisionModel string `yaml:"vision_model" koanf:"vision_model"`
	DailyLimit  int    `yaml:"daily_limit" koanf:"daily_limit"`
	AllowAll    bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ClientConfig holds settings for the chat/stats client commands.
// Theme is the persisted light/dark preference; it survives across runs
// the way the web client keeps it in browser storage.
type ClientConfig struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	Theme   Theme  `yaml:"theme" koanf:"theme"`
}
