package config

import "time"

// Config is the root application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	LLM    LLMConfig    `yaml:"llm"`
	Speech SpeechConfig `yaml:"speech"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds settings for the diary backend REST API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"DIETDIARY_API_BASE_URL" env-required:"true"`
	Key     string        `yaml:"key"      env:"DIETDIARY_API_KEY"      env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"DIETDIARY_API_TIMEOUT"  env-default:"15s"`
}

// LLMConfig holds settings for the transcript extraction model.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"    env:"DIETDIARY_LLM_API_KEY"`
	Model     string `yaml:"model"      env:"DIETDIARY_LLM_MODEL"      env-default:"claude-3-5-haiku-latest"`
	MaxTokens int64  `yaml:"max_tokens" env:"DIETDIARY_LLM_MAX_TOKENS" env-default:"1024"`
}

// SpeechConfig holds settings for the speech capture capability.
// Command names an external transcriber executable that prints one
// finalized transcript to stdout; an empty command means speech capture
// is unavailable on this machine.
type SpeechConfig struct {
	Command  string        `yaml:"command"  env:"DIETDIARY_SPEECH_COMMAND"`
	Language string        `yaml:"language" env:"DIETDIARY_SPEECH_LANGUAGE" env-default:"zh-TW"`
	Timeout  time.Duration `yaml:"timeout"  env:"DIETDIARY_SPEECH_TIMEOUT"  env-default:"60s"`
}

// StoreConfig holds settings for the local session/cache store.
type StoreConfig struct {
	Path string `yaml:"path" env:"DIETDIARY_STORE_PATH" env-default:"~/.dietdiary/dietdiary.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
