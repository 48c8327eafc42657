package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0 (got %v)", c.API.Timeout)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}

	if c.Speech.Timeout <= 0 {
		return fmt.Errorf("speech.timeout must be > 0 (got %v)", c.Speech.Timeout)
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path is required")
	}

	return nil
}

// SpeechAvailable reports whether a transcriber command is configured.
// The voice pipeline degrades to a capability-unavailable error without one.
func (c *Config) SpeechAvailable() bool {
	return strings.TrimSpace(c.Speech.Command) != ""
}
