package llm

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
)

// New constructs the Provider selected by the `llm.provider` config key.
// Gemini is the default.
func New(ctx context.Context, config *viper.Viper) (Provider, error) {
	provider := config.GetString("llm.provider")
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiProvider(
			ctx,
			config.GetString("llm.gemini.api_key"),
			config.GetString("llm.gemini.model"),
		)
	case "openai":
		return NewOpenAIProvider(
			config.GetString("llm.openai.api_key"),
			config.GetString("llm.openai.model"),
			config.GetString("llm.openai.base_url"),
		)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", provider)
	}
}
