package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// NewViper loads config.yaml (or config.prod.yaml when ENV=production) from
// the working directory. Every key can be overridden through the environment,
// e.g. MATHQUIZ_LLM_GEMINI_API_KEY for llm.gemini.api_key.
func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	config.SetEnvPrefix("MATHQUIZ")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return config
}
