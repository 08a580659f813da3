package config

import (
	"os"
	"sync"
)

type JSearchConfig struct {
	APIKey string
}

var (
	jsearchConfig *JSearchConfig
	jsearchOnce   sync.Once
)

func LoadJSearchConfig() *JSearchConfig {
	jsearchOnce.Do(func() {
		jsearchConfig = &JSearchConfig{
			APIKey: os.Getenv("JSEARCH_API_KEY"),
		}
	})
	return jsearchConfig
}
