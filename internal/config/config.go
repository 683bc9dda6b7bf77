package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	RedisURL string
	APIKey   string

	OpenAIAPIKey string
	OpenAIModel  string

	// ResultDelayMs simulates a long-running backtest before results are
	// ready. 0 disables the delay; outputs are identical either way.
	ResultDelayMs int

	SessionTTLMins int
	ReaperPollSecs int
}

func Load() *Config {
	cfg := &Config{
		Port:         os.Getenv("PORT"),
		RedisURL:     os.Getenv("REDIS_URL"),
		APIKey:       os.Getenv("API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, backtest memoization disabled")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, strategy analysis disabled")
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.ResultDelayMs = intEnv("RESULT_DELAY_MS", 0)
	cfg.SessionTTLMins = intEnv("SESSION_TTL_MINS", 120)
	cfg.ReaperPollSecs = intEnv("REAPER_POLL_SECS", 300)

	return cfg
}

func intEnv(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s=%q, using %d", name, v, fallback)
		return fallback
	}
	return n
}
