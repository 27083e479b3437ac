package main

import (
	"os"
	"strconv"
)

// Config holds process-level settings read from the environment.
type Config struct {
	Port             string
	NATSURL          string // empty disables event publishing
	ScoringRulesPath string // empty uses default scoring
	PersistPicks     bool   // write the pick log to Postgres
}

func loadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		NATSURL:          getEnv("NATS_URL", ""),
		ScoringRulesPath: getEnv("SCORING_RULES_PATH", ""),
		PersistPicks:     getEnvAsBool("PERSIST_PICKS", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
