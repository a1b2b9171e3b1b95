package config

import "os"

// Get returns the environment value for key, or fallback when unset or
// empty. Load a .env file first (godotenv) in the composition root.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
