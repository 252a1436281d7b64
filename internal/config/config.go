package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string
	MongoURI       string
	MongoDB        string

	// RoomTTL bounds how long a room may wait for an opponent before the
	// janitor drops it. Zero disables the sweep.
	RoomTTL time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() Config {
	origins := strings.Split(getenv("ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		AllowedOrigins: origins,
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getenv("MONGO_DB", "koridor"),
		RoomTTL:        getenvDuration("ROOM_TTL", 30*time.Minute),
	}
}
