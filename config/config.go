package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
    Port           string
    DatabaseURL    string
    JWTSecret      string
    OpenAIAPIKey   string
    OpenAIModel    string
    GeminiAPIKey   string
    GeminiModel    string
    CloudinaryURL  string
    GoogleClientID string
    CacheSize      int           // max entries in the insight cache
    CacheTTL       time.Duration // lifetime of a cached answer
    AITimeout      time.Duration // upper bound on a single provider call
    AIRateRPM      int           // per-user requests/minute on AI routes
}

func Load() Config {
    _ = godotenv.Load()
    cfg := Config{
        Port:           get("PORT", "8080"),
        DatabaseURL:    must("DATABASE_URL"),
        JWTSecret:      must("JWT_SECRET"),
        OpenAIAPIKey:   get("OPENAI_API_KEY", ""),
        OpenAIModel:    get("OPENAI_MODEL", "gpt-4o-mini"),
        GeminiAPIKey:   get("GEMINI_API_KEY", ""),
        GeminiModel:    get("GEMINI_MODEL", "gemini-1.5-flash"),
        CloudinaryURL:  must("CLOUDINARY_URL"),
        GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
        CacheSize:      getInt("CACHE_SIZE", 256),
        CacheTTL:       getDuration("CACHE_TTL", time.Hour),
        AITimeout:      getDuration("AI_TIMEOUT", 60*time.Second),
        AIRateRPM:      getInt("AI_RATE_LIMIT_RPM", 10),
    }
    return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
