package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, {name} wildcard pattern, or prefix ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	idleTimeout := getEnvDuration("RATE_LIMIT_IDLE_TIMEOUT", time.Hour)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		IdleTimeout:     idleTimeout,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// Tiers can be tuned with RATE_LIMIT_UPLOAD_LIMIT, RATE_LIMIT_RANK_LIMIT and
// RATE_LIMIT_WRITE_LIMIT (requests per minute).
func DefaultEndpointConfigs() []EndpointConfig {
	uploadLimit := getEnvInt("RATE_LIMIT_UPLOAD_LIMIT", 60)
	rankLimit := getEnvInt("RATE_LIMIT_RANK_LIMIT", 30)
	writeLimit := getEnvInt("RATE_LIMIT_WRITE_LIMIT", 120)

	return []EndpointConfig{
		// Uploads extract and score documents
		{Path: "/upload-resume", Method: "POST", Limit: uploadLimit, Window: time.Minute, Burst: 10},

		// Whole-job rescoring and exports read every resume of a job
		{Path: "/jobs/{id}/ranking", Method: "GET", Limit: rankLimit, Window: time.Minute, Burst: 5},
		{Path: "/jobs/{id}/resumes.csv", Method: "GET", Limit: rankLimit, Window: time.Minute, Burst: 5},

		{Path: "/score", Method: "POST", Limit: writeLimit, Window: time.Minute, Burst: 20},
		{Path: "/keywords", Method: "POST", Limit: writeLimit, Window: time.Minute, Burst: 20},
		{Path: "/jobs", Method: "POST", Limit: writeLimit, Window: time.Minute, Burst: 10},
		{Path: "/resumes/{id}/stage", Method: "PATCH", Limit: writeLimit, Window: time.Minute, Burst: 20},
		{Path: "/resumes/{id}", Method: "DELETE", Limit: writeLimit, Window: time.Minute, Burst: 10},

		// Everything else uses the default limit; /health is never limited
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

