package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Config paths may use ServeMux-style wildcards ("/resumes/{id}/stage"), and a path
// ending in "/" matches everything below it.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never limited
	if path == "/health" && (method == http.MethodGet || method == http.MethodHead) {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && config.Path == path {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && matchPattern(config.Path, path) {
			return config
		}
	}

	return nil
}

// matchPattern reports whether path matches pattern segment by segment, where a
// {name} segment matches any single non-empty segment
func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern)
	}
	if !strings.Contains(pattern, "{") {
		return false
	}

	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

// bucketPath is the path a bucket is keyed by. Requests matching a wildcard
// config share one bucket per client.
func bucketPath(endpoint string, cfg *EndpointConfig) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return endpoint
}
