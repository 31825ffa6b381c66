package ratelimit

import (
	"strings"
)

// UnlimitedPaths are never rate limited for GET requests
var UnlimitedPaths = map[string]bool{
	"/":           true,
	"/api/health": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/api/applicants/" matches "/api/applicants/{id}").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && UnlimitedPaths[path] {
		return &EndpointConfig{
			Path:  path,
			Limit: 0, // Unlimited
		}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	// No match found
	return nil
}
