package ratelimit

import (
	"net/http"
	"strings"
)

// healthPath is never rate limited so probes keep working under load.
const healthPath = "/health"

// MatchEndpoint returns the configuration for a request, or nil to use the default tier.
// A config path ending in "/" matches every path below it, e.g. "/resumes/" matches "/resumes/{id}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == healthPath && method == http.MethodGet {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
