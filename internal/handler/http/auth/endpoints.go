package auth

import "strings"

// DefaultPublicEndpoints are reachable without a token.
//
//   - /health, /ready, /live: orchestration health checks
//   - /metrics: Prometheus scraping
//   - /swagger/: API documentation
//   - /actuator/: health check paths kept for existing deployments
var DefaultPublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/actuator/",
}

// IsPublicEndpoint reports whether path is covered by one of endpoints.
//
// Entries ending in '/' match by prefix. Other entries match exactly, with an optional
// trailing slash, so "/health" covers "/health/" but not "/health/detail" or "/healthcheck".
//
//	IsPublicEndpoint("/swagger/index.html", DefaultPublicEndpoints) // true
//	IsPublicEndpoint("/posts", DefaultPublicEndpoints)              // false
func IsPublicEndpoint(path string, endpoints []string) bool {
	for _, endpoint := range endpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
	}
	return false
}
