// internal/httpclient/headers.go
package httpclient

import "net/http"

// NormalizeHeaders flattens the header shapes callers hand us into one
// canonical mapping. A plain map is copied, an http.Header keeps the first
// value per key, and anything else (including nil) becomes an empty mapping.
// Normalization never fails.
func NormalizeHeaders(headers any) map[string]string {
	normalized := make(map[string]string)

	switch h := headers.(type) {
	case map[string]string:
		for key, value := range h {
			normalized[key] = value
		}
	case http.Header:
		for key, values := range h {
			if len(values) > 0 {
				normalized[key] = values[0]
			}
		}
	case map[string][]string:
		for key, values := range h {
			if len(values) > 0 {
				normalized[key] = values[0]
			}
		}
	}

	return normalized
}
