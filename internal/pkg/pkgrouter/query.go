package pkgrouter

import (
	"net/http"
	"strings"
)

// Query returns the first non-blank value among the given query parameters,
// trimmed. Aliases of one parameter are listed in order of preference.
func Query(r *http.Request, keys ...string) string {
	values := r.URL.Query()
	for _, key := range keys {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
