package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is size-limited; message content limits are enforced separately
// by the service layer's validators.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// 1MB is generous for a single message (requires w for a proper 413)
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
