package watson

import (
	"encoding/json"
	"net/http"
)

// DetailedResponse carries the raw HTTP details of a call alongside its
// decoded result. Result is nil when the service returned no body.
type DetailedResponse struct {
	StatusCode int
	Headers    http.Header
	Result     any
	RawResult  []byte
}

// GetHeader returns the first value of the named response header.
func (r *DetailedResponse) GetHeader(key string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// String renders the decoded result as indented JSON, falling back to the raw body.
func (r *DetailedResponse) String() string {
	if r == nil {
		return ""
	}
	if r.Result != nil {
		if b, err := json.MarshalIndent(r.Result, "", "  "); err == nil {
			return string(b)
		}
	}
	return string(r.RawResult)
}

// isJSON reports whether a Content-Type header names a JSON media type.
func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	return jsonMediaType.MatchString(contentType)
}
