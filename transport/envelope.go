package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// IsSuccessful reports whether the response carries a 2xx status. It is
// deterministic and has no side effects.
func IsSuccessful(resp *Response) bool {
	return resp != nil && resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

// Decode parses the response body as JSON. An empty body yields (nil, nil):
// "no data" is a valid outcome distinct from failure, which IsSuccessful
// signals. A non-empty body that fails to parse yields an error so a 2xx with
// garbage is never silently treated as an empty entity.
func Decode(resp *Response) (any, error) {
	if resp == nil || len(resp.Body) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return payload, nil
}

// UnwrapEntity extracts a single entity from a decoded payload. The remote
// envelope shape varies between endpoints (data wrapped under "data", the
// resource noun, or at the top level), so each repository configures a
// priority list of unwrap keys tried in order before falling back to the
// payload itself.
func UnwrapEntity(payload any, priority ...string) map[string]any {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range priority {
		if inner, ok := m[key].(map[string]any); ok {
			return inner
		}
	}
	return m
}

// UnwrapList extracts an entity list from a decoded payload, trying the
// priority keys in order when the payload is a wrapping object.
func UnwrapList(payload any, priority ...string) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return toEntityList(v)
	case map[string]any:
		for _, key := range priority {
			if arr, ok := v[key].([]any); ok {
				return toEntityList(arr)
			}
		}
	}
	return nil
}

// ErrorMessage extracts a human-readable error message from a failure body,
// falling back to the HTTP status text.
func ErrorMessage(resp *Response) string {
	if resp == nil {
		return ""
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if msg, ok := body[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return http.StatusText(resp.StatusCode)
}

func toEntityList(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
