package getsafe

import "time"

// String returns payload[key] when it holds a string.
func String(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// Metadata returns payload[key] when it holds a JSON object.
func Metadata(payload map[string]any, key string) map[string]any {
	if m, ok := payload[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Time parses payload[key] as RFC 3339; zero time when absent or malformed.
func Time(payload map[string]any, key string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, String(payload, key))
	if err != nil {
		return time.Time{}
	}
	return t
}
