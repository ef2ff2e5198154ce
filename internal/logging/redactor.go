package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var keySegment = regexp.MustCompile(`[^a-z0-9]+`)

// redactor masks values whose key names a secret. Keys are split on
// non-alphanumerics, so "session_cookie" matches on "cookie".
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "cookie", "auth", "credential"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact returns a copy of the flattened key/value pairs with sensitive
// values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		if key, ok := result[i].(string); ok && r.isSensitive(key) {
			result[i+1] = redacted
		}
	}
	return result
}

func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegment.Split(strings.ToLower(key), -1) {
		if r.sensitiveWords[part] {
			return true
		}
	}
	return false
}
