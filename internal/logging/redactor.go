package logging

import (
	"net/url"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var segmentSep = regexp.MustCompile(`[^a-z0-9]+`)

// sensitiveWords are key segments whose values are never logged.
var sensitiveWords = map[string]bool{
	"secret":     true,
	"password":   true,
	"token":      true,
	"key":        true,
	"auth":       true,
	"credential": true,
	"dsn":        true,
}

type redactor struct {
	words map[string]bool
}

func newRedactor() *redactor {
	return &redactor{words: sensitiveWords}
}

// redact returns a copy of the flattened key-value pairs in which values of
// sensitive keys are replaced and URL passwords in other string values are
// masked.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := append([]any(nil), pairs...)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			out[i+1] = redacted
			continue
		}
		if s, ok := out[i+1].(string); ok {
			out[i+1] = maskURLPassword(s)
		}
	}
	return out
}

// isSensitive matches whole segments only: "api_token" is sensitive,
// "apitoken" is not.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSep.Split(strings.ToLower(key), -1) {
		if r.words[part] {
			return true
		}
	}
	return false
}

// maskURLPassword hides the password of URLs such as postgres DSNs that end
// up in error messages.
func maskURLPassword(s string) string {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	if _, has := u.User.Password(); !has {
		return s
	}
	return u.Redacted()
}
