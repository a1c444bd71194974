package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Validator normalizes a configuration value. A returned error makes the
// loader fall back to defaultValue with a warning.
type Validator func(key, value, defaultValue string) (normalized string, err error)

var (
	validatorsMu sync.RWMutex
	validators   = map[string]Validator{}
)

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, exists := validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = validator
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// MinIntValidator accepts integers greater than or equal to min.
func MinIntValidator(min int) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "", fmt.Errorf("%q is not an integer", value)
		}
		if n < min {
			return "", fmt.Errorf("%d is below the minimum of %d", n, min)
		}
		return strconv.Itoa(n), nil
	}
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return MinIntValidator(1)
}

// EnumValidator accepts one of allowed, case-insensitively, and returns it
// lower-cased.
func EnumValidator(allowed ...string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[strings.ToLower(a)] = true
	}
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	choices := strings.Join(sorted, ", ")

	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(strings.TrimSpace(value))
		if !set[lower] {
			return "", fmt.Errorf("%q must be one of: %s", value, choices)
		}
		return lower, nil
	}
}

// BoolValidator normalizes 1/yes/on and 0/no/off to "true" and "false".
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "on":
			return "true", nil
		case "0", "false", "no", "off":
			return "false", nil
		}
		return "", fmt.Errorf("%q is not a boolean", value)
	}
}

var errNotHTTPURL = errors.New("must be an absolute http(s) URL")

// URLValidator accepts absolute http(s) URLs and strips a trailing slash.
func URLValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%q %w", value, errNotHTTPURL)
		}
		return strings.TrimRight(value, "/"), nil
	}
}

func initValidators() {
	for _, key := range []string{"api_timeout_seconds", "api_rate_per_second", "page_size", "logging_max_files"} {
		RegisterValidator(key, PositiveIntValidator())
	}
	RegisterValidator("api_max_retries", MinIntValidator(0))
	RegisterValidator("api_base_url", URLValidator())

	RegisterValidator("favorites_backend", EnumValidator("sqlite", "postgres", "toml", "memory"))
	RegisterValidator("table_format", EnumValidator("default", "minimal"))
	RegisterValidator("logging_level", EnumValidator("debug", "info", "warn", "error"))

	for _, key := range []string{"logging_enabled", "debug", "quiet"} {
		RegisterValidator(key, BoolValidator())
	}
}
