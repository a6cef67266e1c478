package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv parses key with parse, falling back to defaultValue when the
// variable is unset or malformed.
func lookupEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return value
}

func getStringEnv(key string, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(s string) (string, error) { return s, nil })
}

func getIntEnv(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func getBoolEnv(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}

// getDurationEnv reads a whole number of units, e.g. seconds for
// HTTP_REQUEST_TIMEOUT=3.
func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func getListEnv(key string, defaultValue []string) []string {
	return lookupEnv(key, defaultValue, func(s string) ([]string, error) {
		var items []string
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return nil, strconv.ErrSyntax
		}
		return items, nil
	})
}
