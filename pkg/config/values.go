package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseValue types a command line or environment value the way YAML
// would: "false" is a bool, "8" an int, "[a, b]" a list. Anything that
// does not parse, or parses to nothing, stays the raw string.
func ParseValue(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}

	var value interface{}
	if err := yaml.Unmarshal([]byte(trimmed), &value); err != nil {
		return raw
	}
	if value == nil {
		switch trimmed {
		case "null", "Null", "NULL", "~":
			return nil
		}
		return raw
	}
	return value
}
