package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tbckr/fwver/internal/define"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindDuration
	kindList
)

type keySpec struct {
	kind keyKind
	// enum restricts string values when non-empty.
	enum []string
	// min is the smallest accepted int.
	min int
	// identifier requires a C identifier.
	identifier bool
}

var schema = map[string]keySpec{
	"verbose":      {kind: kindBool},
	"output":       {kind: kindString, enum: []string{"text", "json", "plain"}},
	"git":          {kind: kindString},
	"prefix":       {kind: kindString},
	"no_prefix":    {kind: kindBool},
	"sentinel":     {kind: kindString},
	"override":     {kind: kindString},
	"match":        {kind: kindList},
	"abbrev":       {kind: kindInt, min: 0},
	"dirty":        {kind: kindBool},
	"first_parent": {kind: kindBool},
	"timeout":      {kind: kindDuration},
	"concurrency":  {kind: kindInt, min: 1},
	"macro":        {kind: kindString, identifier: true},
	"format":       {kind: kindString, enum: define.Formats()},
	"symbol":       {kind: kindString},
}

// ValidKeys returns every settable config key, sorted.
func ValidKeys() []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NormalizeKey converts hyphenated flag names to their config key equivalents
// (e.g. "first-parent" → "first_parent").
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
}

// ValidateKey returns ErrUnknownKey when key is not part of the schema.
// Hyphenated spellings are accepted.
func ValidateKey(key string) error {
	if _, ok := schema[NormalizeKey(key)]; !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(ValidKeys(), ", "))
	}
	return nil
}

// KeyCompletions returns the accepted values for enum and bool keys.
func KeyCompletions(key string) []string {
	spec, ok := schema[NormalizeKey(key)]
	if !ok {
		return nil
	}
	switch {
	case len(spec.enum) > 0:
		return slices.Clone(spec.enum)
	case spec.kind == kindBool:
		return []string{"true", "false"}
	}
	return nil
}

// ParseValue converts value into the typed form stored in the config file
// for key, validating it against the schema.
func ParseValue(key, value string) (any, error) {
	key = NormalizeKey(key)
	spec, ok := schema[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	switch spec.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: must be true or false", value, key)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: must be an integer", value, key)
		}
		if n < spec.min {
			return nil, fmt.Errorf("invalid value %d for %s: must be at least %d", n, key, spec.min)
		}
		return n, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid value %q for %s: must be positive", value, key)
		}
		return d.String(), nil
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	}

	if len(spec.enum) > 0 && !slices.Contains(spec.enum, value) {
		return nil, fmt.Errorf("invalid value %q for %s: must be one of %s", value, key, strings.Join(spec.enum, ", "))
	}
	if spec.identifier {
		if err := define.ValidateName(value); err != nil {
			return nil, err
		}
	}
	return value, nil
}
