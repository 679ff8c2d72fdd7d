package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedValue indicates a supplied value that is not numeric. The
// whole submission is rejected rather than treating the value as zero,
// so an upstream extraction failure cannot masquerade as a zero-capital
// scenario.
var ErrMalformedValue = errors.New("malformed value")

// ValueMap is a sparse mapping from canonical key to supplied value.
// Canonical keys are lowercase with any "row_" prefix stripped, so
// "row_010" and "010" address the same entry. Absent keys read as zero.
type ValueMap map[string]float64

func canonicalKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	return strings.TrimPrefix(k, "row_")
}

// ParseValueMap converts raw decoded JSON values into a ValueMap.
// Accepted entry values: JSON numbers (float64 or json.Number after
// decoding) and null (treated as absent). Anything else fails with
// ErrMalformedValue naming the offending key.
func ParseValueMap(raw map[string]any) (ValueMap, error) {
	vm := make(ValueMap, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case nil:
			// null reads as not supplied
		case float64:
			vm[canonicalKey(key)] = v
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: key %q: %q is not numeric", ErrMalformedValue, key, v.String())
			}
			vm[canonicalKey(key)] = f
		default:
			return nil, fmt.Errorf("%w: key %q: expected a number, got %T", ErrMalformedValue, key, val)
		}
	}
	return vm, nil
}

// Get returns the value for a key under either spelling, or zero.
func (vm ValueMap) Get(key string) float64 {
	return vm[canonicalKey(key)]
}

// Has reports whether the key was supplied at all.
func (vm ValueMap) Has(key string) bool {
	_, ok := vm[canonicalKey(key)]
	return ok
}

func (vm ValueMap) sum(keys ...string) float64 {
	var total float64
	for _, k := range keys {
		total += vm[k]
	}
	return total
}
