package stylist

import (
	"encoding/json"
	"fmt"
)

// requirement describes the expected shape of one AI response object:
// which keys must be present, which must be JSON arrays, and which are
// restricted to an enumerated value set. Keys are checked in declaration
// order so the first offending field is reported deterministically.
type requirement struct {
	required []string
	arrays   map[string]bool
	enums    map[string][]string
}

// parseObject unmarshals a raw JSON payload into a generic object and
// validates it against req. A payload that is not a JSON object at all is a
// parse failure (the caller classifies it as a service error); a
// well-formed object with a missing or invalid field fails with a
// SchemaError naming that field.
func parseObject(raw []byte, req requirement) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("parsing response object: %w", err)
	}
	if serr := checkObject(obj, req); serr != nil {
		return nil, serr
	}
	return obj, nil
}

// checkObject validates field presence, array shape, and enum membership.
// Enum values outside the declared set are rejected, never coerced. Plain
// string fields may be empty: display-time defaulting of sparse free-text
// values is the caller's decision, absence is not.
func checkObject(obj map[string]any, req requirement) *SchemaError {
	for _, key := range req.required {
		v, ok := obj[key]
		if !ok || v == nil {
			return &SchemaError{Field: key, Reason: "missing"}
		}

		if req.arrays[key] {
			if _, isArr := v.([]any); !isArr {
				return &SchemaError{Field: key, Reason: "not an array"}
			}
			continue
		}

		s, isStr := v.(string)
		if !isStr {
			return &SchemaError{Field: key, Reason: "not a string"}
		}

		if allowed, restricted := req.enums[key]; restricted {
			if !contains(allowed, s) {
				return &SchemaError{Field: key, Reason: fmt.Sprintf("value %q not in %v", s, allowed)}
			}
		}
	}
	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
