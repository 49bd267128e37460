package criteria

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

var (
	materialKeys   = []string{KeyMaterials, "material"}
	colorKeys      = []string{KeyColors, "colours", "color"}
	brandKeys      = []string{KeyBrands, "brand"}
	secondHandKeys = []string{KeySecondHand, "second_hand_acceptable", "second-hand"}
)

// Normalize turns a raw record into a fully populated Criteria.
// Missing or null values take the defaults: empty strings, empty slices and
// Occasion=true.
func Normalize(raw map[string]any) Criteria {
	return Criteria{
		Type:     stringField(raw, KeyType),
		Style:    stringField(raw, KeyStyle),
		Season:   stringField(raw, KeySeason),
		Budget:   budgetField(raw, KeyBudget),
		Material: listField(raw, false, materialKeys...),
		Colors:   listField(raw, false, colorKeys...),
		Brands:   listField(raw, true, brandKeys...),
		Occasion: boolField(raw, true, secondHandKeys...),
	}
}

// lookup returns the first non-null value stored under one of keys.
func lookup(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw map[string]any, keys ...string) string {
	v, ok := lookup(raw, keys...)
	if !ok {
		return ""
	}
	if list, isList := v.([]any); isList {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, scalarString(item))
		}
		return strings.Join(parts, ", ")
	}
	return scalarString(v)
}

func listField(raw map[string]any, dropFalsy bool, keys ...string) []string {
	v, ok := lookup(raw, keys...)
	if !ok || (dropFalsy && isFalsy(v)) {
		return []string{}
	}
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, scalarString(item))
		}
		return out
	case []string:
		return append([]string{}, val...)
	default:
		return []string{scalarString(val)}
	}
}

func budgetField(raw map[string]any, keys ...string) []float64 {
	v, ok := lookup(raw, keys...)
	if !ok {
		return []float64{}
	}
	switch val := v.(type) {
	case []any:
		out := make([]float64, 0, len(val))
		for _, item := range val {
			n, isNum := number(item)
			if !isNum {
				slog.Debug("dropping non-numeric budget bound", "value", item)
				continue
			}
			out = append(out, n)
		}
		return out
	case []float64:
		return append([]float64{}, val...)
	case map[string]any:
		lo, okLo := number(val["min"])
		hi, okHi := number(val["max"])
		if okLo && okHi {
			return []float64{lo, hi}
		}
	default:
		if n, isNum := number(val); isNum {
			return []float64{0, n}
		}
	}
	slog.Debug("unrecognized budget value", "value", v)
	return []float64{}
}

func boolField(raw map[string]any, def bool, keys ...string) bool {
	v, ok := lookup(raw, keys...)
	if !ok {
		return def
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "yes", "y", "oui":
			return true
		case "no", "n", "non":
			return false
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	slog.Debug("unrecognized second-hand flag, using default", "value", v, "default", def)
	return def
}

func number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case float64:
		return val == 0
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
