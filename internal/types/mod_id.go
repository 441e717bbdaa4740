package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ModID is the canonical identifier of a workshop item. Values are only
// created through NormalizeModID so that set and map equality is exact.
type ModID string

func (id ModID) String() string {
	return string(id)
}

// NormalizeModID converts a raw identifier (spreadsheet cell, scraped
// attribute, CLI argument) into its canonical decimal form. Numeric input
// is truncated toward zero, so "2392709985.0" and 2392709985 both yield
// "2392709985".
func NormalizeModID(raw any) (ModID, error) {
	switch value := raw.(type) {
	case nil:
		return "", fmt.Errorf("mod id is empty")
	case ModID:
		return NormalizeModID(string(value))
	case string:
		return normalizeModIDString(value)
	case int:
		return normalizeModIDInt(int64(value))
	case int32:
		return normalizeModIDInt(int64(value))
	case int64:
		return normalizeModIDInt(value)
	case uint:
		return ModID(strconv.FormatUint(uint64(value), 10)), nil
	case uint32:
		return ModID(strconv.FormatUint(uint64(value), 10)), nil
	case uint64:
		return ModID(strconv.FormatUint(value, 10)), nil
	case float32:
		return normalizeModIDFloat(float64(value))
	case float64:
		return normalizeModIDFloat(value)
	default:
		return normalizeModIDString(fmt.Sprint(value))
	}
}

// MustModID is NormalizeModID for literals known to be valid.
func MustModID(raw any) ModID {
	id, err := NormalizeModID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func normalizeModIDString(value string) (ModID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("mod id is empty")
	}
	if parsed, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
		return ModID(strconv.FormatUint(parsed, 10)), nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return "", fmt.Errorf("mod id %q is not numeric", value)
	}
	return normalizeModIDFloat(parsed)
}

func normalizeModIDInt(value int64) (ModID, error) {
	if value < 0 {
		return "", fmt.Errorf("mod id %d is negative", value)
	}
	return ModID(strconv.FormatInt(value, 10)), nil
}

func normalizeModIDFloat(value float64) (ModID, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("mod id %v is not finite", value)
	}
	if value < 0 {
		return "", fmt.Errorf("mod id %v is negative", value)
	}
	truncated := math.Trunc(value)
	if truncated == 0 {
		// drops the sign of -0
		truncated = 0
	}
	return ModID(strconv.FormatFloat(truncated, 'f', 0, 64)), nil
}

// DedupModIDs removes repeated identifiers, keeping the first occurrence.
func DedupModIDs(ids []ModID) []ModID {
	seen := make(map[ModID]struct{}, len(ids))
	out := make([]ModID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ModIDStrings renders ids as plain strings, preserving order.
func ModIDStrings(ids []ModID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
