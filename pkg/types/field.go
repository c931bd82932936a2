package types

import (
	"strconv"
	"strings"
)

// Field is a single (key, value) pair from a field line. Key is the exact
// identifier as it appeared in the source, including any suffix character:
// a base field ("71") and its memo counterpart ("71M") are distinct keys
// and are never merged.
type Field struct {
	Key   string
	Value string
}

// FieldSet maps exact field keys to fields within one entry or linked
// entity. Within a set, keys are unique; a later occurrence of the same
// exact key overwrites, but a suffixed variant never overwrites its base.
type FieldSet map[string]Field

// Get returns the trimmed value for the exact key, or "" when absent.
func (fs FieldSet) Get(key string) string {
	return strings.TrimSpace(fs[key].Value)
}

// Has reports whether the exact key is present.
func (fs FieldSet) Has(key string) bool {
	_, ok := fs[key]
	return ok
}

// Amount returns the numeric interpretation of the value for key.
// Currency symbols, commas, and surrounding whitespace are ignored;
// parentheses denote negation. Unparseable or absent values are 0.
func (fs FieldSet) Amount(key string) float64 {
	return ParseAmount(fs.Get(key))
}

// Keys returns the field keys in unspecified order.
func (fs FieldSet) Keys() []string {
	keys := make([]string, 0, len(fs))
	for k := range fs {
		keys = append(keys, k)
	}
	return keys
}

// Clone returns an independent copy of the set.
func (fs FieldSet) Clone() FieldSet {
	cp := make(FieldSet, len(fs))
	for k, v := range fs {
		cp[k] = v
	}
	return cp
}

// ParseAmount converts a source value to a float64. The stored value is
// never modified; this is a read-only interpretation used for zero tests
// and advisory sums.
func ParseAmount(value string) float64 {
	clean := strings.TrimSpace(value)
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "$", "")
	if clean == "" {
		return 0
	}
	neg := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		neg = true
		clean = clean[1 : len(clean)-1]
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

// ListRow is one sub-record of an overflow list: an identifier plus a value.
type ListRow struct {
	ID    string
	Value string
}

// ListBlock is an overflow structure attached to a specific field key:
// a declared sub-record count and the sub-records actually consumed.
type ListBlock struct {
	FieldKey string
	Declared int
	Rows     []ListRow
}

// Sum returns the numeric total of the sub-record values.
func (lb ListBlock) Sum() float64 {
	var total float64
	for _, r := range lb.Rows {
		total += ParseAmount(r.Value)
	}
	return total
}

// CountMatches reports whether the number of consumed sub-records equals
// the declared count.
func (lb ListBlock) CountMatches() bool {
	return len(lb.Rows) == lb.Declared
}

// Reconciles reports whether the sub-record sum matches the parent field
// value within half a cent. Source data may legitimately diverge; callers
// surface a mismatch as a warning, never correct it.
func (lb ListBlock) Reconciles(parentValue string) bool {
	diff := lb.Sum() - ParseAmount(parentValue)
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.005
}
