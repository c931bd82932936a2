// Package resolve computes display names, owners, and current-vs-prior
// amounts from a field set under a declarative resolution spec. Resolution
// is pure: it never mutates the source fields, so the same entry may be
// resolved any number of times, under any number of specs, with consistent
// results.
package resolve

import (
	"strings"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

// DefaultMemoSuffix marks the prior-year counterpart of a base field key.
const DefaultMemoSuffix = "M"

// DefaultOwnerKey is the conventional owner-code field.
const DefaultOwnerKey = "30"

// Item resolves one field set under the given spec.
//
// Name resolution walks the candidate keys in priority order, skipping
// empty values and sentinel tokens; exhausting the candidates yields the
// fallback label with NameUnresolved set. Absence of a name is a data
// condition, not a failure.
//
// Amount resolution runs the memo state machine over the base keys: a
// non-zero current value wins as Present; otherwise a non-zero memo
// counterpart wins as MissingPrior; otherwise the item is Inactive.
func Item(fields types.FieldSet, spec types.ResolveSpec) types.ResolvedItem {
	item := types.ResolvedItem{Status: types.StatusInactive}

	item.Name, item.NameUnresolved = resolveName(fields, spec, &item.Provenance)
	item.Owner = resolveOwner(fields, spec)

	suffix := spec.MemoSuffix
	if suffix == "" {
		suffix = DefaultMemoSuffix
	}

	// Current year first, across all candidates, then the memo pass:
	// a current-year value on a lower-priority key still beats a
	// prior-year value on a higher-priority one.
	for _, key := range spec.AmountKeys {
		if v := fields.Get(key); types.ParseAmount(v) != 0 {
			item.Status = types.StatusPresent
			item.Current = v
			item.Provenance = append(item.Provenance, key)
			return item
		}
	}
	for _, key := range spec.AmountKeys {
		memo := key + suffix
		if v := fields.Get(memo); types.ParseAmount(v) != 0 {
			item.Status = types.StatusMissingPrior
			item.Prior = v
			item.Provenance = append(item.Provenance, memo)
			return item
		}
	}
	return item
}

func resolveName(fields types.FieldSet, spec types.ResolveSpec, provenance *[]string) (string, bool) {
	for _, key := range spec.NameKeys {
		v := fields.Get(key)
		if v == "" || isSentinel(v, spec.Sentinels) {
			continue
		}
		*provenance = append(*provenance, key)
		return v, false
	}
	return spec.Fallback, true
}

func resolveOwner(fields types.FieldSet, spec types.ResolveSpec) string {
	key := spec.OwnerKey
	if key == "" {
		key = DefaultOwnerKey
	}
	switch strings.ToUpper(fields.Get(key)) {
	case "S":
		return types.OwnerSpouse
	case "J":
		return types.OwnerJoint
	default:
		return types.OwnerTaxpayer
	}
}

// isSentinel matches case-insensitively against the configured placeholder
// tokens meaning "unspecified".
func isSentinel(value string, sentinels []string) bool {
	for _, s := range sentinels {
		if strings.EqualFold(value, s) {
			return true
		}
	}
	return false
}
