package types

// Resolution statuses. Present means the current-year value is non-zero;
// MissingPrior means only the prior-year memo counterpart carries a value
// (the document existed last year and is expected but absent); Inactive
// means no activity in either year.
const (
	StatusPresent      = "present"
	StatusMissingPrior = "missing_prior"
	StatusInactive     = "inactive"
)

// Owner codes resolved from the owner field (T/S/J in the source).
const (
	OwnerTaxpayer = "taxpayer"
	OwnerSpouse   = "spouse"
	OwnerJoint    = "joint"
)

// ResolveSpec is the declarative input to the resolution engine: ordered
// name candidates, the sentinel tokens that disqualify a name value, a
// fallback label, ordered amount base keys, and the memo suffix character
// that marks a prior-year counterpart.
type ResolveSpec struct {
	NameKeys   []string `yaml:"name_keys"`
	Sentinels  []string `yaml:"sentinels"`
	Fallback   string   `yaml:"fallback"`
	AmountKeys []string `yaml:"amount_keys"`
	MemoSuffix string   `yaml:"memo_suffix"`
	OwnerKey   string   `yaml:"owner_key"`
}

// ResolvedItem is the resolution engine's output. Current and Prior hold
// the verbatim source values that matched; Provenance lists the field keys
// that contributed, in the order they were consulted and accepted.
type ResolvedItem struct {
	Name           string
	NameUnresolved bool
	Owner          string
	Current        string
	Prior          string
	Status         string
	Provenance     []string
}

// DisplayValue returns the value a consumer should show: the current-year
// value when present, otherwise the prior-year memo value.
func (r ResolvedItem) DisplayValue() string {
	if r.Status == StatusPresent {
		return r.Current
	}
	return r.Prior
}

// DisplayAmount returns the numeric interpretation of DisplayValue.
func (r ResolvedItem) DisplayAmount() float64 {
	return ParseAmount(r.DisplayValue())
}

// LinkGroup declares one header/child join: the header form code anchoring
// the group and the child form codes that link to it by structural index.
type LinkGroup struct {
	Name     string   `yaml:"name"`
	Header   string   `yaml:"header"`
	Children []string `yaml:"children"`
}
