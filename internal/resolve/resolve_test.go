package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

func fields(kv map[string]string) types.FieldSet {
	fs := make(types.FieldSet, len(kv))
	for k, v := range kv {
		fs[k] = types.Field{Key: k, Value: v}
	}
	return fs
}

var interestSpec = types.ResolveSpec{
	NameKeys:   []string{"40"},
	Sentinels:  []string{"estimate", "various", "unknown"},
	Fallback:   "Unknown Payer",
	AmountKeys: []string{"71"},
	MemoSuffix: "M",
	OwnerKey:   "30",
}

func TestItemNameResolution(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		spec           types.ResolveSpec
		wantName       string
		wantUnresolved bool
	}{
		{
			name:     "first candidate wins",
			fields:   map[string]string{"40": "FIRST BANK", "71": "10"},
			spec:     interestSpec,
			wantName: "FIRST BANK",
		},
		{
			name: "empty candidate skipped",
			fields: map[string]string{
				"46": "", "956": "PARTNER LLC",
			},
			spec: types.ResolveSpec{
				NameKeys: []string{"46", "956", "90"},
				Fallback: "Unknown Payer",
			},
			wantName: "PARTNER LLC",
		},
		{
			name:     "sentinel skipped case-insensitively",
			fields:   map[string]string{"40": "VARIOUS", "71": "10"},
			spec:     interestSpec,
			wantName: "Unknown Payer", wantUnresolved: true,
		},
		{
			name:     "all candidates exhausted",
			fields:   map[string]string{"71": "10"},
			spec:     interestSpec,
			wantName: "Unknown Payer", wantUnresolved: true,
		},
		{
			name: "sentinel then real candidate",
			fields: map[string]string{
				"46": "ESTIMATE", "956": "REAL NAME",
			},
			spec: types.ResolveSpec{
				NameKeys:  []string{"46", "956"},
				Sentinels: []string{"estimate"},
				Fallback:  "Unknown Payer",
			},
			wantName: "REAL NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Item(fields(tt.fields), tt.spec)
			assert.Equal(t, tt.wantName, r.Name)
			assert.Equal(t, tt.wantUnresolved, r.NameUnresolved)
		})
	}
}

func TestItemOwnerResolution(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "T", want: types.OwnerTaxpayer},
		{code: "S", want: types.OwnerSpouse},
		{code: "s", want: types.OwnerSpouse},
		{code: "J", want: types.OwnerJoint},
		{code: "", want: types.OwnerTaxpayer},
		{code: "X", want: types.OwnerTaxpayer},
	}

	for _, tt := range tests {
		t.Run("owner code "+tt.code, func(t *testing.T) {
			r := Item(fields(map[string]string{"30": tt.code}), interestSpec)
			assert.Equal(t, tt.want, r.Owner)
		})
	}
}

func TestItemAmountStateMachine(t *testing.T) {
	tests := []struct {
		name        string
		fields      map[string]string
		wantStatus  string
		wantCurrent string
		wantPrior   string
	}{
		{
			name:        "current value present",
			fields:      map[string]string{"71": "512.33"},
			wantStatus:  types.StatusPresent,
			wantCurrent: "512.33",
		},
		{
			name:       "only memo value",
			fields:     map[string]string{"71": "0.00", "71M": "1,250.00"},
			wantStatus: types.StatusMissingPrior,
			wantPrior:  "1,250.00",
		},
		{
			name:       "memo without base key",
			fields:     map[string]string{"71M": "99.00"},
			wantStatus: types.StatusMissingPrior,
			wantPrior:  "99.00",
		},
		{
			name:       "both zero",
			fields:     map[string]string{"71": "0.00", "71M": "0"},
			wantStatus: types.StatusInactive,
		},
		{
			name:       "no amount fields at all",
			fields:     map[string]string{"40": "BANK"},
			wantStatus: types.StatusInactive,
		},
		{
			name:        "current beats memo",
			fields:      map[string]string{"71": "100.00", "71M": "900.00"},
			wantStatus:  types.StatusPresent,
			wantCurrent: "100.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Item(fields(tt.fields), interestSpec)
			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.wantCurrent, r.Current)
			assert.Equal(t, tt.wantPrior, r.Prior)
		})
	}
}

func TestItemCurrentPassBeatsMemoAcrossKeys(t *testing.T) {
	spec := types.ResolveSpec{
		AmountKeys: []string{"31", "32"},
		MemoSuffix: "M",
	}
	// A current value on the lower-priority key still beats a memo value
	// on the higher-priority one.
	r := Item(fields(map[string]string{"31M": "500.00", "32": "10.00"}), spec)

	assert.Equal(t, types.StatusPresent, r.Status)
	assert.Equal(t, "10.00", r.Current)
	assert.Contains(t, r.Provenance, "32")
}

func TestItemDefaultsApplied(t *testing.T) {
	// Empty memo suffix and owner key fall back to the conventions.
	spec := types.ResolveSpec{AmountKeys: []string{"71"}}
	r := Item(fields(map[string]string{"71M": "5.00", "30": "S"}), spec)

	assert.Equal(t, types.StatusMissingPrior, r.Status)
	assert.Equal(t, types.OwnerSpouse, r.Owner)
}

func TestItemProvenance(t *testing.T) {
	r := Item(fields(map[string]string{"40": "BANK", "71M": "5.00"}), interestSpec)

	assert.Equal(t, []string{"40", "71M"}, r.Provenance)
}

func TestItemDoesNotMutateFields(t *testing.T) {
	fs := fields(map[string]string{"40": "BANK", "71": "10.00"})
	before := fs.Clone()

	Item(fs, interestSpec)
	Item(fs, interestSpec)

	assert.Equal(t, before, fs)
}

func TestItemDisplayValue(t *testing.T) {
	present := Item(fields(map[string]string{"71": "10.00"}), interestSpec)
	assert.Equal(t, "10.00", present.DisplayValue())
	assert.InDelta(t, 10.0, present.DisplayAmount(), 0.0001)

	missing := Item(fields(map[string]string{"71M": "25.00"}), interestSpec)
	assert.Equal(t, "25.00", missing.DisplayValue())
}
