package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{name: "plain integer", value: "1500", want: 1500},
		{name: "decimal", value: "1500.25", want: 1500.25},
		{name: "comma grouping", value: "1,500.25", want: 1500.25},
		{name: "dollar sign", value: "$1,500.25", want: 1500.25},
		{name: "negative sign", value: "-42.10", want: -42.10},
		{name: "parentheses negate", value: "(300.00)", want: -300},
		{name: "parentheses with symbols", value: "($1,300.00)", want: -1300},
		{name: "surrounding whitespace", value: "  12.50  ", want: 12.50},
		{name: "empty", value: "", want: 0},
		{name: "non-numeric", value: "VARIOUS", want: 0},
		{name: "zero", value: "0.00", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.value), 0.0001)
		})
	}
}

func TestFieldSetSuffixKeysAreDistinct(t *testing.T) {
	fs := FieldSet{
		"71":  {Key: "71", Value: "0.00"},
		"71M": {Key: "71M", Value: "1,250.00"},
	}

	assert.Equal(t, "0.00", fs.Get("71"))
	assert.Equal(t, "1,250.00", fs.Get("71M"))
	assert.True(t, fs.Has("71"))
	assert.True(t, fs.Has("71M"))
	assert.InDelta(t, 0, fs.Amount("71"), 0.0001)
	assert.InDelta(t, 1250, fs.Amount("71M"), 0.0001)
}

func TestFieldSetGetTrimsValue(t *testing.T) {
	fs := FieldSet{"40": {Key: "40", Value: "  FIRST BANK  "}}
	assert.Equal(t, "FIRST BANK", fs.Get("40"))
	assert.Equal(t, "", fs.Get("41"), "absent key yields empty string")
}

func TestFieldSetClone(t *testing.T) {
	fs := FieldSet{"40": {Key: "40", Value: "A"}}
	cp := fs.Clone()
	cp["40"] = Field{Key: "40", Value: "B"}

	assert.Equal(t, "A", fs.Get("40"), "mutating the clone must not touch the original")
	assert.Equal(t, "B", cp.Get("40"))
}

func TestListBlockSumAndCount(t *testing.T) {
	lb := ListBlock{
		FieldKey: "54",
		Declared: 3,
		Rows: []ListRow{
			{ID: "1", Value: "100.00"},
			{ID: "2", Value: "200.50"},
			{ID: "3", Value: "(50.50)"},
		},
	}

	assert.InDelta(t, 250.00, lb.Sum(), 0.0001)
	assert.True(t, lb.CountMatches())

	short := ListBlock{FieldKey: "54", Declared: 3, Rows: lb.Rows[:2]}
	assert.False(t, short.CountMatches())
}

func TestListBlockReconciles(t *testing.T) {
	lb := ListBlock{
		FieldKey: "54",
		Declared: 2,
		Rows: []ListRow{
			{ID: "1", Value: "100.00"},
			{ID: "2", Value: "200.00"},
		},
	}

	assert.True(t, lb.Reconciles("300.00"))
	assert.True(t, lb.Reconciles("$300.00"))
	assert.True(t, lb.Reconciles("299.996"), "within half a cent")
	assert.False(t, lb.Reconciles("305.00"))
}
