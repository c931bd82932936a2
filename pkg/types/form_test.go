package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionFieldViewLaterEntriesWin(t *testing.T) {
	s := &Section{
		Index: 1,
		Entries: []*Entry{
			{Section: 1, Ordinal: 1, Fields: FieldSet{
				"40": {Key: "40", Value: "FIRST"},
				"71": {Key: "71", Value: "100.00"},
			}},
			{Section: 1, Ordinal: 2, Fields: FieldSet{
				"40": {Key: "40", Value: "SECOND"},
				"54": {Key: "54", Value: "25.00"},
			}},
		},
	}

	view := s.FieldView()
	assert.Equal(t, "SECOND", view.Get("40"), "later entry overwrites on exact-key collision")
	assert.Equal(t, "100.00", view.Get("71"))
	assert.Equal(t, "25.00", view.Get("54"))
}

func TestSectionFieldViewIsACopy(t *testing.T) {
	s := &Section{
		Index:   1,
		Entries: []*Entry{{Section: 1, Ordinal: 1, Fields: FieldSet{"40": {Key: "40", Value: "A"}}}},
	}

	view := s.FieldView()
	view["40"] = Field{Key: "40", Value: "MUTATED"}

	assert.Equal(t, "A", s.Entries[0].Fields.Get("40"))
}

func TestFormSectionLookup(t *testing.T) {
	f := &Form{
		Code: "881",
		Sections: []*Section{
			{Index: 1},
			{Index: 3},
		},
	}

	assert.Equal(t, 3, f.Section(3).Index)
	assert.Nil(t, f.Section(2))
}

func TestFormEntriesSourceOrder(t *testing.T) {
	e1 := &Entry{Section: 1, Ordinal: 1, Fields: FieldSet{}}
	e2 := &Entry{Section: 1, Ordinal: 2, Fields: FieldSet{}}
	e3 := &Entry{Section: 2, Ordinal: 1, Fields: FieldSet{}}
	f := &Form{
		Code: "181",
		Sections: []*Section{
			{Index: 1, Entries: []*Entry{e1, e2}},
			{Index: 2, Entries: []*Entry{e3}},
		},
	}

	assert.Equal(t, []*Entry{e1, e2, e3}, f.Entries())
}

func TestEntryListLookup(t *testing.T) {
	e := &Entry{
		Fields: FieldSet{},
		Lists: []ListBlock{
			{FieldKey: "54", Declared: 2},
		},
	}

	lb, ok := e.List("54")
	assert.True(t, ok)
	assert.Equal(t, 2, lb.Declared)

	_, ok = e.List("71")
	assert.False(t, ok)
}
