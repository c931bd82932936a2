package types

// Entry is the unit of repetition within a section, e.g. one of several
// income items under one form. Ordinal preserves source order; Section is
// the structural index of the enclosing section. Implicit reports whether
// the entry was synthesized for a form that carries fields without an
// explicit entry marker.
type Entry struct {
	Section  int
	Ordinal  int
	Implicit bool
	Fields   FieldSet
	Lists    []ListBlock
}

// List returns the overflow list attached to the given field key, if any.
func (e *Entry) List(fieldKey string) (ListBlock, bool) {
	for _, lb := range e.Lists {
		if lb.FieldKey == fieldKey {
			return lb, true
		}
	}
	return ListBlock{}, false
}

// Section is a named subdivision of a form carrying a structural index,
// the join key consumed by the linker. Forms without section markers get
// a single implicit section with index 1.
type Section struct {
	Index   int
	Entries []*Entry
}

// FieldView returns the section's entries merged into one field set, in
// entry order with later entries overwriting on exact-key collision. The
// returned set is a copy; mutating it does not touch the section.
func (s *Section) FieldView() FieldSet {
	merged := make(FieldSet)
	for _, e := range s.Entries {
		for k, f := range e.Fields {
			merged[k] = f
		}
	}
	return merged
}

// Form is one form block from the export: a form code, a human-readable
// label, and an ordered sequence of sections. A form is populated by the
// assembler until the next form-start or client boundary, then frozen.
type Form struct {
	Code     string
	Label    string
	Sections []*Section
}

// Section returns the section with the given structural index, or nil.
func (f *Form) Section(index int) *Section {
	for _, s := range f.Sections {
		if s.Index == index {
			return s
		}
	}
	return nil
}

// Entries returns all entries of the form across sections, in source order.
func (f *Form) Entries() []*Entry {
	var out []*Entry
	for _, s := range f.Sections {
		out = append(out, s.Entries...)
	}
	return out
}
