package types

import "sort"

// LinkedEntity is a synthetic record produced by the cross-reference
// linker: the union of a header section's fields and one child section's
// fields sharing the same structural index. Child fields take precedence
// on exact-key collision, since they represent the more specific record.
// Fields is a copy; it never points back into parser state.
type LinkedEntity struct {
	Group      string
	HeaderCode string
	ChildCode  string
	Index      int
	Unlinked   bool
	Fields     FieldSet

	// Provenance: which source keys came from the header section and
	// which from the child section, each sorted for determinism.
	HeaderKeys []string
	ChildKeys  []string
}

// NewLinkedEntity builds the field union for one child section, copying
// both sides. A nil header produces an unlinked entity carrying only the
// child's own fields.
func NewLinkedEntity(group, headerCode, childCode string, index int, header, child FieldSet) LinkedEntity {
	le := LinkedEntity{
		Group:      group,
		HeaderCode: headerCode,
		ChildCode:  childCode,
		Index:      index,
		Unlinked:   header == nil,
		Fields:     make(FieldSet, len(header)+len(child)),
	}
	for k, f := range header {
		le.Fields[k] = f
		le.HeaderKeys = append(le.HeaderKeys, k)
	}
	for k, f := range child {
		le.Fields[k] = f
		le.ChildKeys = append(le.ChildKeys, k)
	}
	sort.Strings(le.HeaderKeys)
	sort.Strings(le.ChildKeys)
	return le
}
