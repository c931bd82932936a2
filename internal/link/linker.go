// Package link joins header forms to child forms that share a structural
// index, within one client batch. The join table is built once per batch;
// linked entities hold copies of the joined fields and never point back
// into parser state.
package link

import (
	"fmt"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

// Linker links batches according to a static set of link groups, supplied
// by configuration. The linker itself holds no per-batch state, so one
// Linker may serve any number of batches and repeated passes over the same
// batch produce identical results.
type Linker struct {
	groups []types.LinkGroup
}

// New returns a Linker for the given link groups.
func New(groups []types.LinkGroup) *Linker {
	return &Linker{groups: groups}
}

// Link produces the linked entities for one client batch. Warnings for
// duplicate header indexes are recorded on the batch; the first section
// encountered in source order wins and later duplicates stay retrievable
// from the raw form tree only.
func (l *Linker) Link(b *types.ClientBatch) []types.LinkedEntity {
	var out []types.LinkedEntity
	for _, g := range l.groups {
		out = append(out, l.linkGroup(b, g)...)
	}
	return out
}

func (l *Linker) linkGroup(b *types.ClientBatch, g types.LinkGroup) []types.LinkedEntity {
	headers := l.headerIndex(b, g)

	var out []types.LinkedEntity
	for _, childCode := range g.Children {
		for _, form := range b.FormsByCode(childCode) {
			for _, section := range form.Sections {
				child := section.FieldView()
				if len(child) == 0 {
					continue
				}
				header := headers[section.Index] // nil on a miss
				out = append(out, types.NewLinkedEntity(g.Name, g.Header, childCode, section.Index, header, child))
			}
		}
	}
	return out
}

// headerIndex maps each structural index of the group's header form to
// that section's field view. A duplicate index is warned once per batch,
// so repeated Link passes do not accumulate copies of the same warning.
func (l *Linker) headerIndex(b *types.ClientBatch, g types.LinkGroup) map[int]types.FieldSet {
	headers := make(map[int]types.FieldSet)
	for _, form := range b.FormsByCode(g.Header) {
		for _, section := range form.Sections {
			if _, dup := headers[section.Index]; dup {
				if !hasDuplicateWarning(b, g.Header, section.Index) {
					b.Warn(types.Warning{
						Code:    types.WarnDuplicateIndex,
						Form:    g.Header,
						Section: section.Index,
						Message: fmt.Sprintf("duplicate structural index %d in header form %s; first occurrence wins", section.Index, g.Header),
					})
				}
				continue
			}
			headers[section.Index] = section.FieldView()
		}
	}
	return headers
}

func hasDuplicateWarning(b *types.ClientBatch, formCode string, index int) bool {
	for _, w := range b.Warnings {
		if w.Code == types.WarnDuplicateIndex && w.Form == formCode && w.Section == index {
			return true
		}
	}
	return false
}
