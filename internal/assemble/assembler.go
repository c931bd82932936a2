// Package assemble folds the classified line stream into a tree of forms,
// sections, entries, and field maps, attaching overflow lists to their
// owning field. The assembler is the only stateful stage of parsing: the
// meaning of a field line depends on the most recently opened form,
// section, and entry, so that context lives here and is reset at every
// boundary.
package assemble

import (
	"fmt"

	"github.com/mesh-intelligence/taxport/internal/scan"
	"github.com/mesh-intelligence/taxport/pkg/types"
)

// Assembler consumes lines for one client block and accumulates frozen
// forms. Flush returns everything accumulated and resets the assembler
// for the next client.
type Assembler struct {
	forms    []*types.Form
	warnings []types.Warning
	stats    types.BatchStats

	form     *types.Form
	section  *types.Section
	entry    *types.Entry
	openList *types.ListBlock

	sectionIndex int
}

// New returns an empty Assembler.
func New() *Assembler {
	return &Assembler{sectionIndex: 1}
}

// Feed consumes one classified line. Client boundary lines are the
// partitioner's business and must not be fed.
func (a *Assembler) Feed(line scan.Line) {
	a.stats.Lines++

	// Any line that is not a list row closes an open list block; rows
	// short of the declared count surface as a count warning in closeList.
	if line.Kind != scan.KindListRow {
		a.closeList()
	}

	switch line.Kind {
	case scan.KindFormStart:
		a.closeForm()
		a.form = &types.Form{Code: line.FormCode, Label: line.FormLabel}
		a.sectionIndex = 1

	case scan.KindSection:
		if a.form == nil {
			return
		}
		a.closeEntry()
		a.sectionIndex = line.Index
		a.section = &types.Section{Index: line.Index}
		a.form.Sections = append(a.form.Sections, a.section)

	case scan.KindEntry:
		if a.form == nil {
			return
		}
		a.closeEntry()
		a.ensureSection()
		a.entry = &types.Entry{Section: a.sectionIndex, Ordinal: line.Index, Fields: make(types.FieldSet)}
		a.section.Entries = append(a.section.Entries, a.entry)

	case scan.KindField:
		if a.form == nil {
			return
		}
		a.stats.FieldLines++
		a.ensureEntry()
		// Keys are stored verbatim, suffix included. A later occurrence
		// of the same exact key overwrites; a suffixed variant is a
		// different key and never touches its base.
		a.entry.Fields[line.FieldKey] = types.Field{Key: line.FieldKey, Value: line.FieldValue}

	case scan.KindListHeader:
		if a.form == nil {
			return
		}
		a.ensureEntry()
		a.openList = &types.ListBlock{FieldKey: line.FieldKey, Declared: line.ListCount}

	case scan.KindListRow:
		if a.openList == nil {
			a.stats.OtherLines++
			return
		}
		a.openList.Rows = append(a.openList.Rows, types.ListRow{ID: line.RowID, Value: line.RowValue})
		if len(a.openList.Rows) >= a.openList.Declared {
			a.closeList()
		}

	case scan.KindOther:
		a.stats.OtherLines++
	}
}

// Flush closes the current context and returns the frozen forms, the
// warnings recorded while assembling, and the line statistics. The
// assembler is reset and ready for the next client block.
func (a *Assembler) Flush() ([]*types.Form, []types.Warning, types.BatchStats) {
	a.closeForm()
	forms, warnings, stats := a.forms, a.warnings, a.stats
	a.forms, a.warnings, a.stats = nil, nil, types.BatchStats{}
	a.sectionIndex = 1
	return forms, warnings, stats
}

// ensureSection creates the implicit section for forms that carry entries
// or fields without an explicit section marker.
func (a *Assembler) ensureSection() {
	if a.section != nil {
		return
	}
	a.section = &types.Section{Index: a.sectionIndex}
	a.form.Sections = append(a.form.Sections, a.section)
}

// ensureEntry creates the implicit single entry for forms that carry
// fields without an explicit entry marker. Such forms are common and must
// still populate correctly.
func (a *Assembler) ensureEntry() {
	if a.entry != nil {
		return
	}
	a.ensureSection()
	a.entry = &types.Entry{Section: a.sectionIndex, Ordinal: 1, Implicit: true, Fields: make(types.FieldSet)}
	a.section.Entries = append(a.section.Entries, a.entry)
}

func (a *Assembler) closeEntry() {
	a.closeList()
	a.entry = nil
}

func (a *Assembler) closeForm() {
	a.closeEntry()
	if a.form != nil {
		a.forms = append(a.forms, a.form)
		a.form = nil
	}
	a.section = nil
	a.sectionIndex = 1
}

// closeList finalizes the open list block, attaching it to the current
// entry and recording advisory warnings. A count or sum mismatch is data
// about the source, not an error, and the block is attached regardless.
func (a *Assembler) closeList() {
	if a.openList == nil {
		return
	}
	lb := *a.openList
	a.openList = nil

	a.entry.Lists = append(a.entry.Lists, lb)

	formCode := ""
	if a.form != nil {
		formCode = a.form.Code
	}
	if !lb.CountMatches() {
		a.warnings = append(a.warnings, types.Warning{
			Code:    types.WarnListCountMismatch,
			Form:    formCode,
			Section: a.sectionIndex,
			Field:   lb.FieldKey,
			Message: fmt.Sprintf("list declared %d sub-records, got %d", lb.Declared, len(lb.Rows)),
		})
	}
	if parent := a.entry.Fields.Get(lb.FieldKey); parent != "" && !lb.Reconciles(parent) {
		a.warnings = append(a.warnings, types.Warning{
			Code:    types.WarnListSumMismatch,
			Form:    formCode,
			Section: a.sectionIndex,
			Field:   lb.FieldKey,
			Message: fmt.Sprintf("list sum %.2f diverges from parent value %q", lb.Sum(), parent),
		})
	}
}
