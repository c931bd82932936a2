// Package checklist assembles client-facing document checklists from a
// parsed client batch. It is a consumer of the parsing core: everything it
// reads comes through the linker and the resolution engine, and it applies
// only display rules (deduplication, sentinel filtering, formatting).
package checklist

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/taxport/internal/link"
	"github.com/mesh-intelligence/taxport/internal/mapping"
	"github.com/mesh-intelligence/taxport/internal/resolve"
	"github.com/mesh-intelligence/taxport/pkg/types"
)

// Item is one checklist line: a document the client is expected to provide.
type Item struct {
	Category    string
	FormLabel   string
	Payer       string
	Recipient   string
	PriorAmount string
	Notes       string
}

// Checklist is the per-client output.
type Checklist struct {
	ClientID   string
	TaxYear    int
	PriorYear  int
	Incomplete bool
	Items      []Item

	seen map[string]bool
}

// Generator builds checklists using one mapping table and its link groups.
type Generator struct {
	m      *mapping.Mapping
	linker *link.Linker
}

// NewGenerator returns a Generator for the mapping table.
func NewGenerator(m *mapping.Mapping) *Generator {
	return &Generator{m: m, linker: link.New(m.Groups())}
}

// Generate produces the checklist for one client batch. taxYear is the
// upcoming year the checklist is for; the batch's own year is the prior
// year the amounts come from.
func (g *Generator) Generate(b *types.ClientBatch, taxYear int) *Checklist {
	cl := &Checklist{
		ClientID:   b.Header.ClientID,
		TaxYear:    taxYear,
		PriorYear:  b.Header.Year,
		Incomplete: b.Incomplete,
		seen:       make(map[string]bool),
	}

	// Standalone forms resolve entry by entry. Header and child forms are
	// covered by their link groups below; listing them here as well would
	// double-count the linked documents.
	for _, code := range b.FormCodes() {
		if g.m.Role(code) != mapping.RoleStandalone {
			continue
		}
		spec, ok := g.m.Spec(code)
		if !ok {
			continue
		}
		def, _ := g.m.Form(code)
		for _, entry := range b.Entries(code) {
			g.add(cl, def, resolve.Item(entry.Fields, spec))
		}
	}

	for _, le := range g.linker.Link(b) {
		spec, ok := g.m.Spec(le.ChildCode)
		if !ok {
			continue
		}
		def, _ := g.m.Form(le.ChildCode)
		item := resolve.Item(le.Fields, spec)
		if le.Unlinked && item.NameUnresolved {
			// An unlinked child with no name of its own has nothing a
			// client could act on.
			continue
		}
		g.add(cl, def, item)
	}

	return cl
}

// add applies the display rules and appends the item. Inactive items are
// suppressed: no activity in either year means there is no document to
// request (the skeleton filter).
func (g *Generator) add(cl *Checklist, def mapping.FormDef, r types.ResolvedItem) {
	if r.Status == types.StatusInactive {
		return
	}

	payer := r.Name
	recipient := recipientLabel(r.Owner)
	amount := formatAmount(r.DisplayAmount())

	// Forms flagged no_dedup may legitimately repeat one payer (several
	// accounts at the same bank); everything else is deduplicated, as are
	// items whose payer is an unknown placeholder.
	dedup := !def.NoDedup || strings.Contains(strings.ToLower(payer), "unknown")
	if dedup {
		key := strings.Join([]string{def.Category, def.Label, strings.ToLower(payer), recipient, amount}, "|")
		if cl.seen[key] {
			return
		}
		cl.seen[key] = true
	}

	notes := ""
	if r.Status == types.StatusMissingPrior {
		notes = "reported last year, not seen yet"
	}

	cl.Items = append(cl.Items, Item{
		Category:    def.Category,
		FormLabel:   def.Label,
		Payer:       payer,
		Recipient:   recipient,
		PriorAmount: amount,
		Notes:       notes,
	})
}

func recipientLabel(owner string) string {
	switch owner {
	case types.OwnerSpouse:
		return "Spouse"
	case types.OwnerJoint:
		return "Joint"
	default:
		return "Taxpayer"
	}
}

// formatAmount renders a dollar amount with comma grouping, or "" for zero.
func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)
	out := "$" + strings.Join(parts, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}
