package checklist

import (
	"fmt"
	"sort"
	"strings"
)

// Markdown renders the checklist as a markdown document with one table per
// category.
func (cl *Checklist) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Document Checklist: %s\n", cl.ClientID)
	fmt.Fprintf(&b, "**Tax Year:** %d\n", cl.TaxYear)
	fmt.Fprintf(&b, "**Based on:** %d Tax Return\n", cl.PriorYear)
	if cl.Incomplete {
		b.WriteString("**Note:** source data for this client was incomplete\n")
	}
	b.WriteString("\n---\n\n")

	for _, cat := range cl.categories() {
		fmt.Fprintf(&b, "## %s\n\n", cat)
		b.WriteString("| ☐ | Form | Payer/Employer | Recipient | Prior Year Amount |\n")
		b.WriteString("|---|------|----------------|-----------|-------------------|\n")
		for _, item := range cl.itemsIn(cat) {
			payer := item.Payer
			if item.Notes != "" {
				payer += " *" + item.Notes + "*"
			}
			amount := item.PriorAmount
			if amount == "" {
				amount = "-"
			}
			fmt.Fprintf(&b, "| ☐ | %s | %s | %s | %s |\n", item.FormLabel, payer, item.Recipient, amount)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Text renders the checklist as plain text suitable for email.
func (cl *Checklist) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document Checklist: %s\n", cl.ClientID)
	fmt.Fprintf(&b, "Tax Year: %d\n", cl.TaxYear)
	fmt.Fprintf(&b, "Based on: %d Tax Return\n", cl.PriorYear)
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("Please upload or provide the following documents:\n\n")

	for _, cat := range cl.categories() {
		b.WriteString(strings.ToUpper(cat) + "\n")
		for _, item := range cl.itemsIn(cat) {
			line := fmt.Sprintf("- %s: %s", item.FormLabel, item.Payer)
			if item.PriorAmount != "" {
				line += fmt.Sprintf(" (Prior: %s)", item.PriorAmount)
			}
			if item.Recipient != "Taxpayer" {
				line += fmt.Sprintf(" [%s]", item.Recipient)
			}
			if item.Notes != "" {
				line += " -- " + item.Notes
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// categories returns the distinct categories in first-seen order.
func (cl *Checklist) categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range cl.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// itemsIn returns the category's items sorted by payer then recipient, so
// renders are stable regardless of source order.
func (cl *Checklist) itemsIn(category string) []Item {
	var out []Item
	for _, item := range cl.Items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := strings.ToLower(out[i].Payer), strings.ToLower(out[j].Payer)
		if pi != pj {
			return pi < pj
		}
		return out[i].Recipient < out[j].Recipient
	})
	return out
}
