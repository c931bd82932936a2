// Package types defines the parsed document model for tax-software export
// files: fields, entries, sections, forms, client batches, linked entities,
// and resolved items, plus the warning and error values shared across the
// parsing pipeline.
package types
