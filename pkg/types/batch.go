package types

// ClientHeader holds the parsed fields of a client-begin marker line:
// **BEGIN,<year>:<type>:<client>:<sequence>,<ssn>,<office>,<group>,<location>
type ClientHeader struct {
	Year     int
	TypeCode string
	ClientID string
	Sequence string
	SSN      string
	Office   string
	Group    string
	Location string
}

// BatchStats counts line classifications seen while assembling one batch.
// OtherLines is the diagnostic count of unrecognized lines.
type BatchStats struct {
	Lines      int
	FieldLines int
	OtherLines int
}

// ClientBatch is all forms belonging to one client, in source order; the
// unit of work for the linker and the resolution engine. Incomplete is set
// when end-of-input arrived before the client-end marker; the partial batch
// is still emitted because partial data is still valuable to consumers.
type ClientBatch struct {
	Header     ClientHeader
	Forms      []*Form
	Incomplete bool
	Warnings   []Warning
	Stats      BatchStats
}

// Form returns the first form with the given code, or nil.
func (b *ClientBatch) Form(code string) *Form {
	for _, f := range b.Forms {
		if f.Code == code {
			return f
		}
	}
	return nil
}

// FormsByCode returns every form with the given code, in source order.
// The same code may open several times in one client block.
func (b *ClientBatch) FormsByCode(code string) []*Form {
	var out []*Form
	for _, f := range b.Forms {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

// Entries returns all entries of all forms with the given code, in source
// order.
func (b *ClientBatch) Entries(code string) []*Entry {
	var out []*Entry
	for _, f := range b.FormsByCode(code) {
		out = append(out, f.Entries()...)
	}
	return out
}

// FormCodes returns the distinct form codes present, in first-seen order.
func (b *ClientBatch) FormCodes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range b.Forms {
		if !seen[f.Code] {
			seen[f.Code] = true
			out = append(out, f.Code)
		}
	}
	return out
}

// Warn appends a warning, stamping it with the batch's client ID when the
// warning does not already carry one.
func (b *ClientBatch) Warn(w Warning) {
	if w.Client == "" {
		w.Client = b.Header.ClientID
	}
	b.Warnings = append(b.Warnings, w)
}
