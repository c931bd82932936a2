// Package scan turns a raw export byte buffer into a sequence of classified
// lines. Decoding resolves the text encoding up front; classification is a
// pure function of the line's leading marker, except for overflow-list rows,
// which are the declared number of lines following a list header.
package scan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

// Line kinds.
const (
	KindFormStart  = "form_start"
	KindSection    = "section"
	KindEntry      = "entry"
	KindField      = "field"
	KindListHeader = "list_header"
	KindListRow    = "list_row"
	KindTerminator = "terminator"
	KindOther      = "other"
)

// Client boundary prefixes. Begin lines carry the client header; end lines
// close the client block.
const (
	clientBeginPrefix = "**BEGIN"
	clientEndPrefix   = "**END"
)

// Marker patterns for line classification.
var (
	headerPattern  = regexp.MustCompile(`^\*\*BEGIN,(\d{4}):([A-Z]):([^:]+):([^,]*),([^,]*),([^,]*),([^,]*),(.*)$`)
	formPattern    = regexp.MustCompile(`^\\@(\d+)\s*\\\s*(.+)$`)
	sectionPattern = regexp.MustCompile(`^\\:(\d+)`)
	entryPattern   = regexp.MustCompile(`^\\&(\d+)`)
	fieldPattern   = regexp.MustCompile(`^\.(\d+[A-Z]?)(?:\s+(.*))?$`)
	listPattern    = regexp.MustCompile(`^\\#(\d+[A-Z]?)\s+(\d+)\s*$`)
	rowPattern     = regexp.MustCompile(`^(\S+)\s+(.*)$`)
)

// Line is a single classified source line. Payload fields are populated
// according to Kind; Number is the 1-based source line number for
// diagnostics. Lines are ephemeral and consumed immediately by the
// assembler.
type Line struct {
	Kind   string
	Number int
	Raw    string

	FormCode  string // KindFormStart
	FormLabel string // KindFormStart
	Index     int    // KindSection, KindEntry

	FieldKey   string // KindField, KindListHeader
	FieldValue string // KindField
	ListCount  int    // KindListHeader

	RowID    string // KindListRow
	RowValue string // KindListRow

	// Header is set on the KindOther line that carries a client-begin
	// marker; End is set on KindTerminator lines.
	Header *types.ClientHeader
}

// Scanner walks the decoded input line by line. It is restartable via
// Reset: re-scanning identical input produces an identical line sequence.
type Scanner struct {
	lines       []string
	pos         int
	pendingRows int
}

// New decodes the buffer and returns a Scanner over its lines.
// Returns ErrEmptyInput or ErrUndecodableInput on failure; decoding
// failures are fatal for the whole file.
func New(data []byte) (*Scanner, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}
	return FromString(text), nil
}

// FromString returns a Scanner over already-decoded text.
func FromString(text string) *Scanner {
	return &Scanner{lines: strings.Split(text, "\n")}
}

// Reset rewinds the scanner to the first line.
func (s *Scanner) Reset() {
	s.pos = 0
	s.pendingRows = 0
}

// Next returns the next classified line. The second return is false once
// the input is exhausted.
func (s *Scanner) Next() (Line, bool) {
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	raw := strings.TrimRight(s.lines[s.pos], "\r")
	s.pos++
	line := s.classify(raw)
	line.Number = s.pos
	return line, true
}

// classify tags one line by its leading marker. While a list header's
// declared row count is outstanding, non-marker lines are consumed as
// list rows; a structural marker or client boundary cancels the
// remainder so that lines beyond the block revert to normal
// classification.
func (s *Scanner) classify(raw string) Line {
	structural := s.classifyMarker(raw)
	if s.pendingRows > 0 {
		if (structural.Kind == KindOther && structural.Header == nil) || structural.Kind == KindField {
			s.pendingRows--
			return classifyRow(raw)
		}
		// A structural marker or the next client's begin line interrupts
		// the open list block; a truncated list must never swallow a
		// client boundary.
		s.pendingRows = 0
	}
	if structural.Kind == KindListHeader {
		s.pendingRows = structural.ListCount
	}
	return structural
}

// classifyMarker matches the line against the marker grammar without any
// list-row context.
func (s *Scanner) classifyMarker(raw string) Line {
	if strings.HasPrefix(raw, clientEndPrefix) {
		return Line{Kind: KindTerminator, Raw: raw}
	}
	if strings.HasPrefix(raw, clientBeginPrefix) {
		return Line{Kind: KindOther, Raw: raw, Header: parseHeader(raw)}
	}
	if m := formPattern.FindStringSubmatch(raw); m != nil {
		return Line{Kind: KindFormStart, Raw: raw, FormCode: m[1], FormLabel: strings.TrimSpace(m[2])}
	}
	if m := sectionPattern.FindStringSubmatch(raw); m != nil {
		return Line{Kind: KindSection, Raw: raw, Index: atoi(m[1])}
	}
	if m := entryPattern.FindStringSubmatch(raw); m != nil {
		return Line{Kind: KindEntry, Raw: raw, Index: atoi(m[1])}
	}
	if m := listPattern.FindStringSubmatch(raw); m != nil {
		return Line{Kind: KindListHeader, Raw: raw, FieldKey: m[1], ListCount: atoi(m[2])}
	}
	if m := fieldPattern.FindStringSubmatch(raw); m != nil {
		return Line{Kind: KindField, Raw: raw, FieldKey: m[1], FieldValue: strings.TrimSpace(m[2])}
	}
	return Line{Kind: KindOther, Raw: raw}
}

// classifyRow parses one overflow-list sub-record: an identifier followed
// by a value. A bare identifier yields an empty value.
func classifyRow(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if m := rowPattern.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: KindListRow, Raw: raw, RowID: m[1], RowValue: strings.TrimSpace(m[2])}
	}
	return Line{Kind: KindListRow, Raw: raw, RowID: trimmed}
}

// parseHeader extracts the client header payload from a begin line.
// Returns nil when the line does not match the header grammar; the line
// then stays an ordinary Other line.
func parseHeader(raw string) *types.ClientHeader {
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil
	}
	return &types.ClientHeader{
		Year:     atoi(m[1]),
		TypeCode: m[2],
		ClientID: m[3],
		Sequence: m[4],
		SSN:      m[5],
		Office:   m[6],
		Group:    m[7],
		Location: strings.TrimSpace(m[8]),
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
