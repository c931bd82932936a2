package scan

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

// utf8BOM is the byte-order mark as encoded in UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode resolves the input's text encoding. Export files are commonly
// UTF-16LE, sometimes UTF-8, occasionally a single-byte legacy encoding.
// The ladder tries UTF-16LE, then UTF-8, then Windows-1252; a candidate is
// accepted only when the decoded text is plausible (no stray NUL runes and
// the client-begin marker near the start), so characters are never
// silently substituted. Failing every rung is fatal for the whole file.
func decode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", types.ErrEmptyInput
	}

	// UTF-16LE, BOM-aware. A mis-decode of single-byte input shows up as
	// NUL runes and fails the plausibility check.
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	if text, err := utf16.NewDecoder().String(string(data)); err == nil && plausible(text) {
		return text, nil
	}

	// UTF-8, with or without BOM.
	raw := bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(raw) {
		if text := string(raw); plausible(text) {
			return text, nil
		}
	}

	// Single-byte fallback. Windows-1252 decodes any byte sequence, so
	// acceptance rests entirely on the plausibility check.
	if text, err := charmap.Windows1252.NewDecoder().String(string(data)); err == nil && plausible(text) {
		return text, nil
	}

	return "", fmt.Errorf("%w (tried utf-16le, utf-8, windows-1252)", types.ErrUndecodableInput)
}

// plausible reports whether decoded text looks like an export file: free of
// NUL runes and carrying the client-begin marker within the first 1000
// characters.
func plausible(text string) bool {
	if strings.ContainsRune(text, 0) {
		return false
	}
	head := text
	if len(head) > 1000 {
		head = head[:1000]
	}
	return strings.Contains(head, clientBeginPrefix)
}
