// Package batch splits the classified line stream into per-client batches.
// The partitioner holds at most one client's forms in memory at a time;
// callers that stop asking for batches simply stop the pipeline, no
// cancellation machinery is needed.
package batch

import (
	"github.com/mesh-intelligence/taxport/internal/assemble"
	"github.com/mesh-intelligence/taxport/internal/scan"
	"github.com/mesh-intelligence/taxport/pkg/types"
)

// Partitioner drives the scanner and assembler, emitting one completed,
// immutable ClientBatch per client block.
type Partitioner struct {
	sc  *scan.Scanner
	asm *assemble.Assembler

	// pending is the client header of the block currently being read.
	pending *types.ClientHeader
	done    bool
}

// New returns a Partitioner reading from the scanner.
func New(sc *scan.Scanner) *Partitioner {
	return &Partitioner{sc: sc, asm: assemble.New()}
}

// Next returns the next client batch. The second return is false once the
// input is exhausted. A batch cut off by end-of-input before its end marker
// is emitted anyway, flagged incomplete, rather than discarded.
func (p *Partitioner) Next() (*types.ClientBatch, bool) {
	if p.done {
		return nil, false
	}

	for {
		line, ok := p.sc.Next()
		if !ok {
			p.done = true
			if p.pending == nil {
				return nil, false
			}
			// End-of-input before the client-end marker.
			b := p.seal(true)
			return b, true
		}

		switch {
		case line.Kind == scan.KindOther && line.Header != nil:
			if p.pending != nil {
				// The next client-begin closes the previous block.
				b := p.seal(false)
				p.pending = line.Header
				return b, true
			}
			p.pending = line.Header

		case line.Kind == scan.KindTerminator:
			if p.pending == nil {
				continue
			}
			b := p.seal(false)
			return b, true

		default:
			// Lines outside any client block are dropped; everything
			// else belongs to the current client.
			if p.pending != nil {
				p.asm.Feed(line)
			}
		}
	}
}

// All drains the remaining batches. Convenience for callers that do not
// need the one-batch-at-a-time memory bound.
func (p *Partitioner) All() []*types.ClientBatch {
	var out []*types.ClientBatch
	for {
		b, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

// seal flushes the assembler into a finished batch for the pending client.
func (p *Partitioner) seal(incomplete bool) *types.ClientBatch {
	forms, warnings, stats := p.asm.Flush()
	b := &types.ClientBatch{
		Header:     *p.pending,
		Forms:      forms,
		Incomplete: incomplete,
		Stats:      stats,
	}
	for _, w := range warnings {
		b.Warn(w)
	}
	if incomplete {
		b.Warn(types.Warning{
			Code:    types.WarnIncompleteBatch,
			Message: "end of input before client-end marker; partial batch emitted",
		})
	}
	p.pending = nil
	return b
}
