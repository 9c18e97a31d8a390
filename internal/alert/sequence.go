package alert

import "sync/atomic"

// Sequencer numbers alerts monotonically.
type Sequencer struct{ n atomic.Uint64 }

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 { return s.n.Add(1) }
