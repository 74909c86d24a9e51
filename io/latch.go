package io

import (
	"sync/atomic"
)

// latchFresh marks a value that has not yet been polled.
const latchFresh = uint32(1 << 16)

// Latch is a single latest-value cell. Each Store overwrites any value not
// yet polled, so only the most recent value is observed.
type Latch struct {
	cell atomic.Uint32
}

// Store delivers a new value.
func (lt *Latch) Store(value uint16) {
	lt.cell.Store(latchFresh | uint32(value))
}

// Poll takes the value delivered since the last Poll, if any.
func (lt *Latch) Poll() (value uint16, ok bool) {
	for {
		cell := lt.cell.Load()
		if cell&latchFresh == 0 {
			return
		}
		if lt.cell.CompareAndSwap(cell, cell&^latchFresh) {
			return uint16(cell), true
		}
	}
}
