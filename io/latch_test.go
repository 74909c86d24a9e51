package io

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatch(t *testing.T) {
	assert := assert.New(t)

	var latch Latch

	_, ok := latch.Poll()
	assert.False(ok)

	latch.Store(0)
	value, ok := latch.Poll()
	assert.True(ok)
	assert.Equal(uint16(0), value)

	_, ok = latch.Poll()
	assert.False(ok)
}

func TestLatchLastValueWins(t *testing.T) {
	assert := assert.New(t)

	var latch Latch

	latch.Store(42)
	latch.Store(7)

	value, ok := latch.Poll()
	assert.True(ok)
	assert.Equal(uint16(7), value)

	// 42 was overwritten, not queued.
	_, ok = latch.Poll()
	assert.False(ok)

	latch.Store(0xffff)
	value, ok = latch.Poll()
	assert.True(ok)
	assert.Equal(uint16(0xffff), value)
}

func TestLatchConcurrent(t *testing.T) {
	assert := assert.New(t)

	var latch Latch
	var wg sync.WaitGroup

	for n := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				latch.Store(uint16(n*1000 + i))
			}
		}()
	}

	polled := 0
	for range 1000 {
		if _, ok := latch.Poll(); ok {
			polled++
		}
	}
	wg.Wait()

	// Anything left is exactly one value.
	if _, ok := latch.Poll(); ok {
		polled++
	}
	_, ok := latch.Poll()
	assert.False(ok)
	assert.LessOrEqual(polled, 8000+1)
}
