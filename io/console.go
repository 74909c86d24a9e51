package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"strconv"
	"strings"
	"sync"
)

// Console provides line oriented decimal I/O. Input lines are read by a
// background reader and delivered through a Latch; output values are
// written one per line.
type Console struct {
	Verbose bool
	Input   io.Reader
	Output  io.Writer

	latch Latch

	once sync.Once
	done chan struct{}
	err  error
}

var _ Channel = (*Console)(nil)

// Defines returns an iter of defines for the channel.
func (con *Console) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"INPUT_MAX": "0xffff",
	})
}

// Listen starts the background reader. It is safe to call more than once.
// The reader runs until end of input or the first malformed line.
func (con *Console) Listen() {
	con.once.Do(func() {
		con.done = make(chan struct{})
		if con.Input == nil {
			close(con.done)
			return
		}
		go con.read()
	})
}

func (con *Console) read() {
	defer close(con.done)

	scanner := bufio.NewScanner(con.Input)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		value, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			con.err = ErrInputParse(text)
			log.Printf("console: %v", con.err)
			return
		}
		if con.Verbose {
			log.Printf("console: input %d", value)
		}
		con.latch.Store(uint16(value))
	}

	con.err = scanner.Err()
}

// Done is closed when the background reader has stopped.
func (con *Console) Done() <-chan struct{} {
	con.Listen()
	return con.done
}

// Err returns the error that stopped the reader, once Done is closed.
func (con *Console) Err() (err error) {
	select {
	case <-con.Done():
		err = con.err
	default:
	}
	return
}

// Poll returns the latest input not yet observed. It never blocks.
func (con *Console) Poll() (value uint16, ok bool) {
	return con.latch.Poll()
}

// Send writes value as a decimal line.
func (con *Console) Send(value uint16) (err error) {
	if con.Output == nil {
		return
	}
	_, err = fmt.Fprintf(con.Output, "%d\n", value)
	return
}
