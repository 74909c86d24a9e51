package io

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleSend(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	assert.NoError(con.Send(12))
	assert.NoError(con.Send(0))
	assert.NoError(con.Send(65535))
	assert.Equal("12\n0\n65535\n", output.String())

	// No output attached is not an error.
	con = &Console{}
	assert.NoError(con.Send(1))
}

func TestConsoleLastValueWins(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: strings.NewReader("42\n  7  \n")}
	con.Listen()
	<-con.Done()

	assert.NoError(con.Err())

	value, ok := con.Poll()
	assert.True(ok)
	assert.Equal(uint16(7), value)

	_, ok = con.Poll()
	assert.False(ok)
}

func TestConsoleHandoff(t *testing.T) {
	assert := assert.New(t)

	reader, writer := io.Pipe()
	con := &Console{Input: reader}
	con.Listen()
	con.Listen()

	_, ok := con.Poll()
	assert.False(ok)

	// Each write blocks until the reader has taken the line.
	io.WriteString(writer, "42\n")
	io.WriteString(writer, "7\n")
	writer.Close()
	<-con.Done()

	value, ok := con.Poll()
	assert.True(ok)
	assert.Equal(uint16(7), value)
	assert.NoError(con.Err())
}

func TestConsoleInputParse(t *testing.T) {
	assert := assert.New(t)

	table := []string{"-1", "65536", "abc", "", "1 2"}

	for _, line := range table {
		con := &Console{Input: strings.NewReader("5\n" + line + "\n9\n")}
		<-con.Done()

		var parse ErrInputParse
		assert.True(errors.As(con.Err(), &parse), line)
		assert.Equal(ErrInputParse(strings.TrimSpace(line)), parse, line)

		// The reader stopped at the bad line; earlier input stands.
		value, ok := con.Poll()
		assert.True(ok, line)
		assert.Equal(uint16(5), value, line)
	}
}

func TestConsoleNoInput(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	con.Listen()
	<-con.Done()

	assert.NoError(con.Err())
	_, ok := con.Poll()
	assert.False(ok)
}

func TestConsoleDefines(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	defines := map[string]string{}
	for name, value := range con.Defines() {
		defines[name] = value
	}
	assert.Equal("0xffff", defines["INPUT_MAX"])
}
