package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/marie/emulator"
)

func TestDefineFlags(t *testing.T) {
	assert := assert.New(t)

	df := defineFlags{}
	assert.NoError(df.Set("LIMIT=0x20"))
	assert.NoError(df.Set("EMPTY="))
	assert.Error(df.Set("LIMIT"))
	assert.Error(df.Set("=5"))

	assert.Equal(defineFlags{"LIMIT": "0x20", "EMPTY": ""}, df)
}

func TestLoadSave(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "prog.mas")
	image := filepath.Join(dir, "prog.bin")

	text := "ORG 100\nLoad $(LIMIT)\nHalt\n"
	assert.NoError(os.WriteFile(source, []byte(text), 0o644))

	prog, err := load(source, false, map[string]string{"LIMIT": "0x20"}, false)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal([]uint16{0x1020, 0x7000}, prog.Binary())

	assert.NoError(save(image, prog))

	loaded, err := load(image, true, nil, false)
	assert.NoError(err)
	if err == nil {
		assert.Equal(prog.Origin, loaded.Origin)
		assert.Equal(prog.Binary(), loaded.Binary())
	}

	_, err = load(filepath.Join(dir, "missing.mas"), false, nil, false)
	assert.ErrorIs(err, os.ErrNotExist)
	assert.True(strings.HasPrefix(err.Error(), "open: "))
}

func TestReport(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "prog.mas")
	assert.NoError(os.WriteFile(source, []byte("ORG 100\nLoad A\nHalt\nA, Dec 12\n"), 0o644))

	prog, err := load(source, false, nil, false)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())

	table := [](struct {
		diff     bool
		color    bool
		contains string
	}){
		{false, false, "\nAccumulator: 0xC 12"},
		{true, false, "+ Accumulator: 0xC 12"},
		{true, false, "  Input Register: 0x0 0"},
		{false, true, "\x1b["},
	}

	for _, entry := range table {
		assert.Contains(report(emu, entry.diff, entry.color), entry.contains, "%v %v", entry.diff, entry.color)
	}

	assert.NotContains(report(emu, false, false), "+ ")
}
