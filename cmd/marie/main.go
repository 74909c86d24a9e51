// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ezrec/marie/cpu"
	"github.com/ezrec/marie/emulator"
)

// defineFlags collects repeated -D NAME=VALUE flags.
type defineFlags map[string]string

func (df defineFlags) String() string {
	var out []string
	for name, value := range df {
		out = append(out, name+"="+value)
	}
	return strings.Join(out, ",")
}

func (df defineFlags) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("%q is not NAME=VALUE", text)
	}
	df[name] = value
	return nil
}

// load reads a program from an assembly source or a binary image.
func load(path string, image bool, defines map[string]string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Wrap(err, "open")
		return
	}
	defer inf.Close()

	if image {
		prog, err = cpu.Unmarshal(inf)
		return
	}

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range defines {
		asm.Predefine(name, value)
	}
	prog, err = asm.Parse(inf)
	return
}

// save writes a program as a binary image.
func save(path string, prog *cpu.Program) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}

	err = prog.Marshal(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	return ouf.Close()
}

// report returns the register dump for -d. Color implies the diff.
func report(emu *emulator.Emulator, diff bool, color bool) string {
	return emu.Dump(diff || color, color)
}

func main() {
	var debug bool
	var verbose bool
	var output string
	var image bool
	var diff bool
	var color bool
	defines := defineFlags{}

	flag.BoolVar(&debug, "d", false, "Dump registers after halt")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&output, "o", "", "Write binary image to file, do not execute")
	flag.BoolVar(&image, "b", false, "Input is a binary image")
	flag.BoolVar(&diff, "diff", false, "Mark registers changed since load in the dump")
	flag.BoolVar(&color, "color", false, "Highlight changed registers in the dump")
	flag.Var(defines, "D", "Predefine NAME=VALUE for $(...) expressions")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one source file, got: %v", os.Args[0], flag.Args())
	}
	path := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	all := map[string]string{}
	for name, value := range emu.Defines() {
		all[name] = value
	}
	for name, value := range defines {
		all[name] = value
	}

	prog, err := load(path, image, all, verbose)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if len(output) != 0 {
		err = save(output, prog)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu.Program = prog
	emu.Console.Input = os.Stdin
	emu.Console.Output = os.Stdout

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if debug {
		fmt.Println(report(emu, diff, color))
	}
}
