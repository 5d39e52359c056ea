// Command um32 loads a UM-32 program image and runs it to completion.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/um32vm/um32/disasm"
	"github.com/um32vm/um32/um"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] image\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var (
		cow       = flag.Bool("cow", false, "use copy-on-write array storage")
		tracePath = flag.String("trace", "", "write one byte per executed opcode to `path`")
		dumpPath  = flag.String("trace-dump", "", "decode an opcode-trace file at `path` to mnemonics on stdout, instead of running an image")
		predict   = flag.Bool("branch-predict", false, "enable speculative branch prediction (optimization only)")
		debug     = flag.Bool("debug", false, "dump registers and finger on fatal error")
	)
	flag.Usage = usage
	flag.Parse()

	if *dumpPath != "" {
		os.Exit(traceDump(*dumpPath))
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0), *cow, *tracePath, *predict, *debug))
}

// traceDump decodes a file previously recorded by -trace back into a
// mnemonic listing on stdout.
func traceDump(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "um32: %v\n", err)
		return 1
	}
	defer f.Close()

	out := bufio.NewWriter(os.Stdout)
	if err := disasm.Trace(f, out); err != nil {
		fmt.Fprintf(os.Stderr, "um32: %v\n", err)
		return 1
	}
	out.Flush()
	return 0
}

// stdoutByteWriter adapts a *bufio.Writer to um.ByteWriter. Output only
// needs to become visible before halt, which the explicit
// Flush in run guarantees; per-byte flushing would defeat the point of
// buffering.
type stdoutByteWriter struct {
	w *bufio.Writer
}

func (s *stdoutByteWriter) WriteByte(c byte) error { return s.w.WriteByte(c) }

func run(imagePath string, cow bool, tracePath string, predict, debug bool) int {
	f, err := os.Open(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "um32: %v\n", err)
		return 1
	}
	defer f.Close()

	img, err := um.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "um32: %v\n", err)
		return 1
	}

	stdout := &stdoutByteWriter{w: bufio.NewWriter(os.Stdout)}
	opts := []um.Option{
		um.CopyOnWrite(cow),
		um.BranchPrediction(predict),
		um.Input(bufio.NewReader(os.Stdin)),
		um.Output(stdout),
	}

	if tracePath != "" {
		traceFile, terr := os.Create(tracePath)
		if terr != nil {
			fmt.Fprintf(os.Stderr, "um32: %v\n", terr)
			return 1
		}
		defer traceFile.Close()
		opts = append(opts, um.OpcodeTrace(traceFile))
	}

	if isTerminal(os.Stdin) {
		if teardown, rerr := setRawIO(); rerr == nil {
			defer teardown()
		}
	}

	instance := um.New(img, opts...)
	runErr := instance.Run()
	stdout.w.Flush()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "um32: %v\n", runErr)
		if debug {
			dumpVM(instance, os.Stderr)
		}
		return 1
	}
	return 0
}
