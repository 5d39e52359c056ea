//go:build windows

package main

import (
	"os"

	"github.com/pkg/errors"
)

// setRawIO attempts to put stdin in raw mode. Unsupported on Windows; the
// VM still runs correctly, it simply relies on the OS console's own line
// buffering for interactive input.
func setRawIO() (func(), error) {
	return nil, errors.New("raw IO not supported on windows")
}

func isTerminal(f *os.File) bool {
	return false
}
