//go:build !windows

package main

import (
	"os"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// setRawIO switches stdin to raw mode so the input opcode reads bytes as
// they arrive instead of waiting for the line discipline to deliver a
// full line. This is what lets an interactive UM-32 program's "no
// translation" byte stream actually see individual
// keystrokes rather than canonical, newline-buffered input.
func setRawIO() (func(), error) {
	var tios unix.Termios
	if err := termios.Tcgetattr(0, &tios); err != nil {
		return nil, errors.Wrap(err, "Tcgetattr failed")
	}
	raw := tios
	raw.Iflag &^= unix.IGNBRK | unix.ISTRIP | unix.IXON | unix.IXOFF
	raw.Iflag |= unix.BRKINT | unix.IGNPAR
	raw.Lflag &^= unix.ICANON | unix.IEXTEN | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(0, termios.TCSANOW, &raw); err != nil {
		termios.Tcsetattr(0, termios.TCSANOW, &tios)
		return nil, errors.Wrap(err, "Tcsetattr failed")
	}
	return func() { termios.Tcsetattr(0, termios.TCSANOW, &tios) }, nil
}

func ioctl(fd uintptr, request, argp uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, request, argp)
	if errno != 0 {
		return errno
	}
	return nil
}

type winsize struct {
	row, col, xpixel, ypixel uint16
}

// isTerminal reports whether f looks like an interactive terminal.
func isTerminal(f *os.File) bool {
	var w winsize
	return ioctl(f.Fd(), syscall.TIOCGWINSZ, uintptr(unsafe.Pointer(&w))) == nil
}
