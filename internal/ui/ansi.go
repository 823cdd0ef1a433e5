package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// isTTY reports whether w is a terminal. Anything that is not an *os.File
// (buffers in tests, pipes wrapped by callers) is treated as plain text.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// CW colors s when w is a terminal (or color is forced).
func CW(w io.Writer, color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY(w) {
		return color + s + reset
	}
	return s
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, CW(w, current.Success, current.SymOK+" "+msg))
}

func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, CW(w, current.Pending, current.SymWarn+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, CW(w, current.Error, current.SymFail+" "+msg))
}
