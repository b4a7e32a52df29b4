// Package detector provides environment detection for output styling.
package detector

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/pak/internal/ui/output"
	"golang.org/x/term"
)

// fdWriter is implemented by writers backed by a file descriptor, such as *os.File.
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int
}

// IsCI reports whether a CI environment variable is set.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// Profile returns the color profile for output written to w.
// Writers that are not terminals, and any writer when NO_COLOR is set, get Ascii.
// In CI, ANSI is used for broad compatibility.
func Profile(w io.Writer) termenv.Profile {
	if !IsTerminal(w) {
		return termenv.Ascii
	}
	if IsCI() {
		return output.ColorProfileANSI()
	}
	return output.ColorProfile()
}
