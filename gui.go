package main

import (
	"fmt"
	"io"
)

// LaunchGUI prints how to build and run the desktop application, which lives
// in its own binary so the CLI does not need a graphics stack
func LaunchGUI(w io.Writer) {
	fmt.Fprintln(w, "To launch the GUI version, build it from cmd/gui:")
	fmt.Fprintln(w, "  go build -o lumox-gui ./cmd/gui")
	fmt.Fprintln(w, "Then run: ./lumox-gui")
}
