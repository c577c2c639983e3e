package cli

import (
	"fmt"
	"io"
)

// progressLine renders phase/progress updates on a single terminal line,
// the CLI's stand-in for the desktop progress bar.
type progressLine struct {
	out    io.Writer
	active bool
}

func newProgressLine(out io.Writer) *progressLine {
	return &progressLine{out: out}
}

// Update rewrites the line with the current phase and percentage.
func (p *progressLine) Update(phase string, percent int) {
	p.active = true
	fmt.Fprintf(p.out, "\r\033[K[%3d%%] %s", percent, phase)
}

// Finish clears the line so final output starts clean.
func (p *progressLine) Finish() {
	if !p.active {
		return
	}
	fmt.Fprint(p.out, "\r\033[K")
	p.active = false
}
