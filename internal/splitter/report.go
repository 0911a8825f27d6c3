package splitter

import (
	"fmt"
	"io"
)

// Report is what the operator sees after a run.
type Report struct {
	FirstPath  string
	FirstCount int
	RestPath   string
	RestCount  int
	DryRun     bool
}

// Print writes the completion notice and one line per output file.
func (r Report) Print(w io.Writer) {
	if r.DryRun {
		fmt.Fprintln(w, "Dry run complete, no files written.")
	} else {
		fmt.Fprintln(w, "Split complete!")
	}
	fmt.Fprintf(w, "First file (%s): %d emails\n", r.FirstPath, r.FirstCount)
	fmt.Fprintf(w, "Second file (%s): %d emails\n", r.RestPath, r.RestCount)
}
