package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Console reports steps to a terminal: a spinner while the step runs,
// then a ✅/❌ line with the elapsed time.
type Console struct {
	out     io.Writer
	spinner bool
}

// NewConsole creates a Console reporter writing to out. Disable the
// spinner for non-TTY output.
func NewConsole(out io.Writer, useSpinner bool) *Console {
	return &Console{out: out, spinner: useSpinner}
}

// Step implements Reporter.
func (c *Console) Step(label string) Done {
	start := time.Now()

	var sp *spinner.Spinner
	if c.spinner {
		sp = spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(c.out))
		sp.Suffix = " " + label
		sp.Start()
	}

	return func(err error) {
		if sp != nil {
			sp.Stop()
		}
		elapsed := color.YellowString("(%.1fs)", time.Since(start).Seconds())
		mark := "✅"
		if err != nil {
			mark = "❌"
		}
		fmt.Fprintf(c.out, "%s %s %s\n", mark, label, elapsed)
	}
}
