// Package fetch runs the sequential resource pipeline a bank adapter
// needs after login. Steps run strictly in order because later requests
// use values discovered in earlier responses; the first failure aborts
// the rest and no partial result is kept.
package fetch

import (
	"context"
	"fmt"
	"regexp"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

// Step is one stage of a fetch pipeline. The label goes to the
// progress reporter; Run does the work.
type Step struct {
	Label string
	Run   func(ctx context.Context) error
}

// Run executes steps in order, reporting each start and outcome.
// The first error stops the pipeline and is returned wrapped with the
// step label.
func Run(ctx context.Context, r progress.Reporter, steps []Step) error {
	r = progress.Guard(r)
	for _, step := range steps {
		done := r.Step(step.Label)
		err := step.Run(ctx)
		done(err)
		if err != nil {
			return fmt.Errorf("%s: %w", step.Label, err)
		}
	}
	return nil
}

// Discover extracts the first capture group of re from page. The name
// describes what is being looked for and appears in the error when the
// pattern does not match.
func Discover(name string, re *regexp.Regexp, page string) (string, error) {
	m := re.FindStringSubmatch(page)
	if len(m) < 2 {
		return "", bankerr.Parsef("%s not found on page", name)
	}
	return m[1], nil
}
