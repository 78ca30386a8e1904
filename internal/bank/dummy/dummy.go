// Package dummy is a no-network bank for trying out the pipeline,
// spinner and exporters without credentials.
package dummy

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

// Name is the registry name of this adapter.
const Name = "Dummy"

// Bank emits canned data after a few visible progress steps.
type Bank struct {
	StepDelay time.Duration
	now       func() time.Time
}

var _ bank.Bank = (*Bank)(nil)

// New creates the dummy bank.
func New() *Bank {
	return &Bank{StepDelay: 500 * time.Millisecond, now: time.Now}
}

// Name implements bank.Bank.
func (b *Bank) Name() string { return Name }

// FetchData walks five progress steps with a short pause each.
func (b *Bank) FetchData(ctx context.Context, r progress.Reporter) error {
	r = progress.Guard(r)
	for i := 1; i <= 5; i++ {
		done := r.Step(fmt.Sprintf("Progress step %d", i))
		if err := ctx.Err(); err != nil {
			done(err)
			return err
		}
		select {
		case <-ctx.Done():
			done(ctx.Err())
			return ctx.Err()
		case <-time.After(b.StepDelay):
		}
		done(nil)
	}
	return nil
}

// Transactions returns fixed rows spread over the past week.
func (b *Bank) Transactions() []model.Transaction {
	now := b.now()
	return []model.Transaction{
		{Date: now.AddDate(0, 0, -7), Amount: decimal.NewFromInt(-12), Counterparty: "Some Guy", Description: "Das ist description", Completed: false},
		{Date: now.AddDate(0, 0, -4), Amount: decimal.RequireFromString("-929.23"), Counterparty: "Some Guy", Description: "Das ist description", Completed: true},
		{Date: now.AddDate(0, 0, -3), Amount: decimal.RequireFromString("123.45"), Description: "Das ist description", Completed: true},
		{Date: now, Amount: decimal.RequireFromString("0.02"), Counterparty: "Some Guy", Completed: true},
	}
}

// Summary returns a fixed snapshot.
func (b *Bank) Summary() model.Summary {
	return model.Summary{
		Pending:   decimal.RequireFromString("123.45"),
		Available: decimal.RequireFromString("22.30"),
	}
}
