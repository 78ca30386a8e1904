// Package swedbank fetches account data through Swedbank's mobile web
// API. Logging in is asynchronous: submitting credentials returns a
// Smart-ID challenge code which the user confirms on their phone while
// the adapter polls the status endpoint.
//
// Config keys: bank.swedbank.userId, bank.swedbank.socialSecurityId,
// bank.swedbank.accountNr.
package swedbank

import (
	"context"
	"fmt"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/auth"
	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/fetch"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
	"github.com/bankfeed-dev/bankfeed/internal/session"
)

// Name is the registry name of this adapter.
const Name = "Swedbank"

const (
	defaultBaseURL   = "https://www.swedbank.ee"
	overviewPath     = "/touch/private/overview"
	transactionsPath = "/touch/private/statement"
)

// Bank is the Swedbank adapter.
type Bank struct {
	cfg      *config.Config
	baseURL  string
	now      func() time.Time
	pollOpts auth.Options

	txns    []model.Transaction
	summary model.Summary
}

var _ bank.Bank = (*Bank)(nil)

// New creates the adapter with the default poll cadence (3 s interval,
// 10 attempts).
func New(cfg *config.Config) *Bank {
	return &Bank{cfg: cfg, baseURL: defaultBaseURL, now: time.Now}
}

// Name implements bank.Bank.
func (b *Bank) Name() string { return Name }

// Transactions returns the statement rows from the last fetch, sorted
// ascending by date and limited to the past month.
func (b *Bank) Transactions() []model.Transaction { return b.txns }

// Summary returns the balance snapshot from the last fetch. The
// overview page does not expose reservations, so Pending is zero.
func (b *Bank) Summary() model.Summary { return b.summary }

// FetchData logs in with Smart-ID and retrieves the account overview
// and statement pages.
func (b *Bank) FetchData(ctx context.Context, r progress.Reporter) error {
	b.txns = nil
	b.summary = model.Summary{}

	userID, err := b.cfg.Get("bank.swedbank.userId")
	if err != nil {
		return err
	}
	ssn, err := b.cfg.Get("bank.swedbank.socialSecurityId")
	if err != nil {
		return err
	}
	accountNr, err := b.cfg.Get("bank.swedbank.accountNr")
	if err != nil {
		return err
	}

	client := session.New(b.baseURL)

	flow := auth.NewFlow(&smartIDStarter{client: client, userID: userID, ssn: ssn}, b.pollOpts)
	if _, err := flow.Run(ctx, r); err != nil {
		return fmt.Errorf("swedbank: %w", err)
	}

	var overviewHTML, statementHTML string
	steps := []fetch.Step{
		{Label: "Opening account overview", Run: func(ctx context.Context) error {
			overviewHTML, err = client.Get(ctx, overviewPath)
			return err
		}},
		{Label: "Opening account statement", Run: func(ctx context.Context) error {
			statementHTML, err = client.Get(ctx, transactionsPath)
			return err
		}},
	}
	if err := fetch.Run(ctx, r, steps); err != nil {
		return fmt.Errorf("swedbank: %w", err)
	}

	summary, err := parseOverviewHTML(overviewHTML, accountNr)
	if err != nil {
		return fmt.Errorf("swedbank: %w", err)
	}
	txns, err := parseTransactionsHTML(statementHTML)
	if err != nil {
		return fmt.Errorf("swedbank: %w", err)
	}

	b.txns = b.filterRecent(txns)
	b.summary = summary
	return nil
}

// filterRecent keeps rows from the past month. The statement page has
// no server-side date filter, so old rows are dropped here; zero-amount
// filler rows go with them.
func (b *Bank) filterRecent(txns []model.Transaction) []model.Transaction {
	afterDate := b.now().AddDate(0, -1, 0)

	var kept []model.Transaction
	for _, txn := range txns {
		if txn.Amount.IsZero() || !txn.Date.After(afterDate) {
			continue
		}
		kept = append(kept, txn)
	}
	model.SortByDate(kept)
	return kept
}
