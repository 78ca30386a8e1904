// Package revolut fetches account data from the Revolut API. There is
// no challenge step: the configured client id and secret authenticate
// every request directly, so the adapter is two JSON calls.
//
// Config keys: bank.revolut.clientId, bank.revolut.clientSecret,
// bank.revolut.deviceId.
package revolut

import (
	"context"
	"fmt"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/fetch"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
	"github.com/bankfeed-dev/bankfeed/internal/session"
)

// Name is the registry name of this adapter.
const Name = "Revolut"

const defaultBaseURL = "https://api.revolut.com"

// Bank is the Revolut adapter.
type Bank struct {
	cfg     *config.Config
	baseURL string
	now     func() time.Time

	txns    []model.Transaction
	summary model.Summary
}

var _ bank.Bank = (*Bank)(nil)

// New creates the adapter.
func New(cfg *config.Config) *Bank {
	return &Bank{cfg: cfg, baseURL: defaultBaseURL, now: time.Now}
}

// Name implements bank.Bank.
func (b *Bank) Name() string { return Name }

// Transactions returns the EUR transactions from the last fetch,
// sorted ascending by start date.
func (b *Bank) Transactions() []model.Transaction { return b.txns }

// Summary returns the EUR pocket snapshot from the last fetch.
func (b *Bank) Summary() model.Summary { return b.summary }

// FetchData retrieves the past month of transactions and the wallet.
func (b *Bank) FetchData(ctx context.Context, r progress.Reporter) error {
	b.txns = nil
	b.summary = model.Summary{}

	clientID, err := b.cfg.Get("bank.revolut.clientId")
	if err != nil {
		return err
	}
	clientSecret, err := b.cfg.Get("bank.revolut.clientSecret")
	if err != nil {
		return err
	}
	deviceID, err := b.cfg.Get("bank.revolut.deviceId")
	if err != nil {
		return err
	}

	client := session.New(b.baseURL,
		session.WithBasicAuth(clientID, clientSecret),
		session.WithHeader("User-Agent", ""),
		session.WithHeader("X-Api-Version", "1"),
		session.WithHeader("X-Device-Id", deviceID))

	var (
		transactions []apiTransaction
		wallet       apiWallet
	)
	steps := []fetch.Step{
		{Label: "Fetching transactions", Run: func(ctx context.Context) error {
			from := b.now().AddDate(0, -1, 0).UnixMilli()
			return client.GetJSON(ctx, fmt.Sprintf("/user/current/transactions?from=%d", from), &transactions)
		}},
		{Label: "Fetching balance", Run: func(ctx context.Context) error {
			return client.GetJSON(ctx, "/user/current/wallet", &wallet)
		}},
	}
	if err := fetch.Run(ctx, r, steps); err != nil {
		return fmt.Errorf("revolut: %w", err)
	}

	summary, err := extractSummary(wallet)
	if err != nil {
		return fmt.Errorf("revolut: %w", err)
	}

	b.txns = extractTransactions(transactions)
	b.summary = summary
	return nil
}
