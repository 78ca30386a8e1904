package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/session"
)

const (
	defaultYnabBaseURL = "https://api.ynab.com"
	ynabDateFormat     = "2006-01-02"
	maxPayeeNameLength = 50
	maxMemoLength      = 100
)

// YnabAPI pushes transactions to YNAB when the account balance there
// is out of date. Banks without a configured YNAB account id are
// skipped.
//
// Config keys: exporter.ynab.api.key, exporter.ynab.api.budgetId,
// exporter.ynab.api.account.<bank>.
type YnabAPI struct {
	cfg     *config.Config
	out     io.Writer
	baseURL string
	now     func() time.Time
}

// NewYnabAPI creates the API exporter, reporting to out.
func NewYnabAPI(cfg *config.Config, out io.Writer) *YnabAPI {
	return &YnabAPI{cfg: cfg, out: out, baseURL: defaultYnabBaseURL, now: time.Now}
}

type ynabAccountResponse struct {
	Data struct {
		Account struct {
			Balance int64 `json:"balance"` // milliunits
		} `json:"account"`
	} `json:"data"`
}

type ynabTransaction struct {
	ImportID  string `json:"import_id"`
	AccountID string `json:"account_id"`
	Date      string `json:"date"`
	Amount    int64  `json:"amount"` // milliunits
	PayeeName string `json:"payee_name"`
	Memo      string `json:"memo"`
	Cleared   string `json:"cleared"`
	FlagColor string `json:"flag_color"`
}

type ynabCreateRequest struct {
	Transactions []ynabTransaction `json:"transactions"`
}

type ynabCreateResponse struct {
	Data struct {
		TransactionIDs []string `json:"transaction_ids"`
	} `json:"data"`
}

// Export implements Exporter.
func (e *YnabAPI) Export(ctx context.Context, b bank.Bank) error {
	accountID, err := e.cfg.Get(fmt.Sprintf("exporter.ynab.api.account.%s", strings.ToLower(b.Name())))
	if err != nil {
		fmt.Fprintln(e.out, "Skipping YNAB API export, no account id configured for", b.Name())
		return nil
	}
	apiKey, err := e.cfg.Get("exporter.ynab.api.key")
	if err != nil {
		return err
	}
	budgetID, err := e.cfg.Get("exporter.ynab.api.budgetId")
	if err != nil {
		return err
	}

	client := session.New(e.baseURL, session.WithHeader("Authorization", "Bearer "+apiKey))

	var account ynabAccountResponse
	path := fmt.Sprintf("/v1/budgets/%s/accounts/%s", budgetID, accountID)
	if err := client.GetJSON(ctx, path, &account); err != nil {
		return fmt.Errorf("fetching YNAB account balance: %w", err)
	}

	if account.Data.Account.Balance == toMilliUnits(b.Summary().Available) {
		fmt.Fprintln(e.out, "YNAB is up to date")
		return nil
	}

	req := ynabCreateRequest{Transactions: e.toYnabTransactions(b.Transactions(), accountID)}
	var resp ynabCreateResponse
	path = fmt.Sprintf("/v1/budgets/%s/transactions", budgetID)
	if err := client.PostJSON(ctx, path, req, &resp); err != nil {
		return fmt.Errorf("sending transactions to YNAB: %w", err)
	}

	fmt.Fprintf(e.out, "Done. Added %d new transactions.\n", len(resp.Data.TransactionIDs))
	return nil
}

func (e *YnabAPI) toYnabTransactions(txns []model.Transaction, accountID string) []ynabTransaction {
	gen := newImportIDGenerator()
	now := e.now()

	out := make([]ynabTransaction, 0, len(txns))
	for _, txn := range txns {
		// YNAB rejects future dates, which some banks use for pending
		// transactions.
		date := txn.Date
		if date.After(now) {
			date = now
		}

		out = append(out, ynabTransaction{
			ImportID:  gen.generate(date, txn.Amount),
			AccountID: accountID,
			Date:      date.Format(ynabDateFormat),
			Amount:    toMilliUnits(txn.Amount),
			PayeeName: truncate(strings.TrimSpace(txn.Counterparty), maxPayeeNameLength),
			Memo:      truncate(txn.Description, maxMemoLength),
			Cleared:   "cleared",
			FlagColor: "orange",
		})
	}
	return out
}

// importIDGenerator builds YNAB import ids in the documented format
// YNAB:[milliunit_amount]:[iso_date]:[occurrence], counting duplicates
// of the same amount and date.
type importIDGenerator struct {
	occurrences map[string]int
}

func newImportIDGenerator() *importIDGenerator {
	return &importIDGenerator{occurrences: make(map[string]int)}
}

func (g *importIDGenerator) generate(date time.Time, amount decimal.Decimal) string {
	partial := fmt.Sprintf("YNAB:%d:%s", toMilliUnits(amount), date.Format(ynabDateFormat))
	g.occurrences[partial]++
	return fmt.Sprintf("%s:%d", partial, g.occurrences[partial])
}

func toMilliUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(1000)).Round(0).IntPart()
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
