package revolut

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Only the primary currency is exported; other pockets are ignored.
const currency = "EUR"

const (
	stateCompleted = "COMPLETED"
	statePending   = "PENDING"
	stateActive    = "ACTIVE"
)

// extractTransactions keeps EUR transactions that completed or are
// pending, drops declined/failed ones, and normalizes amounts from
// minor units with the fee folded in.
func extractTransactions(transactions []apiTransaction) []model.Transaction {
	var txns []model.Transaction
	for _, t := range transactions {
		if t.Currency != currency {
			continue
		}
		if t.State != stateCompleted && t.State != statePending {
			continue
		}
		txns = append(txns, model.Transaction{
			Date:         time.UnixMilli(t.StartedDate).UTC(),
			Amount:       minorUnits(t.Amount - t.Fee),
			Counterparty: counterparty(t),
			Description:  description(t),
			Completed:    t.State != statePending,
		})
	}
	model.SortByDate(txns)
	return txns
}

// extractSummary reads the first active EUR pocket.
func extractSummary(wallet apiWallet) (model.Summary, error) {
	for _, pocket := range wallet.Pockets {
		if pocket.Currency != currency || pocket.State != stateActive {
			continue
		}
		return model.Summary{
			Pending:   minorUnits(pocket.BlockedAmount),
			Available: minorUnits(pocket.Balance),
		}, nil
	}
	return model.Summary{}, bankerr.Parsef("wallet has no active %s pocket", currency)
}

// counterparty prefers structured fields: the transfer party's name,
// then the merchant, falling back to the raw description.
func counterparty(t apiTransaction) string {
	switch t.Type {
	case "TRANSFER":
		if t.Sender != nil {
			return fmt.Sprintf("%s %s", t.Sender.FirstName, t.Sender.LastName)
		}
		if t.Recipient != nil {
			return fmt.Sprintf("%s %s", t.Recipient.FirstName, t.Recipient.LastName)
		}
	case "CARD_PAYMENT":
		if t.Merchant != nil {
			return fmt.Sprintf("%s, %s, %s", t.Merchant.Name, t.Merchant.City, t.Merchant.Country)
		}
	case "ATM":
		if t.Merchant != nil {
			return fmt.Sprintf("Cash at %s, %s, %s", t.Merchant.Name, t.Merchant.City, t.Merchant.Country)
		}
	}
	return t.Description
}

func description(t apiTransaction) string {
	if t.Type == "TRANSFER" && t.Comment != "" {
		return t.Comment
	}
	return t.Description
}

func minorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}
