package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one normalized ledger entry from any bank.
type Transaction struct {
	Date         time.Time
	Amount       decimal.Decimal // negative = debit, positive = credit
	Counterparty string
	Description  string
	Completed    bool // false for pending/reserved holds
}

// SortByDate orders transactions ascending by date. Transactions with
// equal dates keep their original order.
func SortByDate(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})
}
