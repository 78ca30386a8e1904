package model

import "github.com/shopspring/decimal"

// Summary is a point-in-time balance snapshot for one account.
type Summary struct {
	Pending   decimal.Decimal // reserved/held amount
	Available decimal.Decimal
}
