package revolut

// Transaction and wallet shapes of the undocumented consumer API.
// Amounts are integer minor units (cents).

type apiParty struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type apiMerchant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type apiTransaction struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`  // CARD_PAYMENT, TRANSFER, TOPUP, ATM
	State       string       `json:"state"` // COMPLETED, PENDING, DECLINED, FAILED
	StartedDate int64        `json:"startedDate"` // unix millis
	Currency    string       `json:"currency"`
	Amount      int64        `json:"amount"`
	Fee         int64        `json:"fee"`
	Description string       `json:"description"`
	Comment     string       `json:"comment"`
	Merchant    *apiMerchant `json:"merchant"`
	Sender      *apiParty    `json:"sender"`
	Recipient   *apiParty    `json:"recipient"`
}

type apiPocket struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	State         string `json:"state"` // ACTIVE, INACTIVE
	Currency      string `json:"currency"`
	Balance       int64  `json:"balance"`
	BlockedAmount int64  `json:"blockedAmount"`
	Closed        bool   `json:"closed"`
}

type apiWallet struct {
	ID           string      `json:"id"`
	State        string      `json:"state"`
	BaseCurrency string      `json:"baseCurrency"`
	Pockets      []apiPocket `json:"pockets"`
}
