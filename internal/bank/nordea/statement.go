package nordea

import (
	"encoding/csv"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parse"
)

// Statement CSV columns used by the parser.
const (
	colValueDate   = "Value date"
	colAmount      = "Amount"
	colDebitCredit = "Debit/Credit"
	colBeneficiary = "Beneficiary/payer name"
	colDetails     = "Details"
)

// Card debits pack the purchase description and timestamp into the
// Details field, e.g.
// "Cards debits 5355356245089251ITUNES.COM BILL05.04.18 12:14:05EUR 6.99".
var (
	cardDebitDateRe = regexp.MustCompile(`Cards debits \d{16}.+?(\d{2}\.\d{2}\.\d{2} \d{2}:\d{2}:\d{2}).+`)
	cardDebitDescRe = regexp.MustCompile(`Cards debits \d{16}(.+?)\d{2}\.\d{2}\.\d{2}.+`)
)

// boilerplatePhrases is the noise Nordea prepends to transfer details.
var boilerplatePhrases = []string{
	"Internal Payment DR ",
	"Internal Payment CR ",
	"Incoming Euro Payment ",
	"Outgoing Euro Payment ",
	"Internal DB transfer ",
	"Daily Banking Package fee ",
}

// parseStatementCSV converts the semicolon-delimited account statement
// into transactions. Amounts use "," as the decimal separator; the
// Debit/Credit column carries the sign.
func parseStatementCSV(data string) ([]model.Transaction, error) {
	cr := csv.NewReader(strings.NewReader(data))
	cr.Comma = ';'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, bankerr.Parsef("reading statement CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, bankerr.Parsef("statement CSV is empty")
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseStatementRow(rec, cols)
		if err != nil {
			return nil, bankerr.Parsef("statement row %d: %v", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colValueDate, colAmount, colDebitCredit, colBeneficiary, colDetails} {
		if _, ok := cols[required]; !ok {
			return nil, bankerr.Parsef("statement CSV missing column %q", required)
		}
	}
	return cols, nil
}

func parseStatementRow(rec []string, cols map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}

	amount, err := parse.DecimalComma(field(colAmount))
	if err != nil {
		return model.Transaction{}, err
	}
	if field(colDebitCredit) == "D" {
		amount = amount.Neg()
	}

	details := field(colDetails)
	date, err := statementDate(field(colValueDate), details)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		Date:         date,
		Amount:       amount,
		Counterparty: html.UnescapeString(field(colBeneficiary)),
		Description:  statementDescription(details),
		Completed:    true,
	}, nil
}

// statementDate prefers the purchase timestamp embedded in card debit
// details over the value date, which lags the purchase by days.
func statementDate(valueDate, details string) (time.Time, error) {
	if m := cardDebitDateRe.FindStringSubmatch(details); m != nil {
		return time.Parse(parse.ShortDateTimeFormat, m[1])
	}
	return parse.Date(valueDate)
}

func statementDescription(details string) string {
	if m := cardDebitDescRe.FindStringSubmatch(details); m != nil {
		return m[1]
	}
	desc := details
	for _, phrase := range boilerplatePhrases {
		desc = strings.Replace(desc, phrase, "", 1)
	}
	return desc
}
