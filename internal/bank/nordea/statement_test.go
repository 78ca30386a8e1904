package nordea

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

const statementFixture = `Value date;Amount;Debit/Credit;Beneficiary/payer name;Details
03.06.2018;12,34;D;ACME OU;Internal Payment DR Rent June
04.06.2018;12,34;C;John &amp; Sons;Incoming Euro Payment Invoice 42
05.06.2018;6,99;D;;Cards debits 5355356245089251ITUNES.COM BILL05.04.18 12:14:05EUR 6.99
`

func TestParseStatementCSV(t *testing.T) {
	txns, err := parseStatementCSV(statementFixture)
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// Debit flag negates the amount.
	assert.Equal(t, "-12.34", txns[0].Amount.String())
	assert.Equal(t, "Rent June", txns[0].Description, "boilerplate phrase stripped")
	assert.Equal(t, time.Date(2018, 6, 3, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.True(t, txns[0].Completed)

	// Credit rows keep the positive sign; entities are decoded.
	assert.Equal(t, "12.34", txns[1].Amount.String())
	assert.Equal(t, "John & Sons", txns[1].Counterparty)
	assert.Equal(t, "Invoice 42", txns[1].Description)

	// Card debits take date and description from the Details field.
	assert.Equal(t, "ITUNES.COM BILL", txns[2].Description)
	assert.Equal(t, time.Date(2018, 4, 5, 12, 14, 5, 0, time.UTC), txns[2].Date)
	assert.Equal(t, "-6.99", txns[2].Amount.String())
}

func TestParseStatementCSVIdempotent(t *testing.T) {
	first, err := parseStatementCSV(statementFixture)
	require.NoError(t, err)
	second, err := parseStatementCSV(statementFixture)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseStatementCSVMissingColumn(t *testing.T) {
	_, err := parseStatementCSV("Value date;Amount;Debit/Credit\n01.06.2018;1,00;D\n")
	assert.ErrorIs(t, err, bankerr.ErrParse)
	assert.Contains(t, err.Error(), "Beneficiary/payer name")
}

func TestParseStatementCSVBadAmount(t *testing.T) {
	_, err := parseStatementCSV("Value date;Amount;Debit/Credit;Beneficiary/payer name;Details\n01.06.2018;oops;D;X;Y\n")
	assert.ErrorIs(t, err, bankerr.ErrParse)
}
