package nordea

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parse"
)

// Summary table columns per row: account name, currency, balance,
// funds available, reserved, last transaction.
const (
	summaryColAvailable = 3
	summaryColReserved  = 4
)

// parseSummaryHTML extracts the balance snapshot for the configured
// account from the account summary page. Exactly one row must match
// the account name; anything else fails loudly.
func parseSummaryHTML(pageHTML, accountName string) (model.Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return model.Summary{}, bankerr.Parsef("parsing summary page: %v", err)
	}

	rows := doc.Find(".tgrid1 tbody tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return strings.Contains(row.Text(), accountName)
	})
	if rows.Length() != 1 {
		return model.Summary{}, bankerr.Configf("could not find account with name %q on summary page", accountName)
	}

	cells := rows.First().Find("td")
	if cells.Length() <= summaryColReserved {
		return model.Summary{}, bankerr.Parsef("summary row has %d columns, expected at least %d",
			cells.Length(), summaryColReserved+1)
	}

	// Numbers here use "." decimals and "," thousands separators.
	available, err := parse.DecimalDot(cells.Eq(summaryColAvailable).Text())
	if err != nil {
		return model.Summary{}, err
	}
	reserved, err := parse.DecimalDot(cells.Eq(summaryColReserved).Text())
	if err != nil {
		return model.Summary{}, err
	}

	return model.Summary{Pending: reserved, Available: available}, nil
}
