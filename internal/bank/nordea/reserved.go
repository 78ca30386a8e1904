package nordea

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parse"
)

// Reservation rows: 0 date, 1 amount, 2 empty, 3 details.
const (
	reservedColDate    = 0
	reservedColAmount  = 1
	reservedColDetails = 3
	reservedNumCols    = 4
)

const posTransactionPrefix = "POS transaction "

// Card holds show up as "description >MERCHANT NAME".
var twoPartDetailsRe = regexp.MustCompile(`(.+)\s>(.+)`)

// parseReservedHTML extracts pending holds from the reservations page.
// Amounts are listed unsigned and are always debits; the rows merge
// into the statement with Completed=false.
func parseReservedHTML(pageHTML string) ([]model.Transaction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, bankerr.Parsef("parsing reservations page: %v", err)
	}

	var txns []model.Transaction
	var rowErr error
	doc.Find(".tgrid1 tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < reservedNumCols {
			// Header and filler rows carry no transaction data.
			return true
		}

		date, err := parse.Date(cells.Eq(reservedColDate).Text())
		if err != nil {
			rowErr = bankerr.Parsef("reservation row %d: %v", i+1, err)
			return false
		}
		amount, err := parse.DecimalDot(cells.Eq(reservedColAmount).Text())
		if err != nil {
			rowErr = bankerr.Parsef("reservation row %d: %v", i+1, err)
			return false
		}

		description, name := splitReservedDetails(cells.Eq(reservedColDetails).Text())
		txns = append(txns, model.Transaction{
			Date:         date,
			Amount:       amount.Neg(),
			Counterparty: name,
			Description:  description,
			Completed:    false,
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return txns, nil
}

func splitReservedDetails(details string) (description, name string) {
	cleaned := strings.Replace(strings.TrimSpace(details), posTransactionPrefix, "", 1)
	if m := twoPartDetailsRe.FindStringSubmatch(cleaned); m != nil {
		return m[1], m[2]
	}
	return cleaned, ""
}
