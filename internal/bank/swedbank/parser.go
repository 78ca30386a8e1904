package swedbank

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parse"
)

// parseOverviewHTML finds the configured account in the overview list
// and reads its available balance. Numbers use spaces for thousands
// and may carry a trailing currency code.
func parseOverviewHTML(pageHTML, accountNr string) (model.Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return model.Summary{}, bankerr.Parsef("parsing overview page: %v", err)
	}

	var summary model.Summary
	found := false
	var parseErr error
	doc.Find("#accounts-list li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		nr := strings.TrimSpace(li.Find(".ui-block-a p.text-secondary").Text())
		if !strings.Contains(nr, accountNr) {
			return true
		}
		available, err := parse.DecimalDot(trimCurrency(li.Find(".ui-block-b").Text()))
		if err != nil {
			parseErr = err
			return false
		}
		summary = model.Summary{Available: available}
		found = true
		return false
	})
	if parseErr != nil {
		return model.Summary{}, parseErr
	}
	if !found {
		return model.Summary{}, bankerr.Configf("could not find account with number %q on overview page", accountNr)
	}
	return summary, nil
}

// parseTransactionsHTML reads the statement list. Rows without a
// .ui-grid-a block are headers and footers, not transactions.
func parseTransactionsHTML(pageHTML string) ([]model.Transaction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, bankerr.Parsef("parsing statement page: %v", err)
	}

	var txns []model.Transaction
	var rowErr error
	doc.Find("#account-transactions-list li").
		FilterFunction(func(_ int, li *goquery.Selection) bool {
			return li.Find(".ui-grid-a").Length() > 0
		}).
		EachWithBreak(func(i int, li *goquery.Selection) bool {
			date, err := parse.Date(li.Find(".ui-block-a").First().Text())
			if err != nil {
				rowErr = bankerr.Parsef("statement row %d: %v", i+1, err)
				return false
			}
			amount, err := parse.DecimalDot(trimCurrency(li.Find(".ui-block-b").First().Text()))
			if err != nil {
				rowErr = bankerr.Parsef("statement row %d: %v", i+1, err)
				return false
			}

			txns = append(txns, model.Transaction{
				Date:         date,
				Amount:       amount,
				Counterparty: strings.TrimSpace(li.Find("h3").Not(".ui-block-b").Text()),
				Description:  strings.TrimSpace(li.Find("p.text-secondary").Text()),
				Completed:    true,
			})
			return true
		})
	if rowErr != nil {
		return nil, rowErr
	}
	return txns, nil
}

func trimCurrency(text string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "EUR"))
}
