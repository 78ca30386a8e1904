// Package nordea fetches account data from the Nordea netbank. The
// login is a synchronous two-step form exchange; every page after it is
// discovered by scanning the previous response for the next URL.
//
// Config keys: bank.nordea.userId, bank.nordea.password,
// bank.nordea.accountName, bank.nordea.accountIdForCsv.
package nordea

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/fetch"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parse"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
	"github.com/bankfeed-dev/bankfeed/internal/session"
)

// Name is the registry name of this adapter.
const Name = "Nordea"

const (
	defaultBaseURL = "https://netbank.nordea.com"
	loginPagePath  = "/pnb/login.do?ts=EE&language=en"
	csvLayoutCSV   = "4" // layoutList value selecting CSV export
)

var (
	csValueRe      = regexp.MustCompile(`loginConfig\.urlGetUserId = '.+;cs=(.+)';`)
	welcomePathRe  = regexp.MustCompile(`<path>(.+?)</path>`)
	summaryURLRe   = regexp.MustCompile(`"(/pnb/acnt\.do\?ms=true.+?)"`)
	reservationsRe = regexp.MustCompile(`"(/pnb/acnt\.do\?act=hld.+?)"`)
	statementURLRe = regexp.MustCompile(`"(/pnb/acnt\.do\?act=sr.+?)"`)
	csvFormURLRe   = regexp.MustCompile(`"(/pnb/acnt_sr\.do\?act=sr.+?)"`)
)

// Bank is the Nordea adapter.
type Bank struct {
	cfg     *config.Config
	baseURL string
	now     func() time.Time

	txns    []model.Transaction
	summary model.Summary
}

var _ bank.Bank = (*Bank)(nil)

// New creates the adapter. Fetching happens lazily in FetchData.
func New(cfg *config.Config) *Bank {
	return &Bank{cfg: cfg, baseURL: defaultBaseURL, now: time.Now}
}

// Name implements bank.Bank.
func (b *Bank) Name() string { return Name }

// Transactions returns the merged statement and reserved rows from the
// last fetch, sorted ascending by date.
func (b *Bank) Transactions() []model.Transaction { return b.txns }

// Summary returns the balance snapshot from the last fetch.
func (b *Bank) Summary() model.Summary { return b.summary }

// FetchData logs in and walks the page chain: main page, account
// summary, reservations, account statement, statement CSV. Any failed
// step aborts the rest.
func (b *Bank) FetchData(ctx context.Context, r progress.Reporter) error {
	b.txns = nil
	b.summary = model.Summary{}

	userID, err := b.cfg.Get("bank.nordea.userId")
	if err != nil {
		return err
	}
	password, err := b.cfg.Get("bank.nordea.password")
	if err != nil {
		return err
	}
	accountName, err := b.cfg.Get("bank.nordea.accountName")
	if err != nil {
		return err
	}
	csvAccountID, err := b.cfg.Get("bank.nordea.accountIdForCsv")
	if err != nil {
		return err
	}

	client := session.New(b.baseURL)

	var (
		cs           string
		welcomePath  string
		summaryHTML  string
		reservedHTML string
		statementCSV string
	)

	steps := []fetch.Step{
		{Label: "Opening login page", Run: func(ctx context.Context) error {
			page, err := client.Get(ctx, loginPagePath)
			if err != nil {
				return err
			}
			cs, err = fetch.Discover("cs token", csValueRe, page)
			return err
		}},
		{Label: "Login step 1, sending username", Run: func(ctx context.Context) error {
			path := fmt.Sprintf("/pnb/login1.do?ts=EE&act=id&ajax=true&cs=%s", cs)
			_, err := client.PostForm(ctx, path, url.Values{"userId": {userID}})
			return err
		}},
		{Label: "Login step 2, sending password", Run: func(ctx context.Context) error {
			path := fmt.Sprintf("/pnb/login2.do?act=auth&ajax=true&cs=%s", cs)
			// Response is a small XML document whose <path> element
			// carries the post-login welcome URL.
			xml, err := client.PostForm(ctx, path, url.Values{"authCode": {password}})
			if err != nil {
				return err
			}
			welcomePath, err = fetch.Discover("welcome path", welcomePathRe, xml)
			if err != nil {
				return err
			}
			welcomePath = html.UnescapeString(welcomePath)
			return nil
		}},
		{Label: "Logged in, opening main page", Run: func(ctx context.Context) error {
			page, err := client.Get(ctx, welcomePath)
			if err != nil {
				return err
			}
			summaryURL, err := fetch.Discover("account summary url", summaryURLRe, page)
			if err != nil {
				return err
			}
			summaryHTML, err = client.Get(ctx, html.UnescapeString(summaryURL))
			return err
		}},
		{Label: "Opening reservations page", Run: func(ctx context.Context) error {
			reservationsURL, err := fetch.Discover("reservations url", reservationsRe, summaryHTML)
			if err != nil {
				return err
			}
			reservedHTML, err = client.Get(ctx, html.UnescapeString(reservationsURL))
			return err
		}},
		{Label: "Fetching account statement CSV", Run: func(ctx context.Context) error {
			statementURL, err := fetch.Discover("account statement url", statementURLRe, reservedHTML)
			if err != nil {
				return err
			}
			statementHTML, err := client.Get(ctx, html.UnescapeString(statementURL))
			if err != nil {
				return err
			}
			csvFormURL, err := fetch.Discover("csv form url", csvFormURLRe, statementHTML)
			if err != nil {
				return err
			}
			raw, err := client.PostFormBytes(ctx, html.UnescapeString(csvFormURL), url.Values{
				"export":     {"true"},
				"accountId":  {csvAccountID},
				"layoutList": {csvLayoutCSV},
				"startDate":  {startOfPreviousMonth(b.now()).Format(parse.DateFormat)},
				"endDate":    {b.now().AddDate(0, 1, 0).Format(parse.DateFormat)},
			})
			if err != nil {
				return err
			}
			// The netbank serves the CSV as windows-1252.
			decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
			if err != nil {
				return fmt.Errorf("decoding statement CSV: %w", err)
			}
			statementCSV = string(decoded)
			return nil
		}},
	}

	if err := fetch.Run(ctx, r, steps); err != nil {
		return fmt.Errorf("nordea: %w", err)
	}

	summary, err := parseSummaryHTML(summaryHTML, accountName)
	if err != nil {
		return fmt.Errorf("nordea: %w", err)
	}
	statement, err := parseStatementCSV(statementCSV)
	if err != nil {
		return fmt.Errorf("nordea: %w", err)
	}
	reserved, err := parseReservedHTML(reservedHTML)
	if err != nil {
		return fmt.Errorf("nordea: %w", err)
	}

	txns := append(statement, reserved...)
	model.SortByDate(txns)

	b.txns = txns
	b.summary = summary
	return nil
}

func startOfPreviousMonth(now time.Time) time.Time {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 0)
}
