package export

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

const consoleDateFormat = "2006.01.02 Mon"

// Console prints the transactions and summary as terminal tables.
// Debits are red, credits green, pending rows dimmed.
type Console struct {
	out io.Writer
}

// NewConsole creates a console exporter writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Export implements Exporter.
func (c *Console) Export(_ context.Context, b bank.Bank) error {
	c.printName(b.Name())
	c.printTransactions(b.Transactions())
	c.printSummary(b.Summary())
	return nil
}

func (c *Console) printName(name string) {
	table := tablewriter.NewWriter(c.out)
	table.Append([]string{"Bank", name})
	table.Render()
}

func (c *Console) printTransactions(txns []model.Transaction) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Date", "Amount", "Payer/Payee", "Description"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, txn := range txns {
		table.Append([]string{
			txn.Date.Format(consoleDateFormat),
			formatAmount(txn),
			txn.Counterparty,
			txn.Description,
		})
	}
	table.Render()
}

func (c *Console) printSummary(summary model.Summary) {
	table := tablewriter.NewWriter(c.out)
	table.Append([]string{"Pending Amount", color.New(color.Faint).Sprint(summary.Pending.StringFixed(2))})
	table.Append([]string{"Available Amount", summary.Available.StringFixed(2)})
	table.Render()
}

func formatAmount(txn model.Transaction) string {
	text := txn.Amount.StringFixed(2)
	if txn.Amount.IsNegative() {
		text = color.RedString(text)
	} else {
		text = color.GreenString(text)
	}
	if !txn.Completed {
		text = color.New(color.Faint).Sprint(text)
	}
	return text
}
