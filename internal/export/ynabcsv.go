package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/config"
)

const ynabCSVDateFormat = "02/01/2006"

// ynabCSVHeader is the import format YNAB expects.
var ynabCSVHeader = []string{"Date", "Category", "Payee", "Memo", "Inflow", "Outflow"}

// YnabCSV writes a ynab-<bank>.csv into the configured directory.
//
// Config key: exporter.ynab.csv.outDirectory.
type YnabCSV struct {
	cfg *config.Config
}

// NewYnabCSV creates the CSV exporter.
func NewYnabCSV(cfg *config.Config) *YnabCSV {
	return &YnabCSV{cfg: cfg}
}

// Export implements Exporter.
func (e *YnabCSV) Export(_ context.Context, b bank.Bank) error {
	outDir, err := e.cfg.Get("exporter.ynab.csv.outDirectory")
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("ynab-%s.csv", strings.ToLower(b.Name()))
	f, err := os.Create(filepath.Join(outDir, fileName))
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(ynabCSVHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, txn := range b.Transactions() {
		inflow, outflow := "", ""
		if txn.Amount.IsPositive() {
			inflow = txn.Amount.StringFixed(2)
		} else {
			outflow = txn.Amount.Neg().StringFixed(2)
		}
		row := []string{
			txn.Date.Format(ynabCSVDateFormat),
			"",
			txn.Counterparty,
			txn.Description,
			inflow,
			outflow,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
