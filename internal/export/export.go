// Package export turns fetched bank data into its output forms: a
// console table, a YNAB-compatible CSV file, and the YNAB API.
package export

import (
	"context"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
)

// Exporter consumes one bank's fetched data read-only.
type Exporter interface {
	Export(ctx context.Context, b bank.Bank) error
}
