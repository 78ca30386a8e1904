package nordea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

const summaryFixture = `
<html><body>
<table class="tgrid1"><tbody>
<tr>
  <td>Main account</td><td>EUR</td><td>1,244.56</td><td>1,234.56</td><td>10.00</td><td>05.06.2018</td>
</tr>
<tr>
  <td>Savings</td><td>EUR</td><td>50.00</td><td>50.00</td><td>0.00</td><td>01.06.2018</td>
</tr>
</tbody></table>
</body></html>`

func TestParseSummaryHTML(t *testing.T) {
	summary, err := parseSummaryHTML(summaryFixture, "Main account")
	require.NoError(t, err)

	assert.Equal(t, "1234.56", summary.Available.String())
	assert.Equal(t, "10", summary.Pending.String())
}

func TestParseSummaryHTMLUnknownAccount(t *testing.T) {
	_, err := parseSummaryHTML(summaryFixture, "Retirement")
	assert.ErrorIs(t, err, bankerr.ErrConfig)
	assert.Contains(t, err.Error(), "Retirement")
}

func TestParseSummaryHTMLAmbiguousAccount(t *testing.T) {
	// Both rows contain "EUR"; a non-unique match must not silently
	// pick the first row.
	_, err := parseSummaryHTML(summaryFixture, "EUR")
	assert.ErrorIs(t, err, bankerr.ErrConfig)
}
