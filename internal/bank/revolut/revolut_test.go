package revolut

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

func testConfig() *config.Config {
	return config.New(map[string]any{
		"bank": map[string]any{
			"revolut": map[string]any{
				"clientId":     "client-1",
				"clientSecret": "s3cret",
				"deviceId":     "dev-1",
			},
		},
	})
}

func TestFetchData(t *testing.T) {
	now := time.Date(2018, 6, 10, 12, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("/user/current/transactions", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-1", user)
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, "dev-1", r.Header.Get("X-Device-Id"))
		assert.Equal(t, "1", r.Header.Get("X-Api-Version"))

		from, err := strconv.ParseInt(r.URL.Query().Get("from"), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, -1, 0).UnixMilli(), from, "one month lookback")

		json.NewEncoder(w).Encode([]apiTransaction{
			{
				Type: "CARD_PAYMENT", State: "COMPLETED", Currency: "EUR",
				StartedDate: now.AddDate(0, 0, -1).UnixMilli(),
				Amount:      -1299,
				Description: "iTunes",
				Merchant:    &apiMerchant{Name: "Apple", City: "Tallinn", Country: "EST"},
			},
		})
	})
	mux.HandleFunc("/user/current/wallet", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiWallet{
			Pockets: []apiPocket{
				{Currency: "EUR", State: "ACTIVE", Balance: 123456, BlockedAmount: 1000},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := New(testConfig())
	b.baseURL = srv.URL
	b.now = func() time.Time { return now }

	rec := &progress.Recorder{}
	require.NoError(t, b.FetchData(context.Background(), rec))

	require.Len(t, b.Transactions(), 1)
	assert.Equal(t, "-12.99", b.Transactions()[0].Amount.String())
	assert.Equal(t, "1234.56", b.Summary().Available.String())
	assert.Equal(t, "10", b.Summary().Pending.String())
	assert.Equal(t, []string{"Fetching transactions", "Fetching balance"}, rec.Started)
}

func TestFetchDataWalletFailureAbortsRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/current/transactions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]apiTransaction{})
	})
	mux.HandleFunc("/user/current/wallet", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	b := New(testConfig())
	b.baseURL = srv.URL

	err := b.FetchData(context.Background(), nil)
	require.Error(t, err)
	assert.Empty(t, b.Transactions())
}
