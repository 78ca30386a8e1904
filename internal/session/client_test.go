package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

func TestGetKeepsCookiesAcrossRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc123"})
			w.Write([]byte("ok"))
		case "/private":
			cookie, err := r.Cookie("sid")
			if err != nil || cookie.Value != "abc123" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Write([]byte("secret page"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Get(ctx, "/login")
	require.NoError(t, err)

	body, err := c.Get(ctx, "/private")
	require.NoError(t, err)
	assert.Equal(t, "secret page", body)
}

func TestDefaultHeadersAndBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dev-1", r.Header.Get("X-Device-Id"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "s3cret", pass)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL,
		WithHeader("X-Device-Id", "dev-1"),
		WithBasicAuth("client", "s3cret"))

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/wallet", &out))
	assert.True(t, out.OK)
}

func TestPostFormEncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "12345", r.PostForm.Get("userId"))
		w.Write([]byte("step1 done"))
	}))
	defer srv.Close()

	body, err := New(srv.URL).PostForm(context.Background(), "/login1.do",
		url.Values{"userId": {"12345"}})
	require.NoError(t, err)
	assert.Equal(t, "step1 done", body)
}

func TestNon2xxIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "/acnt.do")
	assert.ErrorIs(t, err, bankerr.ErrNetwork)
	assert.Contains(t, err.Error(), "status 502")
}

func TestConnectionFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so requests fail

	_, err := New(srv.URL).Get(context.Background(), "/")
	assert.ErrorIs(t, err, bankerr.ErrNetwork)
}

func TestMalformedJSONIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	var out map[string]any
	err := New(srv.URL).GetJSON(context.Background(), "/wallet", &out)
	assert.ErrorIs(t, err, bankerr.ErrParse)
}

func TestResolveAbsoluteURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("abs"))
	}))
	defer srv.Close()

	// Discovered URLs may be absolute; they bypass the base URL.
	body, err := New("http://unused.invalid").Get(context.Background(), srv.URL+"/welcome")
	require.NoError(t, err)
	assert.Equal(t, "abs", body)
}
