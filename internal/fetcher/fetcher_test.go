package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/product-scraper/internal/fetcher"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and sends browser headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotLang string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotLang = r.Header.Get("Accept-Language")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<span id="productTitle">Echo Dot</span>`))
		}))
		defer server.Close()

		html, err := fetcher.New().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, `<span id="productTitle">Echo Dot</span>`, html)
		assert.Equal(t, fetcher.DefaultUserAgent, gotUA)
		assert.Equal(t, "en-US,en;q=0.9", gotLang)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		html, err := fetcher.New().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})

	t.Run("non-2xx status is a fetch failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := fetcher.New().Fetch(context.Background(), server.URL)
		require.ErrorIs(t, err, fetcher.ErrFetchFailed)
		assert.Equal(t, "fetch failed: 503", err.Error())
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.UserAgent()
		}))
		defer server.Close()

		_, err := fetcher.New(fetcher.WithUserAgent("probe/1.0")).Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "probe/1.0", gotUA)
	})

	t.Run("timeout is a fetch failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		}))
		defer server.Close()

		_, err := fetcher.New(fetcher.WithTimeout(10*time.Millisecond)).Fetch(context.Background(), server.URL)
		require.ErrorIs(t, err, fetcher.ErrFetchFailed)
	})

	t.Run("unreachable host is a fetch failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := fetcher.New().Fetch(context.Background(), url)
		require.ErrorIs(t, err, fetcher.ErrFetchFailed)
	})
}
