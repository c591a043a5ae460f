package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRequest() port.PaymentRequest {
	return port.PaymentRequest{
		Amount:      5550,
		Currency:    "USD",
		Reference:   "ref-1",
		Email:       "u@example.com",
		CallbackURL: "http://storefront.local/v1/checkout/callback",
	}
}

func TestInitTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotAuth string
		var gotReq initRequest

		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, initPath, r.URL.Path)
				gotAuth = r.Header.Get("Authorization")
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

				json.NewEncoder(w).Encode(map[string]any{
					"status":  true,
					"message": "Authorization URL created",
					"data": map[string]any{
						"authorization_url": "https://gate.example.com/pay/abc",
						"reference":         "ref-1",
					},
				})
			},
		))
		defer srv.Close()

		g := NewGateway(srv.URL, "sk_test_secret")

		url, err := g.InitTransaction(t.Context(), paymentRequest())
		require.NoError(t, err)
		assert.Equal(t, "https://gate.example.com/pay/abc", url)

		assert.Equal(t, "Bearer sk_test_secret", gotAuth)
		assert.Equal(t, int64(5550), gotReq.Amount)
		assert.Equal(t, "USD", gotReq.Currency)
		assert.Equal(t, "ref-1", gotReq.Reference)
	})

	t.Run("RetriesOn5xx", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) < 3 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				json.NewEncoder(w).Encode(map[string]any{
					"status": true,
					"data": map[string]any{
						"authorization_url": "https://gate.example.com/pay/abc",
					},
				})
			},
		))
		defer srv.Close()

		g := NewGateway(srv.URL, "sk_test_secret")

		url, err := g.InitTransaction(t.Context(), paymentRequest())
		require.NoError(t, err)
		assert.Equal(t, "https://gate.example.com/pay/abc", url)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("NoRetryOnRejection", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]any{
					"status":  false,
					"message": "Invalid amount",
				})
			},
		))
		defer srv.Close()

		g := NewGateway(srv.URL, "sk_test_secret")

		_, err := g.InitTransaction(t.Context(), paymentRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGatewayRejected)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("GatewayDown", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		))
		defer srv.Close()

		g := NewGateway(srv.URL, "sk_test_secret")

		_, err := g.InitTransaction(t.Context(), paymentRequest())
		require.Error(t, err)

		var se *serverError
		assert.ErrorAs(t, err, &se)
	})
}
