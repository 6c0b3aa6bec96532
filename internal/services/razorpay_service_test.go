package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayCreateOrderConvertsRupeesToPaise(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_123","amount":290000,"currency":"INR","status":"created"}`))
	}))
	defer ts.Close()

	client := &razorpayClient{
		keyID:     "rzp_test_key",
		keySecret: "test-secret",
		baseURL:   ts.URL,
		http:      &http.Client{Timeout: 5 * time.Second},
	}

	order, err := client.CreateOrder(context.Background(), 2900, "INR", "rcpt_1")
	require.NoError(t, err)

	// Catalog prices are rupees; the gateway is billed in paise.
	assert.Equal(t, float64(290000), got["amount"])
	assert.Equal(t, "INR", got["currency"])
	assert.Equal(t, "order_123", order.ID)
}

func TestRazorpayCreateOrderGatewayError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer ts.Close()

	client := &razorpayClient{
		keyID:     "rzp_test_key",
		keySecret: "wrong",
		baseURL:   ts.URL,
		http:      &http.Client{Timeout: 5 * time.Second},
	}

	_, err := client.CreateOrder(context.Background(), 2900, "INR", "rcpt_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
