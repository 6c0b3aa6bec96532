package smsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"reachiq/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayFor(t *testing.T, ts *httptest.Server) *models.SmsGatewayConfig {
	t.Helper()
	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return &models.SmsGatewayConfig{IP: u.Hostname(), Port: port}
}

func TestStatusOnline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "online"})
	}))
	defer ts.Close()

	client := NewHTTPClient()
	err := client.Status(context.Background(), gatewayFor(t, ts))
	assert.NoError(t, err)
}

func TestStatusNotOnline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "busy"})
	}))
	defer ts.Close()

	client := NewHTTPClient()
	err := client.Status(context.Background(), gatewayFor(t, ts))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "busy")
}

func TestStatusUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	gw := gatewayFor(t, ts)
	ts.Close()

	client := NewHTTPClient()
	err := client.Status(context.Background(), gw)
	assert.Error(t, err)
}

func TestStatusNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewHTTPClient()
	err := client.Status(context.Background(), gatewayFor(t, ts))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSendPostsPhoneAndMessage(t *testing.T) {
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-sms", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer ts.Close()

	client := NewHTTPClient()
	err := client.Send(context.Background(), gatewayFor(t, ts), "+911234567890", "hello")
	require.NoError(t, err)
	assert.Equal(t, "+911234567890", got["phone"])
	assert.Equal(t, "hello", got["message"])
}

func TestSendGatewayError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewHTTPClient()
	err := client.Send(context.Background(), gatewayFor(t, ts), "+911234567890", "hello")
	assert.Error(t, err)
}
