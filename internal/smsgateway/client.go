package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reachiq/internal/models"
	"time"
)

const statusTimeout = 10 * time.Second

// Client talks to the Android SMS gateway app running on the user's device.
// The device exposes a tiny HTTP API on the local network.
type Client interface {
	// Status probes GET /status and returns nil only when the device
	// reports {"status":"online"}.
	Status(ctx context.Context, gw *models.SmsGatewayConfig) error
	// Send delivers one message via POST /send-sms.
	Send(ctx context.Context, gw *models.SmsGatewayConfig, phone, message string) error
}

type HTTPClient struct {
	http *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		http: &http.Client{Timeout: statusTimeout},
	}
}

func baseURL(gw *models.SmsGatewayConfig) string {
	return fmt.Sprintf("http://%s:%d", gw.IP, gw.Port)
}

func (c *HTTPClient) Status(ctx context.Context, gw *models.SmsGatewayConfig) error {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL(gw)+"/status", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("invalid gateway response: %w", err)
	}
	if body.Status != "online" {
		return fmt.Errorf("gateway reported status %q", body.Status)
	}

	return nil
}

func (c *HTTPClient) Send(ctx context.Context, gw *models.SmsGatewayConfig, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL(gw)+"/send-sms", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	return nil
}
