package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
)

// GatewayOrder is the order object created on the payment provider's side,
// distinct from the storefront's own Order entity.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Payment describes a payment attempt recorded against a gateway order.
type Payment struct {
	ID             string
	GatewayOrderID string
	Status         string
	Email          string
}

// PaymentStatusCaptured is the gateway status meaning money actually moved.
const PaymentStatusCaptured = "captured"

// Client exposes the gateway operations the storefront consumes.
type Client interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
	OrderPayments(ctx context.Context, gatewayOrderID string) ([]Payment, error)
	KeyID() string
}

// HTTPClient implements Client via the Razorpay REST API.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentsResponse struct {
	Count int `json:"count"`
	Items []struct {
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
		Email   string `json:"email"`
	} `json:"items"`
}

// NewHTTPClient creates a gateway client with default timeout. Empty
// credentials are allowed: calls then fail with ErrNotConfigured so the rest
// of the storefront keeps working without a key pair.
func NewHTTPClient(baseURL, keyID, keySecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// KeyID returns the publishable key identifier the client SDK needs.
func (c *HTTPClient) KeyID() string {
	return c.keyID
}

// CreateOrder registers an order on the gateway for the given amount of
// minor currency units. The gateway is the system of record for its own id;
// nothing is persisted here.
func (c *HTTPClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if c.keyID == "" || c.keySecret == "" {
		return nil, domainErrors.ErrNotConfigured
	}

	payload, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	var data orderResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orders", payload, &data); err != nil {
		return nil, err
	}
	return &GatewayOrder{ID: data.ID, Amount: data.Amount, Currency: data.Currency}, nil
}

// OrderPayments lists payment attempts recorded against a gateway order.
// Used by the reconciler to detect captures whose client callback never fired.
func (c *HTTPClient) OrderPayments(ctx context.Context, gatewayOrderID string) ([]Payment, error) {
	if gatewayOrderID == "" {
		return nil, domainErrors.ErrNotFound
	}
	if c.keyID == "" || c.keySecret == "" {
		return nil, domainErrors.ErrNotConfigured
	}

	var data paymentsResponse
	endpoint := path.Join("/v1/orders", gatewayOrderID, "payments")
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &data); err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, len(data.Items))
	for _, item := range data.Items {
		payments = append(payments, Payment{
			ID:             item.ID,
			GatewayOrderID: item.OrderID,
			Status:         item.Status,
			Email:          item.Email,
		})
	}
	return payments, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed", slog.String("endpoint", endpoint), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s", domainErrors.ErrGatewayUnavailable, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway rejected request",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		// Gateway internals never reach the end client, only the category.
		return fmt.Errorf("%w: status %d", domainErrors.ErrGatewayUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response", domainErrors.ErrGatewayUnavailable)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response", domainErrors.ErrGatewayUnavailable)
	}
	return nil
}
