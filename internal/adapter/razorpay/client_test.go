package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestCreateOrder(t *testing.T) {
	var captured struct {
		path   string
		auth   string
		amount int64
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		user, pass, _ := r.BasicAuth()
		captured.auth = user + ":" + pass

		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		captured.amount = body.Amount

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_test_1","amount":` +
			`129700,"currency":"INR"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "key-id", "key-secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := client.CreateOrder(context.Background(), 129700, "INR", "receipt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_test_1" {
		t.Errorf("expected order_test_1, got %q", order.ID)
	}
	if order.Amount != 129700 || order.Currency != "INR" {
		t.Errorf("unexpected order data: %+v", order)
	}
	if captured.path != "/v1/orders" {
		t.Errorf("expected /v1/orders, got %q", captured.path)
	}
	if captured.auth != "key-id:key-secret" {
		t.Errorf("expected basic auth credentials to be sent")
	}
	if captured.amount != 129700 {
		t.Errorf("expected amount 129700 in request, got %d", captured.amount)
	}
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	client, err := NewHTTPClient("https://gateway.invalid", "key-id", "key-secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, amount := range []int64{0, -100} {
		if _, err := client.CreateOrder(context.Background(), amount, "INR", "r"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %d, got %v", amount, err)
		}
	}
}

func TestCreateOrderWithoutCredentials(t *testing.T) {
	client, err := NewHTTPClient("https://gateway.invalid", "", "", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.CreateOrder(context.Background(), 1000, "INR", "r"); !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCreateOrderGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"order amount exceeds limit for key-secret"}}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "key-id", "key-secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.CreateOrder(context.Background(), 1000, "INR", "r")
	if !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	// The returned error carries only the category, never the gateway body.
	if strings.Contains(err.Error(), "exceeds limit") {
		t.Fatalf("gateway response body leaked into the error: %v", err)
	}
}

func TestCreateOrderNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewHTTPClient(server.URL, "key-id", "key-secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.CreateOrder(context.Background(), 1000, "INR", "r"); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestOrderPayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders/order_test_1/payments" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"items":[
			{"id":"pay_1","order_id":"order_test_1","status":"failed","email":"a@b.c"},
			{"id":"pay_2","order_id":"order_test_1","status":"captured","email":"a@b.c"}
		]}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "key-id", "key-secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payments, err := client.OrderPayments(context.Background(), "order_test_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
	if payments[1].ID != "pay_2" || payments[1].Status != PaymentStatusCaptured {
		t.Errorf("unexpected payment data: %+v", payments[1])
	}
}

func TestOrderPaymentsEmptyID(t *testing.T) {
	client, err := NewHTTPClient("https://gateway.invalid", "key-id", "key-secret", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.OrderPayments(context.Background(), ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("not-a-url", "k", "s", testLogger()); err == nil {
		t.Fatalf("expected error for relative URL")
	}
}
