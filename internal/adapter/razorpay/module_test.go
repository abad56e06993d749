package razorpay

import (
	"io"
	"log/slog"
	"testing"

	"github.com/artisanscorner/storefront/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{
		RazorpayBaseURL:   "https://api.razorpay.com",
		RazorpayKeyID:     "rzp_test_abc",
		RazorpayKeySecret: "shh",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
