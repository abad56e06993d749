package model

// WebhookEventKind enumerates gateway notifications this service understands.
// Anything else maps to EventUnknown so new gateway event types surface in
// logs instead of silently falling through a string switch.
type WebhookEventKind string

const (
	EventPaymentCaptured WebhookEventKind = "payment.captured"
	EventPaymentFailed   WebhookEventKind = "payment.failed"
	EventUnknown         WebhookEventKind = "unknown"
)

// ParseWebhookEventKind maps the raw gateway event name to the closed set.
func ParseWebhookEventKind(raw string) WebhookEventKind {
	switch WebhookEventKind(raw) {
	case EventPaymentCaptured:
		return EventPaymentCaptured
	case EventPaymentFailed:
		return EventPaymentFailed
	default:
		return EventUnknown
	}
}

// WebhookEvent is a verified, decoded gateway notification.
type WebhookEvent struct {
	Kind           WebhookEventKind
	RawKind        string
	PaymentID      string
	GatewayOrderID string
	Status         string
	Email          string
}
