package ports

import "context"

// PushMessage is one notification addressed to a single device token.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// PushGateway delivers push notifications to devices. Implementations
// receive at most one provider chunk per call; batching across chunks is
// the fanout service's job.
type PushGateway interface {
	// Send delivers the batch to the provider. A non-nil error covers
	// the whole batch.
	Send(ctx context.Context, messages []PushMessage) error

	// ValidToken reports whether the token has the provider's expected
	// shape. Malformed tokens are skipped, not sent.
	ValidToken(token string) bool
}
