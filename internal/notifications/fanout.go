package notifications

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/background"

	"golang.org/x/sync/errgroup"
)

// chunkSize is the provider's maximum batch size per request.
const chunkSize = 100

// Fanout delivers push notifications best-effort: sends never block the
// caller, failures are logged and dropped, and there is no retry. A lost
// notification costs a courier a hint, not an order.
type Fanout struct {
	gateway ports.PushGateway
	runner  background.Runner
	logger  *slog.Logger
}

// NewFanout creates a fanout service over the given gateway. The runner
// decides where sends execute; production uses a goroutine runner, tests
// a synchronous one.
func NewFanout(gateway ports.PushGateway, runner background.Runner, logger *slog.Logger) *Fanout {
	return &Fanout{
		gateway: gateway,
		runner:  runner,
		logger:  logger,
	}
}

// Notify sends the message to every valid token, chunked to the provider
// limit. Malformed tokens are skipped per call; they stay registered
// because the same device may later re-register a valid token.
func (f *Fanout) Notify(tokens []string, title, body string, data map[string]string) {
	valid := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if f.gateway.ValidToken(token) {
			valid = append(valid, token)
		}
	}
	if len(valid) == 0 {
		return
	}

	messages := make([]ports.PushMessage, 0, len(valid))
	for _, token := range valid {
		messages = append(messages, ports.PushMessage{
			Token: token,
			Title: title,
			Body:  body,
			Data:  data,
		})
	}

	f.runner.Go(func() {
		f.deliver(messages)
	})
}

func (f *Fanout) deliver(messages []ports.PushMessage) {
	g, ctx := errgroup.WithContext(context.Background())

	for start := 0; start < len(messages); start += chunkSize {
		end := min(start+chunkSize, len(messages))
		chunk := messages[start:end]

		g.Go(func() error {
			if err := f.gateway.Send(ctx, chunk); err != nil {
				f.logger.Error("push delivery failed",
					"recipients", len(chunk),
					"error", err)
			}
			// Chunks are independent; one failed batch must not cancel
			// the others.
			return nil
		})
	}

	_ = g.Wait()
}
