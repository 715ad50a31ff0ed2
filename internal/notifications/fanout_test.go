package notifications_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"dispatch/internal/core/ports"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/background"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingGateway captures every batch handed to Send.
type recordingGateway struct {
	mu      sync.Mutex
	batches [][]ports.PushMessage
	err     error
}

func (g *recordingGateway) Send(_ context.Context, messages []ports.PushMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.batches = append(g.batches, messages)
	return g.err
}

func (g *recordingGateway) ValidToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[")
}

func newTestFanout(gateway ports.PushGateway) *notifications.Fanout {
	return notifications.NewFanout(
		gateway,
		background.NewSyncRunner(),
		slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	)
}

func TestFanout_Notify_SkipsMalformedTokens(t *testing.T) {
	gateway := &recordingGateway{}
	fanout := newTestFanout(gateway)

	fanout.Notify([]string{
		"ExponentPushToken[valid]",
		"not-a-token",
		"",
	}, "Yeni Sipariş", "TY-4821", nil)

	require.Len(t, gateway.batches, 1)
	require.Len(t, gateway.batches[0], 1)
	assert.Equal(t, "ExponentPushToken[valid]", gateway.batches[0][0].Token)
	assert.Equal(t, "Yeni Sipariş", gateway.batches[0][0].Title)
}

func TestFanout_Notify_ChunksAtProviderLimit(t *testing.T) {
	gateway := &recordingGateway{}
	fanout := newTestFanout(gateway)

	tokens := make([]string, 0, 250)
	for i := range 250 {
		tokens = append(tokens, fmt.Sprintf("ExponentPushToken[%03d]", i))
	}

	fanout.Notify(tokens, "Duyuru", "Mesaj", nil)

	require.Len(t, gateway.batches, 3)

	total := 0
	for _, batch := range gateway.batches {
		assert.LessOrEqual(t, len(batch), 100)
		total += len(batch)
	}
	assert.Equal(t, 250, total)
}

func TestFanout_Notify_NoValidTokens_NeverCallsGateway(t *testing.T) {
	gateway := &recordingGateway{}
	fanout := newTestFanout(gateway)

	fanout.Notify([]string{"junk", ""}, "Başlık", "Mesaj", nil)

	assert.Empty(t, gateway.batches)
}

func TestFanout_Notify_GatewayFailure_IsSwallowed(t *testing.T) {
	gateway := &recordingGateway{err: fmt.Errorf("provider unavailable")}
	fanout := newTestFanout(gateway)

	// Must not panic or propagate; delivery is best-effort.
	fanout.Notify([]string{"ExponentPushToken[x]"}, "Başlık", "Mesaj", nil)

	require.Len(t, gateway.batches, 1)
}
