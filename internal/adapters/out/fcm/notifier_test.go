package fcm_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/adapters/out/fcm"
)

type stubSender struct {
	lastMessage *messaging.MulticastMessage
	response    *messaging.BatchResponse
	err         error
}

func (s *stubSender) SendEachForMulticast(_ context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	s.lastMessage = message
	return s.response, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifier_Send(t *testing.T) {
	t.Run("should multicast to all tokens and report counts", func(t *testing.T) {
		sender := &stubSender{response: &messaging.BatchResponse{
			SuccessCount: 2,
			FailureCount: 1,
			Responses: []*messaging.SendResponse{
				{Success: true},
				{Success: true},
				{Error: errors.New("unregistered token")},
			},
		}}
		notifier := fcm.NewNotifierWithClient(sender, discardLogger())

		report, err := notifier.Send(t.Context(), []string{"t1", "t2", "t3"},
			"New delivery available", "Order DEL-ABCD1234",
			map[string]string{"type": "new_order"})

		require.NoError(t, err)
		assert.Equal(t, 2, report.SuccessCount)
		assert.Equal(t, 1, report.FailureCount)
		require.NotNil(t, sender.lastMessage)
		assert.Equal(t, []string{"t1", "t2", "t3"}, sender.lastMessage.Tokens)
		assert.Equal(t, "New delivery available", sender.lastMessage.Notification.Title)
		assert.Equal(t, "new_order", sender.lastMessage.Data["type"])
	})

	t.Run("should skip the multicast entirely with no tokens", func(t *testing.T) {
		sender := &stubSender{}
		notifier := fcm.NewNotifierWithClient(sender, discardLogger())

		report, err := notifier.Send(t.Context(), nil, "title", "body", nil)

		require.NoError(t, err)
		assert.Zero(t, report.SuccessCount)
		assert.Nil(t, sender.lastMessage)
	})

	t.Run("should surface a transport failure", func(t *testing.T) {
		sender := &stubSender{err: errors.New("fcm unreachable")}
		notifier := fcm.NewNotifierWithClient(sender, discardLogger())

		_, err := notifier.Send(t.Context(), []string{"t1"}, "title", "body", nil)

		require.Error(t, err)
	})
}

func TestNoopNotifier_Send(t *testing.T) {
	notifier := fcm.NewNoopNotifier(discardLogger())

	report, err := notifier.Send(t.Context(), []string{"t1", "t2"}, "title", "body", nil)

	require.NoError(t, err)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Zero(t, report.FailureCount)
}
