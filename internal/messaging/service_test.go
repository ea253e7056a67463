package messaging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadline/leadline-portal/internal/config"
	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/messaging"
)

func smsConfig() config.Config {
	return config.Config{
		DefaultCountryCode: "1",
		SMSAPIKey:          "key",
		SMSFromNumber:      "9805551111",
	}
}

func TestSendSMS(t *testing.T) {
	sender := &fakeSender{messageID: "msg-1"}
	conversations := &memoryConversationRepo{}
	svc := messaging.NewService(smsConfig(), sender, conversations)

	leadID := int64(42)
	result, err := svc.SendSMS(context.Background(), messaging.SendRequest{
		To:     "7045551234",
		Text:   "Your appointment is confirmed.",
		LeadID: &leadID,
	})
	require.NoError(t, err)
	require.Equal(t, "msg-1", result.MessageID)
	require.Equal(t, "+17045551234", sender.lastTo)
	require.Equal(t, "+19805551111", sender.lastFrom)

	require.Len(t, conversations.inserted, 1)
	row := conversations.inserted[0]
	require.Equal(t, domain.RoleAssistant, row.Role)
	require.Equal(t, "+17045551234", row.PhoneNumber)
	require.NotNil(t, row.LeadID)
	require.False(t, row.IsUnknownLead)
}

func TestSendSMSUnknownLead(t *testing.T) {
	sender := &fakeSender{messageID: "msg-2"}
	conversations := &memoryConversationRepo{}
	svc := messaging.NewService(smsConfig(), sender, conversations)

	_, err := svc.SendSMS(context.Background(), messaging.SendRequest{To: "7045551234", Text: "hi"})
	require.NoError(t, err)
	require.Len(t, conversations.inserted, 1)
	require.True(t, conversations.inserted[0].IsUnknownLead)
	require.Nil(t, conversations.inserted[0].LeadID)
}

func TestSendSMSValidation(t *testing.T) {
	sender := &fakeSender{}
	conversations := &memoryConversationRepo{}
	svc := messaging.NewService(smsConfig(), sender, conversations)

	for _, req := range []messaging.SendRequest{
		{Text: "missing to"},
		{To: "7045551234"},
		{},
	} {
		_, err := svc.SendSMS(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	require.Zero(t, sender.calls)
	require.Empty(t, conversations.inserted)
}

func TestSendSMSProviderFailureWritesNoLog(t *testing.T) {
	sender := &fakeSender{err: &domain.ProviderError{Provider: "sms", Message: "invalid destination"}}
	conversations := &memoryConversationRepo{}
	svc := messaging.NewService(smsConfig(), sender, conversations)

	_, err := svc.SendSMS(context.Background(), messaging.SendRequest{To: "7045551234", Text: "hi"})
	require.Error(t, err)
	require.True(t, domain.IsProviderError(err))
	require.Empty(t, conversations.inserted)
}

func TestSendSMSLogFailureStillSucceeds(t *testing.T) {
	sender := &fakeSender{messageID: "msg-3"}
	conversations := &memoryConversationRepo{insertErr: context.DeadlineExceeded}
	svc := messaging.NewService(smsConfig(), sender, conversations)

	result, err := svc.SendSMS(context.Background(), messaging.SendRequest{To: "7045551234", Text: "hi"})
	require.NoError(t, err)
	require.Equal(t, "msg-3", result.MessageID)
}

type fakeSender struct {
	messageID string
	err       error
	calls     int
	lastTo    string
	lastFrom  string
}

func (f *fakeSender) SendMessage(ctx context.Context, to, from, text string) (string, error) {
	f.calls++
	f.lastTo = to
	f.lastFrom = from
	if f.err != nil {
		return "", f.err
	}
	return f.messageID, nil
}

type memoryConversationRepo struct {
	inserted  []domain.ConversationMessage
	insertErr error
}

func (m *memoryConversationRepo) InsertMessage(ctx context.Context, msg domain.ConversationMessage) (domain.ConversationMessage, error) {
	if m.insertErr != nil {
		return domain.ConversationMessage{}, m.insertErr
	}
	m.inserted = append(m.inserted, msg)
	return msg, nil
}
