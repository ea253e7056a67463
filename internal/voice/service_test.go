package voice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadline/leadline-portal/internal/config"
	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/voice"
)

func voiceConfig() config.Config {
	return config.Config{
		DefaultCountryCode: "1",
		VoiceAPIKey:        "key",
		VoiceAssistantID:   "assistant-1",
	}
}

func TestInitiateOutboundCall(t *testing.T) {
	creator := &fakeCallCreator{callID: "call-123"}
	svc := voice.NewService(voiceConfig(), creator)

	result, err := svc.InitiateOutboundCall(context.Background(), voice.OutboundCallRequest{
		Destination: "7045551234",
		DisplayName: "Jordan Lee",
		Variables:   map[string]string{"lead_source": "web"},
	})
	require.NoError(t, err)
	require.True(t, result.Dispatched)
	require.Equal(t, "call-123", result.CallID)
	require.Equal(t, "+17045551234", creator.lastNumber)
	require.Equal(t, "assistant-1", creator.lastAssistant)
}

func TestInitiateOutboundCallMissingDestination(t *testing.T) {
	creator := &fakeCallCreator{}
	svc := voice.NewService(voiceConfig(), creator)

	_, err := svc.InitiateOutboundCall(context.Background(), voice.OutboundCallRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Zero(t, creator.calls)
}

func TestInitiateOutboundCallNotConfigured(t *testing.T) {
	creator := &fakeCallCreator{}
	cfg := voiceConfig()
	cfg.VoiceAPIKey = ""
	svc := voice.NewService(cfg, creator)

	result, err := svc.InitiateOutboundCall(context.Background(), voice.OutboundCallRequest{Destination: "7045551234"})
	require.NoError(t, err)
	require.False(t, result.Dispatched)
	require.Zero(t, creator.calls)
}

func TestInitiateOutboundCallProviderFailure(t *testing.T) {
	creator := &fakeCallCreator{err: &domain.ProviderError{Provider: "voice", Message: "assistant not found"}}
	svc := voice.NewService(voiceConfig(), creator)

	_, err := svc.InitiateOutboundCall(context.Background(), voice.OutboundCallRequest{Destination: "7045551234"})
	require.Error(t, err)
	require.True(t, domain.IsProviderError(err))
	require.Contains(t, err.Error(), "assistant not found")
}

func TestRoutingResponseMissingDestination(t *testing.T) {
	svc := voice.NewService(voiceConfig(), &fakeCallCreator{})

	doc := string(svc.RoutingResponse("", "+19805551111"))
	require.Contains(t, doc, "<Say>")
	require.NotContains(t, doc, "<Dial")
}

func TestRoutingResponseDialsNormalizedNumber(t *testing.T) {
	svc := voice.NewService(voiceConfig(), &fakeCallCreator{})

	doc := string(svc.RoutingResponse("7045551234", ""))
	require.Contains(t, doc, "<Number>+17045551234</Number>")
	require.Contains(t, doc, `timeout="30"`)
	require.Contains(t, doc, `record="record-from-answer-dual"`)
	// No override and no hint: caller id falls back to the destination.
	require.Contains(t, doc, `callerId="+17045551234"`)
}

func TestRoutingResponseCallerIDPrecedence(t *testing.T) {
	cfg := voiceConfig()
	cfg.VoiceCallerID = "+17005550000"
	svc := voice.NewService(cfg, &fakeCallCreator{})

	doc := string(svc.RoutingResponse("7045551234", "+19805551111"))
	require.Contains(t, doc, `callerId="+17005550000"`)

	cfg.VoiceCallerID = ""
	svc = voice.NewService(cfg, &fakeCallCreator{})
	doc = string(svc.RoutingResponse("7045551234", "+19805551111"))
	require.Contains(t, doc, `callerId="+19805551111"`)
}

func TestRoutingResponseIdempotent(t *testing.T) {
	svc := voice.NewService(voiceConfig(), &fakeCallCreator{})
	first := svc.RoutingResponse("7045551234", "")
	second := svc.RoutingResponse("7045551234", "")
	require.Equal(t, first, second)
}

type fakeCallCreator struct {
	callID        string
	err           error
	calls         int
	lastAssistant string
	lastNumber    string
}

func (f *fakeCallCreator) CreateCall(ctx context.Context, assistantID, number, name string, variables map[string]string) (string, error) {
	f.calls++
	f.lastAssistant = assistantID
	f.lastNumber = number
	if f.err != nil {
		return "", f.err
	}
	return f.callID, nil
}
