package voice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/voice"
)

func TestClientCreateCall(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/call", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "call-789"})
	}))
	defer srv.Close()

	client := voice.NewClient(srv.URL, "secret-key")
	callID, err := client.CreateCall(context.Background(), "assistant-1", "+17045551234", "Jordan Lee", map[string]string{"lead_source": "web"})
	require.NoError(t, err)
	require.Equal(t, "call-789", callID)
	require.Equal(t, "Bearer secret-key", gotAuth)
	require.Equal(t, "assistant-1", gotBody["assistantId"])

	customer, ok := gotBody["customer"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "+17045551234", customer["number"])
	require.Equal(t, "Jordan Lee", customer["name"])

	overrides, ok := gotBody["assistantOverrides"].(map[string]any)
	require.True(t, ok)
	values, ok := overrides["variableValues"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "web", values["lead_source"])
}

func TestClientCreateCallProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"customer.number must be E.164"}`))
	}))
	defer srv.Close()

	client := voice.NewClient(srv.URL, "secret-key")
	_, err := client.CreateCall(context.Background(), "assistant-1", "bogus", "", nil)
	require.Error(t, err)
	require.True(t, domain.IsProviderError(err))
	require.Contains(t, err.Error(), "customer.number must be E.164")
}
