package messaging_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/messaging"
)

func TestClientSendMessage(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages", r.URL.Path)
		require.Equal(t, "Bearer sms-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "msg-55"})
	}))
	defer srv.Close()

	client := messaging.NewClient(srv.URL, "sms-key")
	id, err := client.SendMessage(context.Background(), "+17045551234", "+19805551111", "hello")
	require.NoError(t, err)
	require.Equal(t, "msg-55", id)
	require.Equal(t, "+17045551234", gotBody["to"])
	require.Equal(t, "+19805551111", gotBody["from"])
	require.Equal(t, "hello", gotBody["text"])
}

func TestClientSendMessageProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("blocked destination"))
	}))
	defer srv.Close()

	client := messaging.NewClient(srv.URL, "sms-key")
	_, err := client.SendMessage(context.Background(), "+17045551234", "", "hello")
	require.Error(t, err)
	require.True(t, domain.IsProviderError(err))
	require.Contains(t, err.Error(), "blocked destination")
}
