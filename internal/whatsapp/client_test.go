package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isufellowship/attendance-bot/internal/model"
)

type capturedRequest struct {
	Path    string
	Auth    string
	Payload map[string]any
}

func newTestClient(t *testing.T, status int) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.Auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured.Payload)
		w.WriteHeader(status)
		w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
	}))
	t.Cleanup(ts.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := NewClient(Config{
		BaseURL:       ts.URL,
		AccessToken:   "test-token",
		PhoneNumberID: "12345",
	}, logger)

	return client, captured
}

func TestSendText(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK)

	err := client.SendText(context.Background(), "+1555", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/12345/messages", captured.Path)
	assert.Equal(t, "Bearer test-token", captured.Auth)
	assert.Equal(t, "whatsapp", captured.Payload["messaging_product"])
	assert.Equal(t, "+1555", captured.Payload["to"])
	assert.Equal(t, "text", captured.Payload["type"])

	text, ok := captured.Payload["text"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", text["body"])
}

func TestSendButtons(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK)

	options := []model.ButtonOption{
		{ID: "sat", Label: "Saturday"},
		{ID: "mon", Label: "Monday"},
	}
	err := client.SendButtons(context.Background(), "+1555", "Choose a day:", options)
	require.NoError(t, err)

	assert.Equal(t, "interactive", captured.Payload["type"])

	interactive, ok := captured.Payload["interactive"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "button", interactive["type"])

	action, ok := interactive["action"].(map[string]any)
	require.True(t, ok)
	buttons, ok := action["buttons"].([]any)
	require.True(t, ok)
	require.Len(t, buttons, 2)

	first, ok := buttons[0].(map[string]any)
	require.True(t, ok)
	reply, ok := first["reply"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sat", reply["id"])
	assert.Equal(t, "Saturday", reply["title"])
}

func TestSendText_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, http.StatusUnauthorized)

	err := client.SendText(context.Background(), "+1555", "hello")
	require.Error(t, err)
}
