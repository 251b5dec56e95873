package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-be-svc/internal/config"
	"pg-be-svc/pkg/logger"
)

func TestSendPostsTemplatedMessage(t *testing.T) {
	var received mailRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	svc := NewNotificationService(config.NotifyConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		Sender:         "no-reply@pg-hostel.example.com",
		TimeoutSeconds: 5,
	}, logger.NewLogger("error", "text"))

	err := svc.Send("resident@example.com", TemplateWelcome, map[string]string{
		"pg_id":    "RESIDENT",
		"password": "PG@1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "resident@example.com", received.To)
	assert.Equal(t, "no-reply@pg-hostel.example.com", received.From)
	assert.Equal(t, string(TemplateWelcome), received.Template)
	assert.Equal(t, "RESIDENT", received.Data["pg_id"])
	assert.NotEmpty(t, received.RequestID)
}

func TestSendReportsGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewNotificationService(config.NotifyConfig{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	}, logger.NewLogger("error", "text"))

	err := svc.Send("resident@example.com", TemplateRejection, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendUnreachableGateway(t *testing.T) {
	svc := NewNotificationService(config.NotifyConfig{
		BaseURL:        "http://127.0.0.1:1",
		TimeoutSeconds: 1,
	}, logger.NewLogger("error", "text"))

	err := svc.Send("resident@example.com", TemplateReminderOverdue, nil)
	require.Error(t, err)
}
