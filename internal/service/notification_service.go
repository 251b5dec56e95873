package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pg-be-svc/internal/config"
	"pg-be-svc/pkg/logger"
)

// TemplateKind identifies a notification template
type TemplateKind string

const (
	TemplateWelcome         TemplateKind = "welcome"
	TemplateRejection       TemplateKind = "rejection"
	TemplateReminderOverdue TemplateKind = "reminder_overdue"
)

// NotificationService is the mail gateway contract. Send returns an error
// on dispatch failure; callers treat that as informational and never fail
// the triggering operation because of it.
type NotificationService interface {
	Send(recipientEmail string, kind TemplateKind, data map[string]string) error
}

// mailRequest is the JSON payload posted to the mail gateway
type mailRequest struct {
	RequestID string            `json:"request_id"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data,omitempty"`
}

// notificationService implements NotificationService against an HTTP mail API
type notificationService struct {
	config config.NotifyConfig
	client *http.Client
	logger *logger.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(cfg config.NotifyConfig, logger *logger.Logger) NotificationService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &notificationService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send posts a templated message to the mail gateway with a bounded timeout
func (s *notificationService) Send(recipientEmail string, kind TemplateKind, data map[string]string) error {
	payload := mailRequest{
		RequestID: uuid.New().String(),
		From:      s.config.Sender,
		To:        recipientEmail,
		Template:  string(kind),
		Data:      data,
	}

	bodyJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	url := fmt.Sprintf("%s/messages", s.config.BaseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Request-Id", payload.RequestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.WithFields(map[string]interface{}{
			"status":     resp.StatusCode,
			"request_id": payload.RequestID,
			"template":   kind,
		}).Error("Mail gateway returned non-success status")
		return fmt.Errorf("mail gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": payload.RequestID,
		"template":   kind,
	}).Info("Notification dispatched successfully")

	return nil
}
