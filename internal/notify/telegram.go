package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rentnest/server/internal/queue"
)

const defaultAPIBase = "https://api.telegram.org"

// Service pushes application activity to a Telegram chat. Every failure is
// logged and swallowed: notification delivery never fails a user action.
type Service struct {
	logger   *logrus.Logger
	client   *http.Client
	apiBase  string
	botToken string
	chatID   string
}

func NewService(botToken, chatID string, logger *logrus.Logger) *Service {
	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
	}
}

// SetAPIBase overrides the Telegram endpoint. Used by tests.
func (s *Service) SetAPIBase(base string) {
	s.apiBase = base
}

// Enabled reports whether a bot token and chat id are configured.
func (s *Service) Enabled() bool {
	return s.botToken != "" && s.chatID != ""
}

// HandleEvent is the queue subscriber entry point.
func (s *Service) HandleEvent(event queue.Event) error {
	if !s.Enabled() {
		return nil
	}
	switch event.Kind {
	case queue.EventApplicationCreated:
		return s.notifyNewApplication(event)
	case queue.EventApplicationReviewed:
		return s.notifyStatusChange(event)
	default:
		return nil
	}
}

func (s *Service) notifyNewApplication(event queue.Event) error {
	app := event.Application
	message := fmt.Sprintf(
		"🏠 <b>New rental application</b>\n\n"+
			"Property: %s\n"+
			"Move-in date: %s\n"+
			"Monthly income: €%d",
		html(app.ListingTitle),
		app.MoveInDate.Format("2006-01-02"),
		app.MonthlyIncome,
	)
	return s.SendMessage(message)
}

func (s *Service) notifyStatusChange(event queue.Event) error {
	app := event.Application
	message := fmt.Sprintf(
		"📋 <b>Application %s</b>\n\nProperty: %s",
		html(app.Status),
		html(app.ListingTitle),
	)
	return s.SendMessage(message)
}

// SendMessage sends an HTML-formatted message to the configured chat.
func (s *Service) SendMessage(message string) error {
	if !s.Enabled() {
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	payload := map[string]interface{}{
		"chat_id":    s.chatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		s.logger.WithError(err).Error("Failed to send Telegram message")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(respBody))
		s.logger.WithError(err).Error("Telegram rejected message")
		return err
	}

	return nil
}

// htmlEscaper covers the characters Telegram's HTML parse mode cares about.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func html(s string) string {
	return htmlEscaper.Replace(s)
}
