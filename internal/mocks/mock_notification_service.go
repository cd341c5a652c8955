package mocks

import (
	"sync"

	"github.com/Vladislav1234512345/topten/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu       sync.Mutex
	SentSMS  []SentMessage
	SentMail []SentMessage
}

// SentMessage records a delivered notification for assertions.
type SentMessage struct {
	To   string
	Body string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.SentSMS = append(m.SentSMS, SentMessage{To: to, Body: message})
	m.mu.Unlock()

	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: success
	return nil
}

// SendEmail sends an email
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	m.SentMail = append(m.SentMail, SentMessage{To: to, Body: body})
	m.mu.Unlock()

	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
