package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// MailSender is the outbound email capability. One call carries the full
// recipient list; the transport decides how to fan it out.
type MailSender interface {
	SendMail(ctx context.Context, recipients []string, subject, htmlBody string) error
}

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoMailer sends through the Brevo transactional email API. Credentials
// and sender identity are bound at construction; the HTTP client carries a
// bounded timeout so a stalled provider cannot hang the enclosing request.
type BrevoMailer struct {
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
}

func NewBrevoMailer(apiKey, senderEmail, senderName string, timeout time.Duration) *BrevoMailer {
	return &BrevoMailer{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		client:      &http.Client{Timeout: timeout},
	}
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoRecipient   `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
}

func (m *BrevoMailer) SendMail(ctx context.Context, recipients []string, subject, htmlBody string) error {
	if m.apiKey == "" {
		return fmt.Errorf("brevo api key is not configured")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients given")
	}

	to := make([]brevoRecipient, len(recipients))
	for i, email := range recipients {
		to[i] = brevoRecipient{Email: email}
	}

	payload := brevoPayload{
		Sender:      brevoRecipient{Email: m.senderEmail, Name: m.senderName},
		To:          to,
		Subject:     subject,
		HTMLContent: htmlBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mail payload serialization error: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail request build error: %v", err)
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail send error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider rejected send: status %d", resp.StatusCode)
	}
	return nil
}

// SentMail is one recorded MockMailSender call.
type SentMail struct {
	Recipients []string
	Subject    string
	HTMLBody   string
}

// MockMailSender records sends for tests and can be told to fail.
type MockMailSender struct {
	mu   sync.Mutex
	Fail bool
	Sent []SentMail
}

func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

func (m *MockMailSender) SendMail(ctx context.Context, recipients []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail {
		return fmt.Errorf("mail provider unavailable")
	}
	m.Sent = append(m.Sent, SentMail{
		Recipients: append([]string(nil), recipients...),
		Subject:    subject,
		HTMLBody:   htmlBody,
	})
	return nil
}

func (m *MockMailSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
