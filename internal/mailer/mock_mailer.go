package mailer

import "sync"

// SentMessage is one delivery captured by the mock: who the message went
// to, which template rendered it, and the data the template was fed.
type SentMessage struct {
	To       string
	Template string
	Data     any
}

// MockMailer satisfies Mailer without dialing an SMTP host. Confirmations
// are sent from background goroutines, so the record is guarded.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMessage
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentMessage{
		To:       recipient,
		Template: templateFile,
		Data:     data,
	})

	return nil
}

// Sent returns a snapshot of every delivery recorded so far.
func (m *MockMailer) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)

	return out
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
