package mailer

import "sync"

// Message is a captured outbound mail.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// MemoryClient records messages instead of delivering them. Used in tests
// and when no SMTP relay is configured.
type MemoryClient struct {
	mu       sync.Mutex
	Messages []Message
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

func (c *MemoryClient) Send(recipient, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = append(c.Messages, Message{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

// Last returns the most recently sent message, or nil.
func (c *MemoryClient) Last() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}
