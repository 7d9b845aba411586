package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// mockEmailTTL is how long a stored mock email stays readable.
const mockEmailTTL = 5 * time.Minute

// MockEmailKey is where RedisSender stores the latest message of a kind sent to an address.
func MockEmailKey(to, kind string) string {
	return fmt.Sprintf("mockemail:%s:%s", strings.ToLower(to), kind)
}

// StoredEmail is the JSON document RedisSender writes.
type StoredEmail struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Kind    string `json:"kind"`
	SentAt  string `json:"sent_at"`
}

// RedisSender implements the Sender interface by storing emails in Redis,
// where end-to-end tests read them back through the service API.
type RedisSender struct {
	client *redis.Client
	from   string
}

// NewRedisSender creates a new RedisSender
func NewRedisSender(client *redis.Client, from string) Sender {
	return &RedisSender{client: client, from: from}
}

func (s *RedisSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("email %q has no recipients", msg.Subject)
	}
	data, err := json.Marshal(StoredEmail{
		To:      strings.Join(msg.To, ", "),
		From:    s.from,
		Subject: msg.Subject,
		Body:    msg.Body,
		Kind:    msg.Kind,
		SentAt:  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email data: %w", err)
	}

	key := MockEmailKey(msg.To[0], msg.Kind)
	if err := s.client.Set(ctx, key, data, mockEmailTTL).Err(); err != nil {
		return fmt.Errorf("failed to store email in Redis key '%s': %w", key, err)
	}

	log.Printf("Mock email stored in Redis key '%s' (TTL: %v, Subject: %s)", key, mockEmailTTL, msg.Subject)
	return nil
}
