// Package confirmation issues and verifies the single-use email confirmation
// codes of the signup flow. Codes are bcrypt-hashed before they are stored,
// expire after a configured TTL and are consumed on first successful verify.
package confirmation

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"reviewhub/internal/auth"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCodeMismatch = errors.New("confirmation code does not match")
	ErrCodeExpired  = errors.New("confirmation code expired or never issued")
)

const codeLength = 6

// Service generates a confirmation code for a user and later verifies it.
// Verify consumes the code: a second attempt with the same code fails.
type Service interface {
	Generate(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context, userID, code string) error
}

// NewCode produces a numeric code using crypto/rand.
func NewCode() (string, error) {
	digits := make([]byte, codeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// redisService keeps hashed codes in Redis under confirmation:<userID> with
// the configured TTL.
type redisService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisService(client *redis.Client, ttl time.Duration) Service {
	return &redisService{client: client, ttl: ttl}
}

func (s *redisService) key(userID string) string {
	return fmt.Sprintf("confirmation:%s", userID)
}

func (s *redisService) Generate(ctx context.Context, userID string) (string, error) {
	code, err := NewCode()
	if err != nil {
		return "", err
	}
	hashed, err := auth.HashSecret(code)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(userID), hashed, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *redisService) Verify(ctx context.Context, userID, code string) error {
	hashed, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCodeExpired
		}
		return err
	}
	if err := auth.VerifySecret(hashed, code); err != nil {
		return ErrCodeMismatch
	}
	// single use
	return s.client.Del(ctx, s.key(userID)).Err()
}

// memoryService is the in-process fallback used in tests and local dev.
type memoryService struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]memoryEntry
}

type memoryEntry struct {
	hashed    string
	expiresAt time.Time
}

func NewMemoryService(ttl time.Duration) Service {
	return &memoryService{ttl: ttl, codes: make(map[string]memoryEntry)}
}

func (s *memoryService) Generate(_ context.Context, userID string) (string, error) {
	code, err := NewCode()
	if err != nil {
		return "", err
	}
	hashed, err := auth.HashSecret(code)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[userID] = memoryEntry{hashed: hashed, expiresAt: time.Now().Add(s.ttl)}
	return code, nil
}

func (s *memoryService) Verify(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.codes, userID)
		return ErrCodeExpired
	}
	if err := auth.VerifySecret(entry.hashed, code); err != nil {
		return ErrCodeMismatch
	}
	delete(s.codes, userID)
	return nil
}
