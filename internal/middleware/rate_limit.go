package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AttemptCounter compte les échecs par clé sur une fenêtre glissante
type AttemptCounter interface {
	Attempts(ctx context.Context, key string) (int, error)
	Fail(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}

// RedisAttempts partage les compteurs entre instances du serveur
type RedisAttempts struct {
	client *redis.Client
}

func NewRedisAttempts(client *redis.Client) *RedisAttempts {
	return &RedisAttempts{client: client}
}

func (r *RedisAttempts) Attempts(ctx context.Context, key string) (int, error) {
	n, err := r.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (r *RedisAttempts) Fail(ctx context.Context, key string, window time.Duration) (int, error) {
	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (r *RedisAttempts) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// MemoryAttempts sert quand le stockage n'est pas Redis
type MemoryAttempts struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryAttempt
}

type memoryAttempt struct {
	count   int
	expires time.Time
}

func NewMemoryAttempts() *MemoryAttempts {
	return &MemoryAttempts{now: time.Now, entries: make(map[string]memoryAttempt)}
}

func (m *MemoryAttempts) Attempts(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok || !m.now().Before(entry.expires) {
		delete(m.entries, key)
		return 0, nil
	}
	return entry.count, nil
}

func (m *MemoryAttempts) Fail(_ context.Context, key string, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	entry := m.entries[key]
	if !now.Before(entry.expires) {
		entry.count = 0
	}
	entry.count++
	entry.expires = now.Add(window)
	m.entries[key] = entry
	return entry.count, nil
}

func (m *MemoryAttempts) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// LoginRateLimit bloque un email après maxAttempts échecs, pendant window
func LoginRateLimit(counter AttemptCounter, maxAttempts int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "login_attempts:" + strings.ToLower(strings.TrimSpace(input.Email))

		attempts, err := counter.Attempts(ctx, key)
		if err == nil && attempts >= maxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Demasiados intentos fallidos. Intenta de nuevo en %d minutos", int(window.Minutes())),
				"retry_after": int(window.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			// Login échoué : incrémenter les tentatives
			_, _ = counter.Fail(ctx, key, window)
		case http.StatusOK:
			_ = counter.Reset(ctx, key)
		}
	}
}
