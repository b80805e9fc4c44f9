package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hotelhub/reservation/pkg/response"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// ContextKeyIdempotencyKey is the context key for idempotency key
	ContextKeyIdempotencyKey = "idempotency_key"
	// Redis key prefix for idempotency records
	IdempotencyKeyPrefix = "idempotency:"
)

// IdempotencyStatus represents the status of an idempotency record
type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the state of an idempotent request
type IdempotencyRecord struct {
	Key          string            `json:"key"`
	Status       IdempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code"`
	ResponseBody string            `json:"response_body"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// RedisClient is the subset of Redis operations the middleware needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	Redis RedisClient
	// TTL for COMPLETED records
	TTL time.Duration
	// ProcessingTTL bounds how long a crashed request can block its key
	ProcessingTTL time.Duration
}

// DefaultIdempotencyConfig returns default configuration
func DefaultIdempotencyConfig(redis RedisClient) *IdempotencyConfig {
	return &IdempotencyConfig{
		Redis:         redis,
		TTL:           24 * time.Hour,
		ProcessingTTL: 60 * time.Second,
	}
}

// IdempotencyMiddleware returns a middleware that replays the stored response
// for a repeated X-Idempotency-Key instead of re-executing the handler.
// Attach it to mutating routes only.
func IdempotencyMiddleware(config *IdempotencyConfig) gin.HandlerFunc {
	if config.TTL == 0 {
		config.TTL = 24 * time.Hour
	}
	if config.ProcessingTTL == 0 {
		config.ProcessingTTL = 60 * time.Second
	}

	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			// Key is optional; without one the request is processed normally
			c.Next()
			return
		}
		c.Set(ContextKeyIdempotencyKey, idempotencyKey)

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}
		requestHash := generateRequestHash(c, bodyBytes)

		redisKey := IdempotencyKeyPrefix + idempotencyKey
		ctx := c.Request.Context()

		existing, err := getIdempotencyRecord(ctx, config.Redis, redisKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			// fail open on Redis errors
			c.Next()
			return
		}

		if existing != nil {
			replayRecord(c, existing, requestHash)
			return
		}

		record := &IdempotencyRecord{
			Key:         idempotencyKey,
			Status:      StatusProcessing,
			RequestHash: requestHash,
			CreatedAt:   time.Now(),
		}
		if !trySetIdempotencyRecord(ctx, config.Redis, redisKey, record, config.ProcessingTTL) {
			// another request claimed the key first
			if existing, _ = getIdempotencyRecord(ctx, config.Redis, redisKey); existing != nil {
				replayRecord(c, existing, requestHash)
				return
			}
		}

		rw := &idempotencyResponseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = rw

		c.Next()

		now := time.Now()
		record.Status = StatusCompleted
		record.ResponseCode = rw.status
		record.ResponseBody = rw.body.String()
		record.CompletedAt = &now
		saveIdempotencyRecord(ctx, config.Redis, redisKey, record, config.TTL)
	}
}

func replayRecord(c *gin.Context, record *IdempotencyRecord, requestHash string) {
	if record.RequestHash != requestHash {
		response.Error(c, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED",
			"Idempotency key already used with different request", "")
		c.Abort()
		return
	}
	if record.Status == StatusProcessing {
		response.Error(c, http.StatusConflict, "REQUEST_IN_PROGRESS",
			"A request with this idempotency key is already being processed", "")
		c.Abort()
		return
	}
	c.Data(record.ResponseCode, "application/json", []byte(record.ResponseBody))
	c.Abort()
}

// GetIdempotencyKey extracts idempotency key from gin context
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	key, exists := c.Get(ContextKeyIdempotencyKey)
	if !exists {
		return "", false
	}
	k, ok := key.(string)
	return k, ok
}

// idempotencyResponseWriter captures response for caching
type idempotencyResponseWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *idempotencyResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func generateRequestHash(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	h.Write([]byte(c.GetHeader("X-User-ID")))
	if len(body) > 0 {
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func getIdempotencyRecord(ctx context.Context, redis RedisClient, key string) (*IdempotencyRecord, error) {
	result, err := redis.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var record IdempotencyRecord
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func trySetIdempotencyRecord(ctx context.Context, redis RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) bool {
	data, err := json.Marshal(record)
	if err != nil {
		return false
	}
	ok, err := redis.SetNX(ctx, key, string(data), ttl).Result()
	if err != nil {
		return false
	}
	return ok
}

func saveIdempotencyRecord(ctx context.Context, redis RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return redis.Set(ctx, key, string(data), ttl).Err()
}
