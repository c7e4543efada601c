package flash

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/pkg/cache"
)

const redisKeyPrefix = "flash:"

// RedisStore keeps the queue server-side, keyed by a random session id
// stored in a cookie.
type RedisStore struct {
	cache      cache.Cache
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewRedisStore(c cache.Cache, cookieName string, ttl time.Duration, secure bool) *RedisStore {
	return &RedisStore{
		cache:      c,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

func (s *RedisStore) Add(c *gin.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	sid := s.sessionID(c, true)
	key := redisKeyPrefix + sid

	queued, ok := pending(c)
	if !ok {
		if _, err := s.cache.Get(c.Request.Context(), key, &queued); err != nil {
			return fmt.Errorf("load flash messages: %w", err)
		}
	}
	queued = append(queued, msgs...)

	if err := s.cache.Set(c.Request.Context(), key, queued, s.ttl); err != nil {
		return fmt.Errorf("store flash messages: %w", err)
	}
	c.Set(pendingKey, queued)
	return nil
}

func (s *RedisStore) Pop(c *gin.Context) ([]Message, error) {
	sid := s.sessionID(c, false)
	if sid == "" {
		return nil, nil
	}
	key := redisKeyPrefix + sid

	var msgs []Message
	found, err := s.cache.Get(c.Request.Context(), key, &msgs)
	if err != nil {
		return nil, fmt.Errorf("load flash messages: %w", err)
	}
	if !found {
		return nil, nil
	}

	if err := s.cache.Delete(c.Request.Context(), key); err != nil {
		return nil, fmt.Errorf("clear flash messages: %w", err)
	}
	c.Set(pendingKey, []Message{})
	return msgs, nil
}

// sessionID returns the caller's session id, issuing a new one when create
// is set and the cookie is missing or malformed.
func (s *RedisStore) sessionID(c *gin.Context, create bool) string {
	if raw, err := c.Cookie(s.cookieName); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String()
		}
	}
	if v, ok := c.Get(s.cookieName); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	if !create {
		return ""
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, id, 0, "/", "", s.secure, true)
	c.Set(s.cookieName, id)
	return id
}
