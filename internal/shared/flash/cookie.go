package flash

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/pkg/jwt"
)

// CookieStore keeps the queue client-side in a signed, HttpOnly cookie.
// Tampered or expired cookies are dropped silently.
type CookieStore struct {
	signer *jwt.Manager
	name   string
	ttl    time.Duration
	secure bool
}

func NewCookieStore(signer *jwt.Manager, name string, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{
		signer: signer,
		name:   name,
		ttl:    ttl,
		secure: secure,
	}
}

func (s *CookieStore) Add(c *gin.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	queued, ok := pending(c)
	if !ok {
		queued = s.read(c)
	}
	queued = append(queued, msgs...)

	payload, err := json.Marshal(queued)
	if err != nil {
		return fmt.Errorf("encode flash messages: %w", err)
	}
	token, err := s.signer.GenerateFlashToken(payload, s.ttl)
	if err != nil {
		return fmt.Errorf("sign flash messages: %w", err)
	}

	s.write(c, token, int(s.ttl.Seconds()))
	c.Set(pendingKey, queued)
	return nil
}

func (s *CookieStore) Pop(c *gin.Context) ([]Message, error) {
	if _, err := c.Cookie(s.name); err != nil {
		return nil, nil
	}

	msgs := s.read(c)
	s.write(c, "", -1)
	c.Set(pendingKey, []Message{})
	return msgs, nil
}

// write replaces any flash cookie already set on this response, so the
// response carries exactly one.
func (s *CookieStore) write(c *gin.Context, value string, maxAge int) {
	header := c.Writer.Header()
	prefix := s.name + "="
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, value, maxAge, "/", "", s.secure, true)
}

func (s *CookieStore) read(c *gin.Context) []Message {
	token, err := c.Cookie(s.name)
	if err != nil || token == "" {
		return nil
	}

	payload, err := s.signer.ValidateFlashToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("discarding invalid flash cookie")
		return nil
	}

	var msgs []Message
	if err := json.Unmarshal(payload, &msgs); err != nil {
		log.Debug().Err(err).Msg("discarding undecodable flash cookie")
		return nil
	}
	return msgs
}
