// Package flash carries one-time status messages from a redirecting request
// to the next rendered page.
package flash

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Category string

const (
	CategorySuccess Category = "success"
	CategoryError   Category = "error"
	CategoryInfo    Category = "info"
)

type Message struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

func Success(text string) Message { return Message{Category: CategorySuccess, Text: text} }
func Error(text string) Message   { return Message{Category: CategoryError, Text: text} }
func Info(text string) Message    { return Message{Category: CategoryInfo, Text: text} }

// Store persists messages between requests of the same client.
type Store interface {
	// Add queues msgs for the next Pop, keeping messages queued earlier.
	Add(c *gin.Context, msgs ...Message) error

	// Pop returns every queued message and clears the queue.
	Pop(c *gin.Context) ([]Message, error)
}

// pendingKey holds messages added during the current request, so several
// Add calls before the response is written accumulate.
const pendingKey = "flash.pending"

func pending(c *gin.Context) ([]Message, bool) {
	v, ok := c.Get(pendingKey)
	if !ok {
		return nil, false
	}
	msgs, ok := v.([]Message)
	return msgs, ok
}

// Consume pops the queue; a failing store is logged and yields no messages.
func Consume(c *gin.Context, s Store) []Message {
	msgs, err := s.Pop(c)
	if err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("flash pop failed")
		return nil
	}
	return msgs
}

// Queue adds msgs; a failing store is logged and the messages are lost.
func Queue(c *gin.Context, s Store, msgs ...Message) {
	if err := s.Add(c, msgs...); err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("flash add failed")
	}
}
