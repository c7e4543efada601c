package flash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"library-catalog/pkg/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// request runs fn inside a gin context carrying cookies and returns the
// cookies set on the response.
func request(t *testing.T, cookies []*http.Cookie, fn func(c *gin.Context)) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}

	fn(c)
	return w.Result().Cookies()
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore(jwt.NewManager("secret"), "flash", time.Minute, false)

	set := request(t, nil, func(c *gin.Context) {
		Queue(c, store, Success("Book successfully deleted!"))
		Queue(c, store, Info("author removed"))
	})
	ck := findCookie(set, "flash")
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)

	var got []Message
	cleared := request(t, []*http.Cookie{ck}, func(c *gin.Context) {
		got = Consume(c, store)
	})
	assert.Equal(t, []Message{Success("Book successfully deleted!"), Info("author removed")}, got)

	clear := findCookie(cleared, "flash")
	require.NotNil(t, clear)
	assert.Negative(t, clear.MaxAge)
}

func TestCookieStore_OneCookiePerResponse(t *testing.T) {
	store := NewCookieStore(jwt.NewManager("secret"), "flash", time.Minute, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.SetCookie("other", "kept", 60, "/", "", false, true)

	Consume(c, store)
	Queue(c, store, Error("one"))
	Queue(c, store, Error("two"))
	Queue(c, store, Info("three"))

	count := 0
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.NotNil(t, findCookie(w.Result().Cookies(), "other"))
}

func TestCookieStore_AppendsToExistingCookie(t *testing.T) {
	store := NewCookieStore(jwt.NewManager("secret"), "flash", time.Minute, false)

	first := findCookie(request(t, nil, func(c *gin.Context) {
		Queue(c, store, Error("one"))
	}), "flash")
	second := findCookie(request(t, []*http.Cookie{first}, func(c *gin.Context) {
		Queue(c, store, Error("two"))
	}), "flash")

	var got []Message
	request(t, []*http.Cookie{second}, func(c *gin.Context) {
		got = Consume(c, store)
	})
	assert.Equal(t, []Message{Error("one"), Error("two")}, got)
}

func TestCookieStore_RejectsForeignAndExpiredTokens(t *testing.T) {
	store := NewCookieStore(jwt.NewManager("secret"), "flash", time.Minute, false)
	payload, err := json.Marshal([]Message{Success("forged")})
	require.NoError(t, err)

	forged, err := jwt.NewManager("other-secret").GenerateFlashToken(payload, time.Minute)
	require.NoError(t, err)
	expired, err := jwt.NewManager("secret").GenerateFlashToken(payload, -time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{"forged": forged, "expired": expired, "garbage": "not-a-token"} {
		t.Run(name, func(t *testing.T) {
			var got []Message
			request(t, []*http.Cookie{{Name: "flash", Value: token}}, func(c *gin.Context) {
				got = Consume(c, store)
			})
			assert.Empty(t, got)
		})
	}
}

func TestCookieStore_PopWithoutCookie(t *testing.T) {
	store := NewCookieStore(jwt.NewManager("secret"), "flash", time.Minute, false)

	set := request(t, nil, func(c *gin.Context) {
		assert.Empty(t, Consume(c, store))
	})
	assert.Nil(t, findCookie(set, "flash"))
}

// memoryCache is an in-process cache.Cache.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func TestRedisStore_RoundTrip(t *testing.T) {
	mem := newMemoryCache()
	store := NewRedisStore(mem, "sid", time.Minute, false)

	set := request(t, nil, func(c *gin.Context) {
		Queue(c, store, Success("Author successfully added!"))
		Queue(c, store, Info("second"))
	})
	sid := findCookie(set, "sid")
	require.NotNil(t, sid)
	assert.Len(t, mem.items, 1)

	var got []Message
	request(t, []*http.Cookie{sid}, func(c *gin.Context) {
		got = Consume(c, store)
	})
	assert.Equal(t, []Message{Success("Author successfully added!"), Info("second")}, got)
	assert.Empty(t, mem.items)

	request(t, []*http.Cookie{sid}, func(c *gin.Context) {
		assert.Empty(t, Consume(c, store))
	})
}

func TestRedisStore_PopWithoutSession(t *testing.T) {
	store := NewRedisStore(newMemoryCache(), "sid", time.Minute, false)

	set := request(t, nil, func(c *gin.Context) {
		assert.Empty(t, Consume(c, store))
	})
	assert.Nil(t, findCookie(set, "sid"))
}
