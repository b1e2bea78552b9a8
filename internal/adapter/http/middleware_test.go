package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	l := newClientLimiter(2, time.Minute, clock.Now)

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))
	assert.Equal(t, 2, l.size())

	clock.now = clock.now.Add(30 * time.Second)
	assert.True(t, l.allow("10.0.0.3"))
	assert.Equal(t, 3, l.size())

	clock.now = clock.now.Add(45 * time.Second)
	assert.True(t, l.allow("10.0.0.1"))
	assert.Equal(t, 2, l.size(), "clients idle for a window are dropped")
}

func TestRateLimit_PerClient(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	h := rateLimit(newClientLimiter(2, time.Minute, clock.Now), time.Minute)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("192.0.2.1:1000").Code)
	rec := send("192.0.2.1:2000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, send("192.0.2.2:1000").Code)

	clock.now = clock.now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, send("192.0.2.1:3000").Code)
}
