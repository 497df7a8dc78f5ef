package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, d time.Duration) (*Limiter, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	l := New(limit, d)
	l.now = clk.now
	return l, clk
}

func TestLimiter_WindowResets(t *testing.T) {
	l, clk := newTestLimiter(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other keys are independent")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
	if got := l.RetryAfter("a"); got != time.Minute {
		t.Errorf("RetryAfter = %v, want 1m", got)
	}

	clk.advance(time.Minute)
	if !l.Allow("a") {
		t.Fatal("window should have reset")
	}
	if got := l.Remaining("a"); got != 1 {
		t.Errorf("Remaining after reset = %d, want 1", got)
	}
}

func TestLimiter_SweepDropsExpired(t *testing.T) {
	l, clk := newTestLimiter(1, time.Second)
	l.Allow("a")
	l.Allow("b")
	clk.advance(2 * time.Second)
	l.Allow("c")

	l.mu.Lock()
	n := len(l.windows)
	l.mu.Unlock()
	if n != 1 {
		t.Errorf("windows = %d, want 1 after sweep", n)
	}
}

func TestLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)
	l.Allow("a")
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("Reset should clear the window")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{name: "remote addr", remote: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "remote without port", remote: "10.0.0.1", want: "10.0.0.1"},
		{name: "forwarded for", header: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, remote: "10.0.0.1:1", want: "203.0.113.7"},
		{name: "real ip", header: map[string]string{"X-Real-IP": " 198.51.100.3 "}, remote: "10.0.0.1:1", want: "198.51.100.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	h := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/donations", nil))
	if first.Code != http.StatusCreated {
		t.Fatalf("first = %d", first.Code)
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/donations", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second = %d, want 429", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
}

func TestLoginLimiter_PerLoginFolded(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	for _, login := range []string{"Esperança", "ESPERANCA"} {
		if ok, _, _ := ll.Check(r, login); !ok {
			t.Fatalf("attempt for %q should pass", login)
		}
	}
	ok, wait, msg := ll.Check(r, " esperanca ")
	if ok {
		t.Fatal("third attempt for the same folded login should be limited")
	}
	if wait <= 0 || msg == "" {
		t.Errorf("wait=%v msg=%q", wait, msg)
	}

	ll.ResetLogin("Esperança")
	if ok, _, _ := ll.Check(r, "esperanca"); !ok {
		t.Error("ResetLogin should clear the login window")
	}
}

func TestLoginLimiter_PerIP(t *testing.T) {
	ll := NewLoginLimiterWithConfig(1, time.Minute, 100, time.Minute)
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	if ok, _, _ := ll.Check(r, "a"); !ok {
		t.Fatal("first attempt should pass")
	}
	if ok, _, _ := ll.Check(r, "b"); ok {
		t.Fatal("second attempt from the same IP should be limited")
	}
}
