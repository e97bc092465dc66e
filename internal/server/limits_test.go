package server_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// burst hits return 429
func TestRateLimit(t *testing.T) {
	app := newApp(t, 3)

	var entries []logEntry
	entries = captureLogs(t, func() {
		for i := 0; i < 4; i++ {
			resp, _ := get(t, app, "/marketplace?q=test")
			if i < 3 && resp.StatusCode == http.StatusTooManyRequests {
				t.Fatalf("hit rate limit too early at %d", i)
			}
			if i == 3 && resp.StatusCode != http.StatusTooManyRequests {
				t.Fatalf("expected 429 after limit, got %d", resp.StatusCode)
			}
		}
	})
	if !hasAction(entries, "rate.global.hit") {
		t.Fatalf("expected rate.global.hit log")
	}

	// static assets are not counted
	resp, _ := get(t, app, "/static/app.css")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static should bypass the limiter, got %d", resp.StatusCode)
	}
}

// oversized POST rejected with 413
func TestBodySizeLimit(t *testing.T) {
	app := newApp(t, 1000)
	tok := csrfToken(t, app)

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest(http.MethodPost, "/sell", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req, -1)
	// Fiber may return an error instead of a response when the body is too large
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversize, got %d", resp.StatusCode)
	}
}
