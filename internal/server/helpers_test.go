package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"bludify/internal/config"
	applog "bludify/internal/log"
	"bludify/internal/repos"
	"bludify/internal/server"
)

func newApp(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", RateLimit: rateLimit}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	app, err := server.New(cfg, db)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(b)
}

func get(t *testing.T, app *fiber.App, target string, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(t, app, req)
}

// csrfToken fetches a page to obtain the double-submit cookie.
func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, _ := get(t, app, "/login")
	for _, c := range resp.Cookies() {
		if c.Name == "csrf_" {
			return c.Value
		}
	}
	t.Fatal("csrf cookie missing")
	return ""
}

func postForm(t *testing.T, app *fiber.App, target, tok string, form url.Values, cookies ...*http.Cookie) (*http.Response, string) {
	t.Helper()
	if tok != "" {
		form.Set("csrf", tok)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(t, app, req)
}

func postUpload(t *testing.T, app *fiber.App, target, tok string, fields map[string]string, csvBody string) (*http.Response, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	_ = w.WriteField("csrf", tok)
	fw, err := w.CreateFormFile("file", "devices.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.WriteString(fw, csvBody)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	return do(t, app, req)
}

type logEntry struct {
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	buf.mu.Lock()
	defer buf.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
