package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"fringe/internal/domain/account"
)

func csrfHandler(t *testing.T, sessions *SessionStore) http.Handler {
	t.Helper()
	key := bytes.Repeat([]byte("k"), 32)
	return CSRF(key, false, nil, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func multipartRequest(t *testing.T, path string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "subscribers.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("EMAIL\na@example.com\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCSRF_ExemptsJSON(t *testing.T) {
	handler := csrfHandler(t, NewSessionStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/contact", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want JSON requests exempt", rec.Code)
	}
}

// Multipart uploads from a logged-in console user must pass: the session
// cookie is SameSite=Strict, so its presence proves a same-site request.
func TestCSRF_ExemptsSessionBearer(t *testing.T) {
	sessions := NewSessionStore()
	token, err := sessions.Create("acct-1", "admin@thefringe.co.nz", account.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	handler := csrfHandler(t, sessions)

	req := multipartRequest(t, "/api/v1/subscribers/import")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want session-bearing multipart upload to pass", rec.Code)
	}
}

func TestCSRF_BlocksAnonymousFormPost(t *testing.T) {
	handler := csrfHandler(t, NewSessionStore())

	req := multipartRequest(t, "/api/v1/public/contact")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want anonymous form post without token rejected", rec.Code)
	}
}

func TestCSRF_StaleSessionDoesNotExempt(t *testing.T) {
	handler := csrfHandler(t, NewSessionStore())

	req := multipartRequest(t, "/api/v1/subscribers/import")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "expired-or-forged"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want unknown session token to fall through to CSRF checks", rec.Code)
	}
}
