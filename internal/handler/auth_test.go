package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veloraid/velora/internal/handler"
	"github.com/veloraid/velora/internal/service"
)

func newAuthHandler(t *testing.T) (*handler.AuthHandler, *service.AuthService, *service.SessionService) {
	t.Helper()
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), 4)
	sessions := service.NewSessionService(testSessionSecret, time.Hour)
	throttle := service.NewLoginThrottle(100, 100)
	h := handler.NewAuthHandler(auth, sessions, throttle, testCookies())
	return h, auth, sessions
}

func postJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleRegister_Success(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	w := postJSON(t, h.HandleRegister, "/api/auth/register",
		`{"name":"New User","email":"new@example.com","password":"password123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp["success"] {
		t.Fatalf("expected success=true, got %s", w.Body.String())
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	first := postJSON(t, h.HandleRegister, "/api/auth/register",
		`{"name":"User 1","email":"dup@example.com","password":"password123"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first register: expected 200, got %d", first.Code)
	}

	second := postJSON(t, h.HandleRegister, "/api/auth/register",
		`{"name":"User 2","email":"dup@example.com","password":"password456"}`)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", second.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected error message in response")
	}
}

func TestHandleRegister_MissingFields(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","password":"password123"}`},
		{"missing email", `{"name":"User","password":"password123"}`},
		{"missing password", `{"name":"User","email":"a@b.com"}`},
		{"malformed body", `{not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, h.HandleRegister, "/api/auth/register", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleLogin_Success(t *testing.T) {
	h, auth, sessions := newAuthHandler(t)
	registerUser(t, auth, "login@example.com", "password123")

	w := postJSON(t, h.HandleLogin, "/api/auth/login",
		`{"email":"login@example.com","password":"password123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}

	claims, err := sessions.Validate(cookie.Value)
	if err != nil {
		t.Fatalf("session cookie should carry a valid token: %v", err)
	}
	if claims.Email != "login@example.com" {
		t.Fatalf("expected claims email login@example.com, got %q", claims.Email)
	}

	var resp struct {
		User handler.SessionUserDTO `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Role != "USER" {
		t.Fatalf("expected role USER in response, got %q", resp.User.Role)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h, auth, _ := newAuthHandler(t)
	registerUser(t, auth, "wrongpw@example.com", "password123")

	w := postJSON(t, h.HandleLogin, "/api/auth/login",
		`{"email":"wrongpw@example.com","password":"nottherightone"}`)

	assertSigninFailure(t, w)
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	w := postJSON(t, h.HandleLogin, "/api/auth/login",
		`{"email":"nobody@example.com","password":"password123"}`)

	assertSigninFailure(t, w)
}

// All sign-in failure shapes must be indistinguishable.
func TestHandleLogin_MalformedInputIndistinguishable(t *testing.T) {
	h, auth, _ := newAuthHandler(t)
	registerUser(t, auth, "probe@example.com", "password123")

	tests := []struct {
		name string
		body string
	}{
		{"bad email shape", `{"email":"probe@@example.com","password":"password123"}`},
		{"short password", `{"email":"probe@example.com","password":"12345"}`},
		{"malformed body", `{not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, h.HandleLogin, "/api/auth/login", tc.body)
			assertSigninFailure(t, w)
		})
	}
}

func TestHandleLogin_Throttled(t *testing.T) {
	db := newTestDB(t)
	auth := service.NewAuthService(db.Users(), 4)
	sessions := service.NewSessionService(testSessionSecret, time.Hour)
	// Tiny bucket with effectively no refill.
	throttle := service.NewLoginThrottle(0.0001, 2)
	h := handler.NewAuthHandler(auth, sessions, throttle, testCookies())

	for i := 0; i < 2; i++ {
		w := postJSON(t, h.HandleLogin, "/api/auth/login",
			`{"email":"nobody@example.com","password":"password123"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}

	w := postJSON(t, h.HandleLogin, "/api/auth/login",
		`{"email":"nobody@example.com","password":"password123"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exhausting throttle, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["code"] != "AccessDenied" {
		t.Fatalf("expected code AccessDenied, got %q", resp["code"])
	}
}

func TestHandleLogout_ClearsCookie(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	h.HandleLogout(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie in response")
	}
	if cookie.MaxAge != -1 || cookie.Value != "" {
		t.Fatalf("expected cleared cookie, got MaxAge=%d Value=%q", cookie.MaxAge, cookie.Value)
	}
}

func TestHandleMe_WithoutSession(t *testing.T) {
	h, _, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	h.HandleMe(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHandleMe_WithSession(t *testing.T) {
	h, auth, sessions := newAuthHandler(t)
	registerUser(t, auth, "me@example.com", "password123")

	login := postJSON(t, h.HandleLogin, "/api/auth/login",
		`{"email":"me@example.com","password":"password123"}`)
	if login.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", login.Code)
	}
	token := login.Result().Cookies()[0].Value

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	w := httptest.NewRecorder()

	handler.SessionMiddleware(sessions, testCookies(), http.HandlerFunc(h.HandleMe)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		User handler.SessionUserDTO `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Email != "me@example.com" {
		t.Fatalf("expected email me@example.com, got %q", resp.User.Email)
	}
}

func registerUser(t *testing.T, auth *service.AuthService, email, password string) {
	t.Helper()
	if _, err := auth.Register(t.Context(), "Test User", email, password); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func assertSigninFailure(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["code"] != "CredentialsSignin" {
		t.Fatalf("expected code CredentialsSignin, got %q", resp["code"])
	}
	if resp["error"] != "Invalid email or password." {
		t.Fatalf("expected generic failure message, got %q", resp["error"])
	}
}
