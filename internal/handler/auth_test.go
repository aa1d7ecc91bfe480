// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/auth"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/model"
)

// newAuthEnv wires an AuthHandler whose client reads credentials from
// the real session-backed holder.
func newAuthEnv(t *testing.T, backend http.HandlerFunc) (*testEnv, *AuthHandler) {
	t.Helper()
	env := newTestEnv(t, backend)

	creds := auth.NewCredentials(env.sm)
	client := api.New(api.Config{
		BaseURL:     env.backendURL,
		Timeout:     5 * time.Second,
		Credentials: creds,
	})
	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	return env, NewAuthHandler(client, creds, env.renderer, env.sm, lp)
}

func loginBackend(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/users/login" {
			writeJSON(t, w, map[string]any{
				"token": "tok-1",
				"user":  model.User{Name: "Lan", Email: "lan@senspa.vn", Role: model.RoleAdmin},
			})
			return
		}
		http.NotFound(w, r)
	}
}

func postLogin(t *testing.T, env *testEnv, h *AuthHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.do(t, http.HandlerFunc(h.Login), req)
}

func TestLogin(t *testing.T) {
	env, h := newAuthEnv(t, loginBackend(t))

	rec := postLogin(t, env, h, url.Values{
		"email":    {"lan@senspa.vn"},
		"password": {"secret"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303, body: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != redirectAdmin {
		t.Errorf("redirect = %q, want %q", loc, redirectAdmin)
	}
	if got := env.backend.count("POST /users/login"); got != 1 {
		t.Errorf("login calls = %d, want 1", got)
	}
	// Login rotates the session cookie.
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie issued")
	}
}

func TestLoginNextRedirect(t *testing.T) {
	env, h := newAuthEnv(t, loginBackend(t))

	tests := []struct {
		name string
		next string
		want string
	}{
		{"local path", "/admin/blogs", "/admin/blogs"},
		{"protocol relative", "//evil.example", redirectAdmin},
		{"absolute url", "https://evil.example/x", redirectAdmin},
		{"empty", "", redirectAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(t, env, h, url.Values{
				"email":    {"lan@senspa.vn"},
				"password": {"secret"},
				"next":     {tt.next},
			})
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("redirect = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env, h := newAuthEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Email hoặc mật khẩu không đúng"}`, http.StatusUnauthorized)
	})

	rec := postLogin(t, env, h, url.Values{
		"email":    {"lan@senspa.vn"},
		"password": {"wrong"},
	})

	// The login page re-renders with the backend's message.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Email hoặc mật khẩu không đúng") {
		t.Errorf("error message missing: %s", body)
	}
	if !strings.Contains(body, "<email>lan@senspa.vn</email>") {
		t.Errorf("entered email not preserved: %s", body)
	}
}

func TestLoginMissingFields(t *testing.T) {
	env, h := newAuthEnv(t, loginBackend(t))

	rec := postLogin(t, env, h, url.Values{"email": {"lan@senspa.vn"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := env.backend.count("POST /users/login"); got != 0 {
		t.Errorf("incomplete form reached backend %d times", got)
	}
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"sai mật khẩu"}`, http.StatusUnauthorized)
	})

	creds := auth.NewCredentials(env.sm)
	client := api.New(api.Config{BaseURL: env.backendURL, Timeout: 5 * time.Second, Credentials: creds})
	cfg := middleware.DefaultLoginProtectionConfig()
	cfg.MaxFailedAttempts = 2
	lp := middleware.NewLoginProtection(cfg)
	h := NewAuthHandler(client, creds, env.renderer, env.sm, lp)

	form := url.Values{"email": {"lan@senspa.vn"}, "password": {"wrong"}}
	postLogin(t, env, h, form)
	postLogin(t, env, h, form)

	// Third attempt is refused locally, the backend never sees it.
	rec := postLogin(t, env, h, form)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tạm khóa") {
		t.Errorf("lockout message missing: %s", rec.Body.String())
	}
	if got := env.backend.count("POST /users/login"); got != 2 {
		t.Errorf("backend login calls = %d, want 2", got)
	}
}

func TestLogout(t *testing.T) {
	env, h := newAuthEnv(t, loginBackend(t))

	rec := env.do(t, http.HandlerFunc(h.Logout), httptest.NewRequest(http.MethodPost, "/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != RouteLogin {
		t.Errorf("redirect = %q, want %q", loc, RouteLogin)
	}
}
