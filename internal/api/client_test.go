// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/senspa/spadmin-go/internal/model"
)

func testTranslations(langs ...string) []model.Translation {
	ts := make([]model.Translation, 0, len(langs))
	for _, lang := range langs {
		ts = append(ts, model.Translation{Language: lang, Name: "name-" + lang})
	}
	return ts
}

// stubCredentials is a fixed-token credential source that records
// unauthorized notifications.
type stubCredentials struct {
	token string

	mu           sync.Mutex
	unauthorized int
}

func (s *stubCredentials) Token(context.Context) string { return s.token }

func (s *stubCredentials) HandleUnauthorized(context.Context) {
	s.mu.Lock()
	s.unauthorized++
	s.mu.Unlock()
}

func (s *stubCredentials) unauthorizedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unauthorized
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *stubCredentials) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := &stubCredentials{token: "test-token"}
	return New(Config{BaseURL: srv.URL, Credentials: creds}), creds
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	if _, _, err := client.Blogs.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("got Authorization %q, want %q", gotAuth, "Bearer test-token")
	}
}

func TestClientErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"backend message wins", http.StatusBadRequest, `{"message":"Email đã tồn tại"}`, "Email đã tồn tại"},
		{"error field", http.StatusUnprocessableEntity, `{"error":"slug taken"}`, "slug taken"},
		{"category fallback 404", http.StatusNotFound, `{}`, "Dữ liệu không tồn tại hoặc đã bị xóa"},
		{"category fallback 500", http.StatusInternalServerError, ``, "Lỗi máy chủ, vui lòng thử lại sau"},
		{"unknown status", http.StatusTeapot, ``, "Đã xảy ra lỗi, vui lòng thử lại sau"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, _, err := client.Services.List(context.Background())
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if got := UserMessage(err); got != tt.wantMessage {
				t.Errorf("got message %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestClientNotifiesOnUnauthorized(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, _, err := client.Categories.List(context.Background(), "")
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if got := creds.unauthorizedCount(); got != 1 {
		t.Errorf("credential source notified %d times, want 1", got)
	}
}

func TestLoginEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"nested data", `{"data":{"token":"tok-1","user":{"name":"Lan","email":"lan@senspa.vn"}}}`},
		{"access token", `{"accessToken":"tok-1","user":{"name":"Lan","email":"lan@senspa.vn"}}`},
		{"flat token", `{"token":"tok-1","user":{"name":"Lan","email":"lan@senspa.vn"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/users/login" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decoding login body: %v", err)
				}
				if body["email"] != "lan@senspa.vn" {
					t.Errorf("got email %q", body["email"])
				}
				w.Write([]byte(tt.body))
			}))

			sess, err := client.Auth.Login(context.Background(), "lan@senspa.vn", "secret")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if sess.Token != "tok-1" {
				t.Errorf("got token %q, want %q", sess.Token, "tok-1")
			}
			if sess.User.Name != "Lan" {
				t.Errorf("got user name %q, want %q", sess.User.Name, "Lan")
			}
		})
	}
}

func TestLoginWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"name":"Lan"}}`))
	}))

	if _, err := client.Auth.Login(context.Background(), "a@b.c", "x"); err == nil {
		t.Fatal("expected error for tokenless response")
	}
}

func TestDeleteManyPartialFailure(t *testing.T) {
	var deleted atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		deleted.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.Blogs.DeleteMany(context.Background(), []string{"a", "bad", "c"})
	if err == nil {
		t.Fatal("expected batch to fail when one delete fails")
	}
	// Successful deletes are not rolled back.
	if got := deleted.Load(); got == 0 {
		t.Error("expected at least one delete to go through")
	}
}

func TestSaveTranslationsIssuesPerLanguageWrites(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		parts := strings.Split(r.URL.Path, "/")
		mu.Lock()
		seen[parts[len(parts)-1]] = true
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))

	ts := testTranslations("vi", "en", "ko")
	if err := client.Blogs.SaveTranslations(context.Background(), "p1", ts); err != nil {
		t.Fatalf("SaveTranslations: %v", err)
	}
	for _, lang := range []string{"vi", "en", "ko"} {
		if !seen[lang] {
			t.Errorf("no write issued for language %q", lang)
		}
	}
}
