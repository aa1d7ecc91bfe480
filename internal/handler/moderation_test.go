// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/senspa/spadmin-go/internal/model"
)

func TestReviewsList(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Review{
			{ID: "r1", Author: "Lan", Rating: 5, Approved: true},
			{ID: "r2", Author: "Minh", Rating: 2},
			{ID: "r3", Author: "Hoa", Rating: 4},
		})
	})
	h := NewReviewsHandler(env.client, env.renderer, env.cacher)

	rec := env.do(t, http.HandlerFunc(h.List), httptest.NewRequest(http.MethodGet, "/admin/reviews", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<pending>2</pending>") {
		t.Errorf("pending count wrong: %s", body)
	}
	if !strings.Contains(body, "Lan:true") || !strings.Contains(body, "Minh:false") {
		t.Errorf("rows missing approval state: %s", body)
	}
}

func TestReviewsToggleApproval(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch && r.URL.Path == "/reviews/r2/toggle-approval" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
	h := NewReviewsHandler(env.client, env.renderer, env.cacher)

	router := chi.NewRouter()
	router.Post("/admin/reviews/{id}/toggle", h.ToggleApproval)

	rec := env.do(t, router, httptest.NewRequest(http.MethodPost, "/admin/reviews/r2/toggle", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := env.backend.count("PATCH /reviews/r2/toggle-approval"); got != 1 {
		t.Errorf("toggle calls = %d, want 1", got)
	}
}

func TestReviewsDeleteError(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"không tìm thấy"}`, http.StatusNotFound)
	})
	h := NewReviewsHandler(env.client, env.renderer, env.cacher)

	router := chi.NewRouter()
	router.Post("/admin/reviews/{id}/delete", h.Delete)

	rec := env.do(t, router, httptest.NewRequest(http.MethodPost, "/admin/reviews/gone/delete", nil))

	// Errors redirect back to the list; the flash carries the message.
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/reviews" {
		t.Errorf("redirect = %q, want /admin/reviews", loc)
	}
}

func TestContactsList(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"items": []model.ContactMessage{
			{ID: "m1", Name: "Khách A", Message: "Đặt lịch", Read: true},
			{ID: "m2", Name: "Khách B", Message: "Hỏi giá"},
		}, "meta": map[string]int{"totalItems": 2}})
	})
	h := NewContactsHandler(env.client, env.renderer, env.cacher)

	rec := env.do(t, http.HandlerFunc(h.List), httptest.NewRequest(http.MethodGet, "/admin/contacts", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "<unread>1</unread>") {
		t.Errorf("unread count wrong: %s", body)
	}
	if !strings.Contains(body, "Khách A") || !strings.Contains(body, "Khách B") {
		t.Errorf("rows missing: %s", body)
	}
}

func TestContactsMarkRead(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch && r.URL.Path == "/contact/m2/read" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
	h := NewContactsHandler(env.client, env.renderer, env.cacher)

	router := chi.NewRouter()
	router.Post("/admin/contacts/{id}/read", h.MarkRead)

	rec := env.do(t, router, httptest.NewRequest(http.MethodPost, "/admin/contacts/m2/read", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := env.backend.count("PATCH /contact/m2/read"); got != 1 {
		t.Errorf("mark-read calls = %d, want 1", got)
	}
}
