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

func categoryBackend(t *testing.T) http.HandlerFunc {
	now := testTime()
	cats := []model.Category{
		{ID: "c1", Name: "Tin tức", Type: model.CategoryTypeBlog, Active: true},
		{ID: "c2", Name: "Trị liệu", Type: model.CategoryTypeService, Active: true},
		{ID: "c3", Name: "Đã xóa", Type: model.CategoryTypeBlog, DeletedAt: &now},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/categories":
			writeJSON(t, w, cats)
		case r.Method == http.MethodPatch && r.URL.Path == "/categories/c1/status":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Path == "/categories/c3/restore":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}
}

func TestCategoriesListTypeTabs(t *testing.T) {
	env := newTestEnv(t, categoryBackend(t))
	h := NewCategoriesHandler(env.client, env.renderer, env.cacher)

	// Default tab is blog: shows blog categories including soft-deleted.
	rec := env.do(t, http.HandlerFunc(h.List), httptest.NewRequest(http.MethodGet, "/admin/categories", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "Tin tức") || !strings.Contains(body, "Đã xóa") {
		t.Errorf("blog tab rows missing: %s", body)
	}
	if strings.Contains(body, "Trị liệu") {
		t.Errorf("service category leaked into blog tab: %s", body)
	}

	rec = env.do(t, http.HandlerFunc(h.List), httptest.NewRequest(http.MethodGet, "/admin/categories?type=service", nil))
	body = rec.Body.String()
	if !strings.Contains(body, "Trị liệu") || !strings.Contains(body, "<tab>service</tab>") {
		t.Errorf("service tab wrong: %s", body)
	}

	// Unknown type falls back to the blog tab.
	rec = env.do(t, http.HandlerFunc(h.List), httptest.NewRequest(http.MethodGet, "/admin/categories?type=bogus", nil))
	if !strings.Contains(rec.Body.String(), "<tab>blog</tab>") {
		t.Errorf("unknown type not defaulted: %s", rec.Body.String())
	}
}

func TestCategoriesUpdateStatus(t *testing.T) {
	env := newTestEnv(t, categoryBackend(t))
	h := NewCategoriesHandler(env.client, env.renderer, env.cacher)

	router := chi.NewRouter()
	router.Post("/admin/categories/{id}/status", h.UpdateStatus)

	req := httptest.NewRequest(http.MethodPost, "/admin/categories/c1/status", strings.NewReader("active=false"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(t, router, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := env.backend.count("PATCH /categories/c1/status"); got != 1 {
		t.Errorf("status calls = %d, want 1", got)
	}
}

func TestCategoriesRestore(t *testing.T) {
	env := newTestEnv(t, categoryBackend(t))
	h := NewCategoriesHandler(env.client, env.renderer, env.cacher)

	router := chi.NewRouter()
	router.Post("/admin/categories/{id}/restore", h.Restore)

	rec := env.do(t, router, httptest.NewRequest(http.MethodPost, "/admin/categories/c3/restore", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := env.backend.count("POST /categories/c3/restore"); got != 1 {
		t.Errorf("restore calls = %d, want 1", got)
	}
}

func TestCategoriesCreateRejectsBadType(t *testing.T) {
	env := newTestEnv(t, categoryBackend(t))
	h := NewCategoriesHandler(env.client, env.renderer, env.cacher)

	body, contentType := multipartForm(t, map[string]string{
		"name_vi": "Danh mục mới",
		"type":    "gallery",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", body)
	req.Header.Set("Content-Type", contentType)
	rec := env.do(t, http.HandlerFunc(h.Create), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (form re-render)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `field="type"`) {
		t.Errorf("missing type error: %s", rec.Body.String())
	}
	if got := env.backend.count("POST /categories"); got != 0 {
		t.Errorf("invalid form reached backend %d times", got)
	}
}
