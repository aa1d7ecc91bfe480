// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/senspa/spadmin-go/internal/model"
)

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blog":
			writeJSON(t, w, map[string]any{"items": []model.Blog{{ID: "b1"}, {ID: "b2"}}, "meta": map[string]int{"totalItems": 2}})
		case "/services":
			writeJSON(t, w, []model.Service{{ID: "s1"}})
		case "/categories":
			writeJSON(t, w, []model.Category{})
		case "/slides":
			writeJSON(t, w, []model.Slide{{ID: "sl1"}})
		case "/reviews":
			writeJSON(t, w, []model.Review{{ID: "r1", Approved: true}, {ID: "r2"}, {ID: "r3"}})
		case "/contact":
			writeJSON(t, w, []model.ContactMessage{{ID: "m1"}, {ID: "m2", Read: true}})
		default:
			http.NotFound(w, r)
		}
	})
	h := NewDashboardHandler(env.client, env.renderer)

	rec := env.do(t, http.HandlerFunc(h.Show), httptest.NewRequest(http.MethodGet, "/admin", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<span id="blogs">2</span>`) {
		t.Errorf("blog count wrong: %s", body)
	}
	if !strings.Contains(body, `<span id="pending">2</span>`) {
		t.Errorf("pending review count wrong: %s", body)
	}
	if !strings.Contains(body, `<span id="unread">1</span>`) {
		t.Errorf("unread contact count wrong: %s", body)
	}
}

func TestDashboardBackendDown(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bảo trì"}`, http.StatusServiceUnavailable)
	})
	h := NewDashboardHandler(env.client, env.renderer)

	rec := env.do(t, http.HandlerFunc(h.Show), httptest.NewRequest(http.MethodGet, "/admin", nil))

	// The dashboard still renders, tiles at zero.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<span id="blogs">0</span>`) {
		t.Errorf("expected zeroed tiles: %s", rec.Body.String())
	}
}
