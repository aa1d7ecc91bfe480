// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/model"
)

func TestServicesCreate(t *testing.T) {
	var mu sync.Mutex
	var created api.ServicePayload

	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/categories":
			writeJSON(t, w, []model.Category{{ID: "c2", Name: "Trị liệu", Type: model.CategoryTypeService}})
		case r.Method == http.MethodPost && r.URL.Path == "/services":
			mu.Lock()
			json.NewDecoder(r.Body).Decode(&created)
			mu.Unlock()
			writeJSON(t, w, model.Service{ID: "s1"})
		default:
			http.NotFound(w, r)
		}
	})
	h := NewServicesHandler(env.client, env.renderer, env.cacher)

	body, contentType := multipartForm(t, map[string]string{
		"name_vi":     "Gội đầu dưỡng sinh",
		"name_en":     "Herbal hair wash",
		"duration":    "45",
		"category_id": "c2",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/services", body)
	req.Header.Set("Content-Type", contentType)
	rec := env.do(t, http.HandlerFunc(h.Create), req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303, body: %s", rec.Code, rec.Body.String())
	}

	mu.Lock()
	defer mu.Unlock()
	if created.Name != "Gội đầu dưỡng sinh" || created.Duration != 45 || created.CategoryID != "c2" {
		t.Errorf("payload = %+v", created)
	}
	if created.Slug != "goi-dau-duong-sinh" {
		t.Errorf("slug = %q, want goi-dau-duong-sinh", created.Slug)
	}
	if len(created.Translations) != 2 {
		t.Errorf("translations = %+v, want vi and en entries", created.Translations)
	}
}

func TestServicesCreateValidation(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []model.Category{})
	})
	h := NewServicesHandler(env.client, env.renderer, env.cacher)

	tests := []struct {
		name      string
		fields    map[string]string
		wantField string
	}{
		{
			name:      "missing duration",
			fields:    map[string]string{"name_vi": "Dịch vụ", "category_id": "c2", "duration": ""},
			wantField: "duration",
		},
		{
			name:      "negative duration",
			fields:    map[string]string{"name_vi": "Dịch vụ", "category_id": "c2", "duration": "-5"},
			wantField: "duration",
		},
		{
			name:      "missing category",
			fields:    map[string]string{"name_vi": "Dịch vụ", "duration": "30"},
			wantField: "category_id",
		},
		{
			name:      "missing canonical name",
			fields:    map[string]string{"name_en": "Service", "category_id": "c2", "duration": "30"},
			wantField: "name_vi",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartForm(t, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/admin/services", body)
			req.Header.Set("Content-Type", contentType)
			rec := env.do(t, http.HandlerFunc(h.Create), req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (form re-render)", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `field="`+tt.wantField+`"`) {
				t.Errorf("missing %s error: %s", tt.wantField, rec.Body.String())
			}
		})
	}

	if got := env.backend.count("POST /services"); got != 0 {
		t.Errorf("invalid forms reached backend %d times", got)
	}
}
