// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<nav>{{.Active}}</nav>{{template "page" .}}{{end}}`),
		},
		"partials/flash.html": &fstest.MapFile{
			Data: []byte(`{{define "flash"}}{{if .Flash}}<div class="{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`),
		},
		"admin/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "page"}}{{template "flash" .}}<h1>{{.Title}}</h1>{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<form>{{.Title}}</form>{{end}}`),
		},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRender_AdminPage(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	err := r.Render(rec, req, "admin/dashboard", TemplateData{Title: "Tổng quan", Active: "dashboard"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<h1>Tổng quan</h1>") {
		t.Errorf("body missing title: %s", body)
	}
	if !strings.Contains(body, "<nav>dashboard</nav>") {
		t.Errorf("body missing admin layout: %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRender_AuthPage(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	if err := r.Render(rec, req, "auth/login", TemplateData{Title: "Đăng nhập"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "<form>Đăng nhập</form>") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(rec, req, "admin/missing", TemplateData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
	if rec.Body.Len() != 0 {
		t.Error("failed render must not write a partial body")
	}
}

func TestTemplateFuncs(t *testing.T) {
	r := newTestRenderer(t)
	funcs := r.templateFuncs()

	formatDate := funcs["formatDate"].(func(time.Time) string)
	if got := formatDate(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)); got != "14/03/2026" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate(time.Time{}); got != "—" {
		t.Errorf("formatDate zero = %q", got)
	}

	truncate := funcs["truncate"].(func(string, int) string)
	if got := truncate("chăm sóc da", 4); got != "chăm..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("spa", 10); got != "spa" {
		t.Errorf("truncate short = %q", got)
	}

	langLabel := funcs["langLabel"].(func(string) string)
	if got := langLabel("vi"); got != "Tiếng Việt" {
		t.Errorf("langLabel(vi) = %q", got)
	}
	if got := langLabel("xx"); got != "xx" {
		t.Errorf("langLabel(xx) = %q", got)
	}
}
