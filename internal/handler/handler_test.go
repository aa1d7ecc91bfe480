// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/cache"
	"github.com/senspa/spadmin-go/internal/render"
)

// staticCreds satisfies the client's credential source with a fixed
// token, sidestepping session plumbing in tests that don't exercise
// login.
type staticCreds struct{}

func (staticCreds) Token(context.Context) string       { return "test-token" }
func (staticCreds) HandleUnauthorized(context.Context) {}

// backendStub records every request hitting the fake upstream API.
type backendStub struct {
	mu       sync.Mutex
	requests []string
	handler  http.HandlerFunc
}

func (b *backendStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.mu.Unlock()
	b.handler(w, r)
}

func (b *backendStub) count(req string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, got := range b.requests {
		if got == req {
			n++
		}
	}
	return n
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding stub response: %v", err)
	}
}

func testTemplates() fstest.MapFS {
	page := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "page"}}` + body + `{{end}}`)}
	}
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{if .Flash}}<div class="flash {{.FlashType}}">{{.Flash}}</div>{{end}}{{template "content" .}}{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{template "page" .}}{{end}}`),
		},
		"admin/dashboard.html":       page(`<span id="blogs">{{.Data.BlogCount}}</span><span id="pending">{{.Data.PendingReviews}}</span><span id="unread">{{.Data.UnreadContacts}}</span>`),
		"admin/blogs_list.html":      page(`{{range .Data.Page.Rows}}<tr>{{.DisplayTitle}}</tr>{{end}}<total>{{.Data.Page.Total}}</total>`),
		"admin/blogs_form.html":      page(`{{range $k, $v := .Data.Errors}}<err field="{{$k}}">{{$v}}</err>{{end}}`),
		"admin/categories_list.html": page(`{{range .Data.Page.Rows}}<tr>{{.DisplayName}}</tr>{{end}}<tab>{{.Data.Type}}</tab>`),
		"admin/categories_form.html": page(`{{range $k, $v := .Data.Errors}}<err field="{{$k}}">{{$v}}</err>{{end}}`),
		"admin/services_list.html":   page(`{{range .Data.Page.Rows}}<tr>{{.DisplayName}}</tr>{{end}}<total>{{.Data.Page.Total}}</total>`),
		"admin/services_form.html":   page(`{{range $k, $v := .Data.Errors}}<err field="{{$k}}">{{$v}}</err>{{end}}`),
		"admin/slides_list.html":     page(`{{range .Data.Page.Rows}}<tr>{{.Title}}</tr>{{end}}`),
		"admin/slides_form.html":     page(`{{range $k, $v := .Data.Errors}}<err field="{{$k}}">{{$v}}</err>{{end}}`),
		"admin/reviews_list.html":    page(`{{range .Data.Page.Rows}}<tr>{{.Author}}:{{.Approved}}</tr>{{end}}<pending>{{.Data.Pending}}</pending>`),
		"admin/contacts_list.html":   page(`{{range .Data.Page.Rows}}<tr>{{.Name}}</tr>{{end}}<unread>{{.Data.Unread}}</unread>`),
		"admin/settings.html":        page(`{{range $k, $v := .Data.Errors}}<err field="{{$k}}">{{$v}}</err>{{end}}<site>{{.Data.Settings.SiteName}}</site>`),
		"admin/site_settings.html":   page(`{{range .Data.Rows}}<row key="{{.Key}}">{{.Value}}{{range .Translations}}[{{.Language}}:{{.Value}}]{{end}}</row>{{end}}{{range $k, $v := .Data.Errors}}<err field="{{$k}}">{{$v}}</err>{{end}}`),
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<form><email>{{.Data.Email}}</email></form>{{end}}`),
		},
	}
}

// testEnv wires a handler environment against a stub backend.
type testEnv struct {
	backend    *backendStub
	backendURL string
	client     *api.Client
	renderer   *render.Renderer
	sm         *scs.SessionManager
	cacher     cache.Cacher
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	backend := &backendStub{handler: handler}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	sm := scs.New()
	renderer, err := render.New(render.Config{TemplatesFS: testTemplates(), SessionManager: sm})
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}

	client := api.New(api.Config{
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		Credentials: staticCreds{},
	})

	return &testEnv{
		backend:    backend,
		backendURL: srv.URL,
		client:     client,
		renderer:   renderer,
		sm:         sm,
		cacher:     cache.NewCacheWithTTL(time.Minute),
	}
}

// do routes one request through the session middleware, the way the
// real router wraps every handler.
func (e *testEnv) do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.sm.LoadAndSave(h).ServeHTTP(rec, req)
	return rec
}

func testTime() time.Time {
	return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
}

// multipartForm builds a multipart request body for form-only posts.
func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}
