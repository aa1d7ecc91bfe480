// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the admin view shells: per-entity list
// and form pages, moderation actions, authentication, and the web
// settings editor. Handlers fetch whole collections through the entity
// services, derive the visible page with the listview pipeline, and
// re-render forms with the user's values intact on validation failure.
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/microcosm-cc/bluemonday"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/listview"
	"github.com/senspa/spadmin-go/internal/model"
	"github.com/senspa/spadmin-go/internal/render"
	"github.com/senspa/spadmin-go/internal/translation"
)

// maxUploadSize caps uploaded images at 5 MB before they are forwarded
// upstream.
const maxUploadSize = 5 << 20

// richText sanitizes blog content before submission. The policy allows
// the usual user-generated markup plus images, which the editor embeds
// by URL.
var richText = bluemonday.UGCPolicy()

// parseListState reads the list view state from the query string.
// Unknown sort fields and directions fall back to the defaults; a
// non-positive page becomes 1.
func parseListState(r *http.Request, d listview.Defaults) listview.State {
	s := listview.NewState(d)
	q := r.URL.Query()

	s.Search = strings.TrimSpace(q.Get("q"))
	s.CategoryID = q.Get("category")

	switch q.Get("sort") {
	case listview.SortByName:
		s.SortField = listview.SortByName
	case listview.SortByCreatedAt:
		s.SortField = listview.SortByCreatedAt
	}
	switch q.Get("dir") {
	case listview.DirectionASC:
		s.SortDir = listview.DirectionASC
	case listview.DirectionDESC:
		s.SortDir = listview.DirectionDESC
	}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		s.Page = p
	}
	return s
}

// listQuery serializes a view state back into a query string so that
// pagination and sort links keep the current filter. The page number
// is left out; links append their own.
func listQuery(s listview.State) string {
	q := url.Values{}
	if s.Search != "" {
		q.Set("q", s.Search)
	}
	if s.CategoryID != "" {
		q.Set("category", s.CategoryID)
	}
	q.Set("sort", s.SortField)
	q.Set("dir", s.SortDir)
	return "?" + q.Encode()
}

// errorMessage extracts the user-facing text from a service error.
// Typed backend errors already carry a localized message; anything
// else (timeouts, connection failures) gets the generic fallback.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Không thể kết nối máy chủ, vui lòng thử lại sau"
}

// renderError logs a template failure and sends a bare 500. By the
// time rendering fails there is nothing useful left to show.
func renderError(w http.ResponseWriter, name string, err error) {
	slog.Error("failed to render template", "template", name, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// adminPath prefixes an entity route with the admin mount point.
func adminPath(route string) string {
	return redirectAdmin + route
}

// flashRedirect sets a flash message and redirects.
func flashRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, target, message, flashType string) {
	renderer.SetFlash(r, message, flashType)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// sanitizeSetContent runs every language's rich-text content through
// the sanitizer. Names and descriptions are plain text inputs and are
// escaped at render time instead.
func sanitizeSetContent(set translation.Set, langs []string) translation.Set {
	for _, lang := range langs {
		if t, ok := set.Get(lang); ok && t.Content != "" {
			set = set.Update(lang, "content", richText.Sanitize(t.Content))
		}
	}
	return set
}

// Upload validation failures, mapped to user-facing text by
// uploadErrorMessage.
var (
	errUploadTooLarge = errors.New("uploaded file exceeds size limit")
	errUploadNotImage = errors.New("uploaded file is not a decodable image")
)

// uploadErrorMessage returns the user-facing text for an upload
// failure.
func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, errUploadTooLarge):
		return "Ảnh vượt quá dung lượng cho phép (5MB)"
	case errors.Is(err, errUploadNotImage):
		return "Tệp không phải là ảnh hợp lệ"
	}
	return errorMessage(err)
}

// uploadFormImage reads the named file input, validates it, and uploads
// it through the upload service. It returns "" with a nil error when
// the input was left empty, so callers can keep the existing image.
func uploadFormImage(ctx context.Context, uploads *api.UploadService, r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading form file %q: %w", field, err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if n > maxUploadSize {
		return "", errUploadTooLarge
	}

	// Reject files that are not decodable images regardless of their
	// extension.
	if _, err := imaging.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		return "", errUploadNotImage
	}

	name := filepath.Base(header.Filename)
	url, err := uploads.Upload(ctx, name, buf)
	if err != nil {
		return "", err
	}
	return url, nil
}

// deleteOldImage removes a superseded image upstream. Failures only
// warn: the entity update already succeeded and the orphaned file is
// harmless.
func deleteOldImage(ctx context.Context, uploads *api.UploadService, oldURL, newURL string) bool {
	if oldURL == "" || oldURL == newURL {
		return true
	}
	if err := uploads.DeleteFile(ctx, oldURL); err != nil {
		slog.Warn("failed to delete replaced image", "url", oldURL, "error", err)
		return false
	}
	return true
}

// formSelection collects the checked row IDs of a bulk action,
// restricted to the given collection.
func formSelection[T any](r *http.Request, items []T, id func(T) string) []string {
	if err := r.ParseForm(); err != nil {
		return nil
	}
	return listview.RestrictSelection(r.Form["selected"], items, id)
}

// categoryOptions maps categories to the value/label pairs rendered in
// a filter dropdown or form select. Soft-deleted categories are
// excluded.
type categoryOption struct {
	ID   string
	Name string
}

func categoryOptions(cats []model.Category) []categoryOption {
	opts := make([]categoryOption, 0, len(cats))
	for _, c := range cats {
		if c.IsDeleted() {
			continue
		}
		opts = append(opts, categoryOption{ID: c.ID, Name: c.DisplayName()})
	}
	return opts
}
