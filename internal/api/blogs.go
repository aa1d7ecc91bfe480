// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// BlogService manages blog posts.
type BlogService struct {
	c *Client
}

// BlogPayload is the write shape for creating or updating a post. The
// root display fields are denormalized from the canonical translation
// before submission; the translation set is written separately through
// SaveTranslations once the post exists.
type BlogPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Slug        string `json:"slug,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
	Published   bool   `json:"published"`
}

// List fetches all blog posts. The backend paginates this endpoint;
// the admin requests one large page and filters client-side.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, Meta, error) {
	query := url.Values{"page": {"1"}, "limit": {"1000"}}
	return getCollection[model.Blog](ctx, s.c, "/blog", query)
}

// Get fetches one post with its full translation set.
func (s *BlogService) Get(ctx context.Context, id string) (model.Blog, error) {
	return getObject[model.Blog](ctx, s.c, "/blog/"+url.PathEscape(id))
}

// Create creates a post.
func (s *BlogService) Create(ctx context.Context, p BlogPayload) (model.Blog, error) {
	return writeObject[model.Blog](ctx, s.c, http.MethodPost, "/blog", p)
}

// Update updates a post.
func (s *BlogService) Update(ctx context.Context, id string, p BlogPayload) (model.Blog, error) {
	return writeObject[model.Blog](ctx, s.c, http.MethodPut, "/blog/"+url.PathEscape(id), p)
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/blog/"+url.PathEscape(id), nil, nil)
	return err
}

// DeleteMany removes the selected posts concurrently. A partial
// failure surfaces as an overall failure even though some deletes may
// have gone through.
func (s *BlogService) DeleteMany(ctx context.Context, ids []string) error {
	return forEach(ctx, ids, s.Delete)
}

// TogglePublish flips a post's published flag.
func (s *BlogService) TogglePublish(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodPatch, "/blog/"+url.PathEscape(id)+"/toggle-publish", nil, nil)
	return err
}

// SaveTranslations writes a post's translation batch, one request per
// language issued concurrently with no ordering guarantee among them.
// All writes are awaited; the first failure fails the whole batch and
// nothing is rolled back.
func (s *BlogService) SaveTranslations(ctx context.Context, id string, ts []model.Translation) error {
	return forEach(ctx, ts, func(ctx context.Context, t model.Translation) error {
		path := "/blog/" + url.PathEscape(id) + "/translations/" + url.PathEscape(t.Language)
		_, err := s.c.do(ctx, http.MethodPut, path, nil, t)
		return err
	})
}
