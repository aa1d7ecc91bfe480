// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// CategoryService manages blog and service categories.
type CategoryService struct {
	c *Client
}

// CategoryPayload is the write shape for categories. Name and
// description are denormalized from the canonical translation.
type CategoryPayload struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Slug         string              `json:"slug,omitempty"`
	Type         string              `json:"type"`
	CoverImage   string              `json:"coverImage,omitempty"`
	Translations []model.Translation `json:"translations"`
}

// List fetches all categories, optionally restricted to one type.
func (s *CategoryService) List(ctx context.Context, categoryType string) ([]model.Category, Meta, error) {
	query := url.Values{"page": {"1"}, "limit": {"1000"}}
	if categoryType != "" {
		query.Set("type", categoryType)
	}
	return getCollection[model.Category](ctx, s.c, "/categories", query)
}

// Get fetches one category.
func (s *CategoryService) Get(ctx context.Context, id string) (model.Category, error) {
	return getObject[model.Category](ctx, s.c, "/categories/"+url.PathEscape(id))
}

// Create creates a category.
func (s *CategoryService) Create(ctx context.Context, p CategoryPayload) (model.Category, error) {
	return writeObject[model.Category](ctx, s.c, http.MethodPost, "/categories", p)
}

// Update updates a category. The cover image field is omitted from the
// payload when empty so an existing image is kept.
func (s *CategoryService) Update(ctx context.Context, id string, p CategoryPayload) (model.Category, error) {
	return writeObject[model.Category](ctx, s.c, http.MethodPatch, "/categories/"+url.PathEscape(id), p)
}

// Delete soft-deletes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
	return err
}

// DeleteMany removes the selected categories concurrently.
func (s *CategoryService) DeleteMany(ctx context.Context, ids []string) error {
	return forEach(ctx, ids, s.Delete)
}

// UpdateStatus enables or disables a category on the public site.
func (s *CategoryService) UpdateStatus(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"status": active}
	_, err := s.c.do(ctx, http.MethodPatch, "/categories/"+url.PathEscape(id)+"/status", nil, body)
	return err
}

// Restore undoes a soft delete.
func (s *CategoryService) Restore(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodPost, "/categories/"+url.PathEscape(id)+"/restore", nil, nil)
	return err
}
