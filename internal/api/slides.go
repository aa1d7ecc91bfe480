// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// SlideService manages banner slides.
type SlideService struct {
	c *Client
}

// SlidePayload is the write shape for slides.
type SlidePayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	Role        string `json:"role"`
	Order       int    `json:"order,omitempty"`
}

// List fetches all slides, optionally restricted to one role.
func (s *SlideService) List(ctx context.Context, role string) ([]model.Slide, Meta, error) {
	query := url.Values{"page": {"1"}, "limit": {"1000"}}
	if role != "" {
		query.Set("role", role)
	}
	return getCollection[model.Slide](ctx, s.c, "/slides", query)
}

// Get fetches one slide.
func (s *SlideService) Get(ctx context.Context, id string) (model.Slide, error) {
	return getObject[model.Slide](ctx, s.c, "/slides/"+url.PathEscape(id))
}

// Create creates a slide.
func (s *SlideService) Create(ctx context.Context, p SlidePayload) (model.Slide, error) {
	return writeObject[model.Slide](ctx, s.c, http.MethodPost, "/slides", p)
}

// Update updates a slide.
func (s *SlideService) Update(ctx context.Context, id string, p SlidePayload) (model.Slide, error) {
	return writeObject[model.Slide](ctx, s.c, http.MethodPatch, "/slides/"+url.PathEscape(id), p)
}

// Delete removes a slide.
func (s *SlideService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/slides/"+url.PathEscape(id), nil, nil)
	return err
}

// DeleteMany removes the selected slides concurrently.
func (s *SlideService) DeleteMany(ctx context.Context, ids []string) error {
	return forEach(ctx, ids, s.Delete)
}

// UpdateOrder persists a new display order for the given slides.
func (s *SlideService) UpdateOrder(ctx context.Context, items []model.SlideOrder) error {
	body := map[string]any{"items": items}
	_, err := s.c.do(ctx, http.MethodPatch, "/slides/order", nil, body)
	return err
}
