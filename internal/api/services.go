// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// ServiceService manages spa service offerings.
type ServiceService struct {
	c *Client
}

// ServicePayload is the write shape for services.
type ServicePayload struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Slug         string              `json:"slug,omitempty"`
	Duration     int                 `json:"duration"`
	CategoryID   string              `json:"categoryId"`
	CoverImage   string              `json:"coverImage,omitempty"`
	Translations []model.Translation `json:"translations"`
}

// List fetches all services.
func (s *ServiceService) List(ctx context.Context) ([]model.Service, Meta, error) {
	query := url.Values{"page": {"1"}, "limit": {"1000"}}
	return getCollection[model.Service](ctx, s.c, "/services", query)
}

// Get fetches one service.
func (s *ServiceService) Get(ctx context.Context, id string) (model.Service, error) {
	return getObject[model.Service](ctx, s.c, "/services/"+url.PathEscape(id))
}

// Create creates a service.
func (s *ServiceService) Create(ctx context.Context, p ServicePayload) (model.Service, error) {
	return writeObject[model.Service](ctx, s.c, http.MethodPost, "/services", p)
}

// Update updates a service.
func (s *ServiceService) Update(ctx context.Context, id string, p ServicePayload) (model.Service, error) {
	return writeObject[model.Service](ctx, s.c, http.MethodPatch, "/services/"+url.PathEscape(id), p)
}

// Delete removes a service.
func (s *ServiceService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/services/"+url.PathEscape(id), nil, nil)
	return err
}

// DeleteMany removes the selected services concurrently.
func (s *ServiceService) DeleteMany(ctx context.Context, ids []string) error {
	return forEach(ctx, ids, s.Delete)
}
