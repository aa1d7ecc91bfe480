// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// SettingsService manages the public website's settings record. The
// backend exposes a collection endpoint but the site uses at most one
// record; First returns it when present.
type SettingsService struct {
	c *Client
}

// List fetches all settings records.
func (s *SettingsService) List(ctx context.Context) ([]model.WebSettings, error) {
	items, _, err := getCollection[model.WebSettings](ctx, s.c, "/web-settings", nil)
	return items, err
}

// First returns the active settings record, or nil when none exists.
func (s *SettingsService) First(ctx context.Context) (*model.WebSettings, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Create stores a new settings record.
func (s *SettingsService) Create(ctx context.Context, settings model.WebSettings) (model.WebSettings, error) {
	return writeObject[model.WebSettings](ctx, s.c, http.MethodPost, "/web-settings", settings)
}

// Update replaces an existing settings record.
func (s *SettingsService) Update(ctx context.Context, id string, settings model.WebSettings) (model.WebSettings, error) {
	return writeObject[model.WebSettings](ctx, s.c, http.MethodPatch, "/web-settings/"+url.PathEscape(id), settings)
}

// Save creates the settings record on first save and updates it after.
func (s *SettingsService) Save(ctx context.Context, settings model.WebSettings) (model.WebSettings, error) {
	if settings.ID == "" {
		return s.Create(ctx, settings)
	}
	return s.Update(ctx, settings.ID, settings)
}
