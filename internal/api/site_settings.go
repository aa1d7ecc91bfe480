// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// SiteSettingsService manages the key/value site settings collection.
// Settings are addressed by key; writes go through PUT for keys the
// backend already has and POST for new ones.
type SiteSettingsService struct {
	c *Client
}

// List fetches all site settings.
func (s *SiteSettingsService) List(ctx context.Context) ([]model.SiteSetting, error) {
	items, _, err := getCollection[model.SiteSetting](ctx, s.c, "/settings", nil)
	return items, err
}

// Get fetches one setting by key.
func (s *SiteSettingsService) Get(ctx context.Context, key string) (model.SiteSetting, error) {
	return getObject[model.SiteSetting](ctx, s.c, "/settings/"+url.PathEscape(key))
}

// Create stores a new setting.
func (s *SiteSettingsService) Create(ctx context.Context, st model.SiteSetting) (model.SiteSetting, error) {
	return writeObject[model.SiteSetting](ctx, s.c, http.MethodPost, "/settings", st)
}

// Update replaces the setting stored under a key.
func (s *SiteSettingsService) Update(ctx context.Context, key string, st model.SiteSetting) (model.SiteSetting, error) {
	return writeObject[model.SiteSetting](ctx, s.c, http.MethodPut, "/settings/"+url.PathEscape(key), st)
}

// SaveAll upserts the given settings concurrently, one request per
// key. Keys listed in existing are updated in place, the rest created.
// All writes are awaited; the first failure fails the whole batch and
// nothing is rolled back.
func (s *SiteSettingsService) SaveAll(ctx context.Context, settings []model.SiteSetting, existing map[string]bool) error {
	return forEach(ctx, settings, func(ctx context.Context, st model.SiteSetting) error {
		var err error
		if existing[st.Key] {
			_, err = s.Update(ctx, st.Key, st)
		} else {
			_, err = s.Create(ctx, st)
		}
		return err
	})
}
