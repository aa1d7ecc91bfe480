// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// ContactService manages contact form messages.
type ContactService struct {
	c *Client
}

// List fetches all contact messages.
func (s *ContactService) List(ctx context.Context) ([]model.ContactMessage, Meta, error) {
	query := url.Values{"page": {"1"}, "limit": {"1000"}}
	return getCollection[model.ContactMessage](ctx, s.c, "/contact", query)
}

// MarkRead marks a message as read.
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodPatch, "/contact/"+url.PathEscape(id)+"/read", nil, nil)
	return err
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/contact/"+url.PathEscape(id), nil, nil)
	return err
}
