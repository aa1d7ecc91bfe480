// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senspa/spadmin-go/internal/model"
)

// ReviewService moderates customer reviews.
type ReviewService struct {
	c *Client
}

// List fetches all reviews.
func (s *ReviewService) List(ctx context.Context) ([]model.Review, Meta, error) {
	query := url.Values{"page": {"1"}, "limit": {"1000"}}
	return getCollection[model.Review](ctx, s.c, "/reviews", query)
}

// ToggleApproval flips a review's approved flag.
func (s *ReviewService) ToggleApproval(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodPatch, "/reviews/"+url.PathEscape(id)+"/toggle-approval", nil, nil)
	return err
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil)
	return err
}
