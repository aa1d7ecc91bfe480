// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/cache"
	"github.com/senspa/spadmin-go/internal/listview"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/model"
	"github.com/senspa/spadmin-go/internal/render"
)

const cacheKeyReviews = "reviews"

// reviewPipeline adapts the list pipeline to customer reviews.
var reviewPipeline = listview.Pipeline[model.Review]{
	ID:          func(rv model.Review) string { return rv.ID },
	Name:        func(rv model.Review) string { return rv.Author },
	Description: func(rv model.Review) string { return rv.Comment },
	CreatedAt:   func(rv model.Review) time.Time { return rv.CreatedAt },
	Defaults: listview.Defaults{
		SortField: listview.SortByCreatedAt,
		SortDir:   listview.DirectionDESC,
		PageSize:  DefaultPageSize,
	},
}

// ReviewsHandler handles review moderation routes.
type ReviewsHandler struct {
	client   *api.Client
	renderer *render.Renderer
	cache    *cache.TypedCache[[]model.Review]
}

// NewReviewsHandler creates a new ReviewsHandler.
func NewReviewsHandler(client *api.Client, renderer *render.Renderer, cacher cache.Cacher) *ReviewsHandler {
	return &ReviewsHandler{
		client:   client,
		renderer: renderer,
		cache:    cache.NewTypedCache[[]model.Review](cacher, 0),
	}
}

// ReviewsListData holds data for the review list template.
type ReviewsListData struct {
	Page    listview.Page[model.Review]
	State   listview.State
	Pending int
	Query   string
}

func (h *ReviewsHandler) fetch(ctx context.Context) ([]model.Review, error) {
	items, err := h.cache.GetOrSet(ctx, cacheKeyReviews, func() (*[]model.Review, error) {
		list, _, err := h.client.Reviews.List(ctx)
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return *items, nil
}

func (h *ReviewsHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, cacheKeyReviews); err != nil {
		slog.Warn("failed to invalidate review cache", "error", err)
	}
}

// List handles GET /admin/reviews.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	state := parseListState(r, reviewPipeline.Defaults)

	td := render.TemplateData{Title: "Đánh giá", User: user, Active: "reviews"}

	reviews, err := h.fetch(r.Context())
	if err != nil {
		slog.Error("failed to list reviews", "error", err)
		td.Flash = errorMessage(err)
		td.FlashType = FlashError
	}

	pending := 0
	for _, rv := range reviews {
		if !rv.Approved {
			pending++
		}
	}

	td.Data = ReviewsListData{
		Page:    reviewPipeline.Apply(reviews, state),
		State:   state,
		Pending: pending,
		Query:   listQuery(state),
	}
	if err := h.renderer.Render(w, r, "admin/reviews_list", td); err != nil {
		renderError(w, "admin/reviews_list", err)
	}
}

// ToggleApproval handles POST /admin/reviews/{id}/toggle.
func (h *ReviewsHandler) ToggleApproval(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Reviews.ToggleApproval(r.Context(), id); err != nil {
		slog.Error("failed to toggle review approval", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteReviews), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteReviews), "Đã cập nhật trạng thái duyệt", FlashSuccess)
}

// Delete handles POST /admin/reviews/{id}/delete.
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Reviews.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete review", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteReviews), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteReviews), "Đã xóa đánh giá", FlashSuccess)
}
