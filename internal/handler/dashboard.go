// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/render"
)

// DashboardHandler renders the admin landing page.
type DashboardHandler struct {
	client   *api.Client
	renderer *render.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(client *api.Client, renderer *render.Renderer) *DashboardHandler {
	return &DashboardHandler{client: client, renderer: renderer}
}

// DashboardData holds the entity counts shown on the dashboard.
type DashboardData struct {
	BlogCount      int
	ServiceCount   int
	CategoryCount  int
	SlideCount     int
	ReviewCount    int
	PendingReviews int
	ContactCount   int
	UnreadContacts int
}

// Show handles GET /admin - fetches entity counts concurrently. A
// failing count leaves its tile at zero rather than failing the page.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var data DashboardData
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		_, meta, err := h.client.Blogs.List(ctx)
		if err == nil {
			data.BlogCount = meta.TotalItems
		}
		return err
	})
	g.Go(func() error {
		_, meta, err := h.client.Services.List(ctx)
		if err == nil {
			data.ServiceCount = meta.TotalItems
		}
		return err
	})
	g.Go(func() error {
		_, meta, err := h.client.Categories.List(ctx, "")
		if err == nil {
			data.CategoryCount = meta.TotalItems
		}
		return err
	})
	g.Go(func() error {
		_, meta, err := h.client.Slides.List(ctx, "")
		if err == nil {
			data.SlideCount = meta.TotalItems
		}
		return err
	})
	g.Go(func() error {
		reviews, meta, err := h.client.Reviews.List(ctx)
		if err != nil {
			return err
		}
		data.ReviewCount = meta.TotalItems
		for _, rev := range reviews {
			if !rev.Approved {
				data.PendingReviews++
			}
		}
		return nil
	})
	g.Go(func() error {
		contacts, meta, err := h.client.Contacts.List(ctx)
		if err != nil {
			return err
		}
		data.ContactCount = meta.TotalItems
		for _, c := range contacts {
			if !c.Read {
				data.UnreadContacts++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to load dashboard counts", "error", err)
	}

	td := render.TemplateData{
		Title:  "Tổng quan",
		User:   user,
		Active: "dashboard",
		Data:   data,
	}
	if err := h.renderer.Render(w, r, "admin/dashboard", td); err != nil {
		renderError(w, "admin/dashboard", err)
	}
}
