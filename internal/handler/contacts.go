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

const cacheKeyContacts = "contacts"

// contactPipeline adapts the list pipeline to contact messages.
var contactPipeline = listview.Pipeline[model.ContactMessage]{
	ID:          func(c model.ContactMessage) string { return c.ID },
	Name:        func(c model.ContactMessage) string { return c.Name },
	Description: func(c model.ContactMessage) string { return c.Message },
	CreatedAt:   func(c model.ContactMessage) time.Time { return c.CreatedAt },
	Defaults: listview.Defaults{
		SortField: listview.SortByCreatedAt,
		SortDir:   listview.DirectionDESC,
		PageSize:  DefaultPageSize,
	},
}

// ContactsHandler handles contact message routes.
type ContactsHandler struct {
	client   *api.Client
	renderer *render.Renderer
	cache    *cache.TypedCache[[]model.ContactMessage]
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(client *api.Client, renderer *render.Renderer, cacher cache.Cacher) *ContactsHandler {
	return &ContactsHandler{
		client:   client,
		renderer: renderer,
		cache:    cache.NewTypedCache[[]model.ContactMessage](cacher, 0),
	}
}

// ContactsListData holds data for the contact message list template.
type ContactsListData struct {
	Page   listview.Page[model.ContactMessage]
	State  listview.State
	Unread int
	Query  string
}

func (h *ContactsHandler) fetch(ctx context.Context) ([]model.ContactMessage, error) {
	items, err := h.cache.GetOrSet(ctx, cacheKeyContacts, func() (*[]model.ContactMessage, error) {
		list, _, err := h.client.Contacts.List(ctx)
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

func (h *ContactsHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, cacheKeyContacts); err != nil {
		slog.Warn("failed to invalidate contact cache", "error", err)
	}
}

// List handles GET /admin/contacts.
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	state := parseListState(r, contactPipeline.Defaults)

	td := render.TemplateData{Title: "Tin nhắn liên hệ", User: user, Active: "contacts"}

	contacts, err := h.fetch(r.Context())
	if err != nil {
		slog.Error("failed to list contacts", "error", err)
		td.Flash = errorMessage(err)
		td.FlashType = FlashError
	}

	unread := 0
	for _, c := range contacts {
		if !c.Read {
			unread++
		}
	}

	td.Data = ContactsListData{
		Page:   contactPipeline.Apply(contacts, state),
		State:  state,
		Unread: unread,
		Query:  listQuery(state),
	}
	if err := h.renderer.Render(w, r, "admin/contacts_list", td); err != nil {
		renderError(w, "admin/contacts_list", err)
	}
}

// MarkRead handles POST /admin/contacts/{id}/read.
func (h *ContactsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Contacts.MarkRead(r.Context(), id); err != nil {
		slog.Error("failed to mark contact as read", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteContacts), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteContacts), "Đã đánh dấu là đã đọc", FlashSuccess)
}

// Delete handles POST /admin/contacts/{id}/delete.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Contacts.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete contact", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteContacts), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteContacts), "Đã xóa tin nhắn", FlashSuccess)
}
