// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/cache"
	"github.com/senspa/spadmin-go/internal/listview"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/model"
	"github.com/senspa/spadmin-go/internal/render"
)

const cacheKeySlides = "slides"

// slidePipeline adapts the list pipeline to slides. Slides have no
// category; the role tab is a separate pre-filter.
var slidePipeline = listview.Pipeline[model.Slide]{
	ID:          func(s model.Slide) string { return s.ID },
	Name:        func(s model.Slide) string { return s.Title },
	Description: func(s model.Slide) string { return s.Description },
	CreatedAt:   func(s model.Slide) time.Time { return s.CreatedAt },
	Defaults: listview.Defaults{
		SortField: listview.SortByCreatedAt,
		SortDir:   listview.DirectionDESC,
		PageSize:  DefaultPageSize,
	},
}

// SlidesHandler handles banner slide management routes.
type SlidesHandler struct {
	client   *api.Client
	renderer *render.Renderer
	cache    *cache.TypedCache[[]model.Slide]
}

// NewSlidesHandler creates a new SlidesHandler.
func NewSlidesHandler(client *api.Client, renderer *render.Renderer, cacher cache.Cacher) *SlidesHandler {
	return &SlidesHandler{
		client:   client,
		renderer: renderer,
		cache:    cache.NewTypedCache[[]model.Slide](cacher, 0),
	}
}

// SlidesListData holds data for the slide list template.
type SlidesListData struct {
	Page  listview.Page[model.Slide]
	State listview.State
	Role  string
	Roles []string
	Query string
}

// SlideFormData holds data for the slide form template.
type SlideFormData struct {
	ID          string
	Title       string
	Description string
	Image       string
	Role        string
	Roles       []string
	Errors      map[string]string
}

func (h *SlidesHandler) fetch(ctx context.Context) ([]model.Slide, error) {
	items, err := h.cache.GetOrSet(ctx, cacheKeySlides, func() (*[]model.Slide, error) {
		list, _, err := h.client.Slides.List(ctx, "")
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

func (h *SlidesHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, cacheKeySlides); err != nil {
		slog.Warn("failed to invalidate slide cache", "error", err)
	}
}

// List handles GET /admin/slides. The ?role= tab restricts slides to
// one placement; within a tab the display order is the persisted order
// so drag-reordering shows its effect immediately.
func (h *SlidesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	state := parseListState(r, slidePipeline.Defaults)

	role := r.URL.Query().Get("role")
	if role != "" && !slices.Contains(model.ValidSlideRoles, role) {
		role = ""
	}

	td := render.TemplateData{Title: "Slide", User: user, Active: "slides"}

	all, err := h.fetch(r.Context())
	if err != nil {
		slog.Error("failed to list slides", "error", err)
		td.Flash = errorMessage(err)
		td.FlashType = FlashError
	}

	var ofRole []model.Slide
	for _, s := range all {
		if role == "" || s.Role == role {
			ofRole = append(ofRole, s)
		}
	}
	sort.SliceStable(ofRole, func(i, j int) bool { return ofRole[i].Order < ofRole[j].Order })

	page := slidePipeline.Apply(ofRole, state)
	if state.Search == "" && state.SortField == slidePipeline.Defaults.SortField && state.SortDir == slidePipeline.Defaults.SortDir {
		// Keep the persisted order when the user has not asked for a
		// different sort.
		page = listview.Paginate(ofRole, state.Page, state.PageSize)
	}

	query := listQuery(state)
	if role != "" {
		query += "&role=" + role
	}
	td.Data = SlidesListData{
		Page:  page,
		State: state,
		Role:  role,
		Roles: model.ValidSlideRoles,
		Query: query,
	}
	if err := h.renderer.Render(w, r, "admin/slides_list", td); err != nil {
		renderError(w, "admin/slides_list", err)
	}
}

// NewForm handles GET /admin/slides/new.
func (h *SlidesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, SlideFormData{
		Role:  r.URL.Query().Get("role"),
		Roles: model.ValidSlideRoles,
	}, "Thêm slide")
}

// Create handles POST /admin/slides.
func (h *SlidesHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// EditForm handles GET /admin/slides/{id}/edit.
func (h *SlidesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	slide, err := h.client.Slides.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load slide", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), errorMessage(err), FlashError)
		return
	}

	h.renderForm(w, r, SlideFormData{
		ID:          slide.ID,
		Title:       slide.Title,
		Description: slide.Description,
		Image:       slide.Image,
		Role:        slide.Role,
		Roles:       model.ValidSlideRoles,
	}, "Sửa slide")
}

// Update handles POST /admin/slides/{id}.
func (h *SlidesHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *SlidesHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadSize + 1<<20); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	oldImage := r.FormValue("existing_image")
	form := SlideFormData{
		ID:          id,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Image:       oldImage,
		Role:        r.FormValue("role"),
		Roles:       model.ValidSlideRoles,
		Errors:      map[string]string{},
	}

	if form.Title == "" {
		form.Errors["title"] = "Vui lòng nhập tiêu đề"
	}
	if !slices.Contains(model.ValidSlideRoles, form.Role) {
		form.Errors["role"] = "Vị trí hiển thị không hợp lệ"
	}

	image, err := uploadFormImage(r.Context(), h.client.Uploads, r, "image")
	if err != nil {
		slog.Error("slide image upload failed", "error", err)
		form.Errors["image"] = uploadErrorMessage(err)
	}
	if image == "" {
		image = oldImage
	}
	if image == "" && form.Errors["image"] == "" {
		// A slide is nothing but its image.
		form.Errors["image"] = "Vui lòng chọn ảnh"
	}
	form.Image = image

	if len(form.Errors) > 0 {
		h.renderForm(w, r, form, "Slide")
		return
	}

	payload := api.SlidePayload{
		Title:       form.Title,
		Description: form.Description,
		Image:       image,
		Role:        form.Role,
	}

	var saveErr error
	if id == "" {
		_, saveErr = h.client.Slides.Create(r.Context(), payload)
	} else {
		_, saveErr = h.client.Slides.Update(r.Context(), id, payload)
	}
	if saveErr != nil {
		slog.Error("failed to save slide", "id", id, "error", saveErr)
		form.Errors["form"] = errorMessage(saveErr)
		h.renderForm(w, r, form, "Slide")
		return
	}

	h.invalidate(r.Context())

	message, flashType := "Đã lưu slide", FlashSuccess
	if id != "" && image != oldImage && !deleteOldImage(r.Context(), h.client.Uploads, oldImage, image) {
		message, flashType = "Đã lưu slide, nhưng không thể xóa ảnh cũ", FlashWarning
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteSlides), message, flashType)
}

// Reorder handles POST /admin/slides/reorder - the form posts the
// slide IDs of one role tab in their new display order.
func (h *SlidesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	slides, err := h.fetch(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), errorMessage(err), FlashError)
		return
	}

	ids := listview.RestrictSelection(r.Form["order"], slides, slidePipeline.ID)
	if len(ids) == 0 {
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Không có slide nào để sắp xếp", FlashWarning)
		return
	}

	items := make([]model.SlideOrder, len(ids))
	for i, id := range ids {
		items[i] = model.SlideOrder{ID: id, Order: i + 1}
	}
	if err := h.client.Slides.UpdateOrder(r.Context(), items); err != nil {
		slog.Error("failed to reorder slides", "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), errorMessage(err), FlashError)
		return
	}

	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Đã lưu thứ tự hiển thị", FlashSuccess)
}

// Delete handles POST /admin/slides/{id}/delete.
func (h *SlidesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Slides.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete slide", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Đã xóa slide", FlashSuccess)
}

// BulkDelete handles POST /admin/slides/delete.
func (h *SlidesHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	slides, err := h.fetch(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), errorMessage(err), FlashError)
		return
	}

	ids := formSelection(r, slides, slidePipeline.ID)
	if len(ids) == 0 {
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Chưa chọn mục nào để xóa", FlashWarning)
		return
	}

	err = h.client.Slides.DeleteMany(r.Context(), ids)
	h.invalidate(r.Context())
	if err != nil {
		slog.Error("bulk delete failed", "entity", "slides", "count", len(ids), "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Không thể xóa một số mục, vui lòng tải lại trang", FlashError)
		return
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteSlides), "Đã xóa các mục đã chọn", FlashSuccess)
}

func (h *SlidesHandler) renderForm(w http.ResponseWriter, r *http.Request, form SlideFormData, title string) {
	td := render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Active: "slides",
		Data:   form,
	}
	if err := h.renderer.Render(w, r, "admin/slides_form", td); err != nil {
		renderError(w, "admin/slides_form", err)
	}
}
