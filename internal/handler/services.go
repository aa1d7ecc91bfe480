// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/cache"
	"github.com/senspa/spadmin-go/internal/listview"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/model"
	"github.com/senspa/spadmin-go/internal/render"
	"github.com/senspa/spadmin-go/internal/translation"
)

const cacheKeyServices = "services"

// servicePipeline adapts the list pipeline to spa services.
var servicePipeline = listview.Pipeline[model.Service]{
	ID:          func(s model.Service) string { return s.ID },
	Name:        model.Service.DisplayName,
	Description: model.Service.DisplayDescription,
	CategoryID:  func(s model.Service) string { return s.CategoryID },
	CreatedAt:   func(s model.Service) time.Time { return s.CreatedAt },
	Defaults: listview.Defaults{
		SortField: listview.SortByCreatedAt,
		SortDir:   listview.DirectionDESC,
		PageSize:  DefaultPageSize,
	},
}

// ServicesHandler handles spa service management routes.
type ServicesHandler struct {
	client     *api.Client
	renderer   *render.Renderer
	cache      *cache.TypedCache[[]model.Service]
	categories *cache.TypedCache[[]model.Category]
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(client *api.Client, renderer *render.Renderer, cacher cache.Cacher) *ServicesHandler {
	return &ServicesHandler{
		client:     client,
		renderer:   renderer,
		cache:      cache.NewTypedCache[[]model.Service](cacher, 0),
		categories: cache.NewTypedCache[[]model.Category](cacher, 0),
	}
}

// ServicesListData holds data for the service list template.
type ServicesListData struct {
	Page       listview.Page[model.Service]
	State      listview.State
	Categories []categoryOption
	Query      string
}

// ServiceFormData holds data for the service form template.
type ServiceFormData struct {
	ID         string
	Entries    []model.Translation
	Duration   string
	CategoryID string
	CoverImage string
	Categories []categoryOption
	Errors     map[string]string
}

func (h *ServicesHandler) fetch(ctx context.Context) ([]model.Service, error) {
	items, err := h.cache.GetOrSet(ctx, cacheKeyServices, func() (*[]model.Service, error) {
		list, _, err := h.client.Services.List(ctx)
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

func (h *ServicesHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, cacheKeyServices); err != nil {
		slog.Warn("failed to invalidate service cache", "error", err)
	}
}

func (h *ServicesHandler) serviceCategories(ctx context.Context) []categoryOption {
	cats, err := h.categories.GetOrSet(ctx, cacheKeyCategories, func() (*[]model.Category, error) {
		list, _, err := h.client.Categories.List(ctx, "")
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		slog.Warn("failed to load categories", "error", err)
		return nil
	}
	var ofType []model.Category
	for _, c := range *cats {
		if c.Type == model.CategoryTypeService {
			ofType = append(ofType, c)
		}
	}
	return categoryOptions(ofType)
}

// List handles GET /admin/services.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	state := parseListState(r, servicePipeline.Defaults)

	td := render.TemplateData{Title: "Dịch vụ", User: user, Active: "services"}

	services, err := h.fetch(r.Context())
	if err != nil {
		slog.Error("failed to list services", "error", err)
		td.Flash = errorMessage(err)
		td.FlashType = FlashError
	}

	td.Data = ServicesListData{
		Page:       servicePipeline.Apply(services, state),
		State:      state,
		Categories: h.serviceCategories(r.Context()),
		Query:      listQuery(state),
	}
	if err := h.renderer.Render(w, r, "admin/services_list", td); err != nil {
		renderError(w, "admin/services_list", err)
	}
}

// NewForm handles GET /admin/services/new.
func (h *ServicesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	set := translation.NewSet(nil, model.SupportedLanguages)
	h.renderForm(w, r, ServiceFormData{
		Entries:    set.Entries(),
		Categories: h.serviceCategories(r.Context()),
	}, "Thêm dịch vụ")
}

// Create handles POST /admin/services.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// EditForm handles GET /admin/services/{id}/edit.
func (h *ServicesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	svc, err := h.client.Services.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load service", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteServices), errorMessage(err), FlashError)
		return
	}

	set := translation.NewSet(svc.Translations, model.SupportedLanguages)
	h.renderForm(w, r, ServiceFormData{
		ID:         svc.ID,
		Entries:    set.Entries(),
		Duration:   strconv.Itoa(svc.Duration),
		CategoryID: svc.CategoryID,
		CoverImage: svc.CoverImage,
		Categories: h.serviceCategories(r.Context()),
	}, "Sửa dịch vụ")
}

// Update handles POST /admin/services/{id}.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *ServicesHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadSize + 1<<20); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteServices), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	set := translation.FromForm(r.FormValue, model.SupportedLanguages)
	oldCover := r.FormValue("existing_cover")

	form := ServiceFormData{
		ID:         id,
		Entries:    set.Entries(),
		Duration:   r.FormValue("duration"),
		CategoryID: r.FormValue("category_id"),
		CoverImage: oldCover,
		Categories: h.serviceCategories(r.Context()),
		Errors:     map[string]string{},
	}

	duration, err := strconv.Atoi(form.Duration)
	if err != nil || duration <= 0 {
		form.Errors["duration"] = "Thời lượng phải là số phút dương"
	}
	if form.CategoryID == "" {
		form.Errors["category_id"] = "Vui lòng chọn danh mục"
	}
	if err := set.Validate(); err != nil {
		form.Errors["name_"+model.DefaultLanguage] = "Vui lòng nhập tên tiếng Việt"
	}
	if len(form.Errors) > 0 {
		h.renderForm(w, r, form, "Dịch vụ")
		return
	}

	cover, err := uploadFormImage(r.Context(), h.client.Uploads, r, "cover_image")
	if err != nil {
		slog.Error("cover upload failed", "error", err)
		form.Errors["cover_image"] = uploadErrorMessage(err)
		h.renderForm(w, r, form, "Dịch vụ")
		return
	}
	if cover == "" {
		cover = oldCover
	}
	form.CoverImage = cover

	canonical, _ := set.Get(model.DefaultLanguage)
	payload := api.ServicePayload{
		Name:         canonical.Name,
		Description:  canonical.Description,
		Slug:         set.Slug("service"),
		Duration:     duration,
		CategoryID:   form.CategoryID,
		CoverImage:   cover,
		Translations: set.Payload("service"),
	}

	var saveErr error
	if id == "" {
		_, saveErr = h.client.Services.Create(r.Context(), payload)
	} else {
		_, saveErr = h.client.Services.Update(r.Context(), id, payload)
	}
	if saveErr != nil {
		slog.Error("failed to save service", "id", id, "error", saveErr)
		form.Errors["form"] = errorMessage(saveErr)
		h.renderForm(w, r, form, "Dịch vụ")
		return
	}

	h.invalidate(r.Context())

	message, flashType := "Đã lưu dịch vụ", FlashSuccess
	if id != "" && cover != oldCover && !deleteOldImage(r.Context(), h.client.Uploads, oldCover, cover) {
		message, flashType = "Đã lưu dịch vụ, nhưng không thể xóa ảnh cũ", FlashWarning
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteServices), message, flashType)
}

// Delete handles POST /admin/services/{id}/delete.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Services.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete service", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteServices), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteServices), "Đã xóa dịch vụ", FlashSuccess)
}

// BulkDelete handles POST /admin/services/delete.
func (h *ServicesHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	services, err := h.fetch(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteServices), errorMessage(err), FlashError)
		return
	}

	ids := formSelection(r, services, servicePipeline.ID)
	if len(ids) == 0 {
		flashRedirect(w, r, h.renderer, adminPath(RouteServices), "Chưa chọn mục nào để xóa", FlashWarning)
		return
	}

	err = h.client.Services.DeleteMany(r.Context(), ids)
	h.invalidate(r.Context())
	if err != nil {
		slog.Error("bulk delete failed", "entity", "services", "count", len(ids), "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteServices), "Không thể xóa một số mục, vui lòng tải lại trang", FlashError)
		return
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteServices), "Đã xóa các mục đã chọn", FlashSuccess)
}

func (h *ServicesHandler) renderForm(w http.ResponseWriter, r *http.Request, form ServiceFormData, title string) {
	td := render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Active: "services",
		Data:   form,
	}
	if err := h.renderer.Render(w, r, "admin/services_form", td); err != nil {
		renderError(w, "admin/services_form", err)
	}
}
