// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
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

const cacheKeyCategories = "categories"

// categoryPipeline adapts the list pipeline to categories. The type
// tab is a separate pre-filter, not a pipeline concern.
var categoryPipeline = listview.Pipeline[model.Category]{
	ID:          func(c model.Category) string { return c.ID },
	Name:        model.Category.DisplayName,
	Description: model.Category.DisplayDescription,
	CreatedAt:   func(c model.Category) time.Time { return c.CreatedAt },
	Defaults: listview.Defaults{
		SortField: listview.SortByCreatedAt,
		SortDir:   listview.DirectionDESC,
		PageSize:  DefaultPageSize,
	},
}

// CategoriesHandler handles category management routes.
type CategoriesHandler struct {
	client   *api.Client
	renderer *render.Renderer
	cache    *cache.TypedCache[[]model.Category]
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(client *api.Client, renderer *render.Renderer, cacher cache.Cacher) *CategoriesHandler {
	return &CategoriesHandler{
		client:   client,
		renderer: renderer,
		cache:    cache.NewTypedCache[[]model.Category](cacher, 0),
	}
}

// CategoriesListData holds data for the category list template.
type CategoriesListData struct {
	Page  listview.Page[model.Category]
	State listview.State
	Type  string
	Types []string
	Query string
}

// CategoryFormData holds data for the category form template.
type CategoryFormData struct {
	ID         string
	Entries    []model.Translation
	Type       string
	CoverImage string
	Errors     map[string]string
}

func (h *CategoriesHandler) fetch(ctx context.Context) ([]model.Category, error) {
	items, err := h.cache.GetOrSet(ctx, cacheKeyCategories, func() (*[]model.Category, error) {
		list, _, err := h.client.Categories.List(ctx, "")
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

func (h *CategoriesHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, cacheKeyCategories); err != nil {
		slog.Warn("failed to invalidate category cache", "error", err)
	}
}

// List handles GET /admin/categories. The ?type= tab restricts to one
// category type; soft-deleted categories stay visible so they can be
// restored.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	state := parseListState(r, categoryPipeline.Defaults)

	typeTab := r.URL.Query().Get("type")
	if !slices.Contains(model.ValidCategoryTypes, typeTab) {
		typeTab = model.CategoryTypeBlog
	}

	td := render.TemplateData{Title: "Danh mục", User: user, Active: "categories"}

	cats, err := h.fetch(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		td.Flash = errorMessage(err)
		td.FlashType = FlashError
	}

	var ofType []model.Category
	for _, c := range cats {
		if c.Type == typeTab {
			ofType = append(ofType, c)
		}
	}

	td.Data = CategoriesListData{
		Page:  categoryPipeline.Apply(ofType, state),
		State: state,
		Type:  typeTab,
		Types: model.ValidCategoryTypes,
		Query: listQuery(state) + "&type=" + typeTab,
	}
	if err := h.renderer.Render(w, r, "admin/categories_list", td); err != nil {
		renderError(w, "admin/categories_list", err)
	}
}

// NewForm handles GET /admin/categories/new.
func (h *CategoriesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	set := translation.NewSet(nil, model.SupportedLanguages)
	h.renderForm(w, r, CategoryFormData{
		Entries: set.Entries(),
		Type:    r.URL.Query().Get("type"),
	}, "Thêm danh mục")
}

// Create handles POST /admin/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// EditForm handles GET /admin/categories/{id}/edit.
func (h *CategoriesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cat, err := h.client.Categories.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load category", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), errorMessage(err), FlashError)
		return
	}

	set := translation.NewSet(cat.Translations, model.SupportedLanguages)
	h.renderForm(w, r, CategoryFormData{
		ID:         cat.ID,
		Entries:    set.Entries(),
		Type:       cat.Type,
		CoverImage: cat.CoverImage,
	}, "Sửa danh mục")
}

// Update handles POST /admin/categories/{id}.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *CategoriesHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadSize + 1<<20); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	set := translation.FromForm(r.FormValue, model.SupportedLanguages)
	oldCover := r.FormValue("existing_cover")

	form := CategoryFormData{
		ID:         id,
		Entries:    set.Entries(),
		Type:       r.FormValue("type"),
		CoverImage: oldCover,
		Errors:     map[string]string{},
	}

	if !slices.Contains(model.ValidCategoryTypes, form.Type) {
		form.Errors["type"] = "Loại danh mục không hợp lệ"
	}
	if err := set.Validate(); err != nil {
		form.Errors["name_"+model.DefaultLanguage] = "Vui lòng nhập tên tiếng Việt"
	}
	if len(form.Errors) > 0 {
		h.renderForm(w, r, form, "Danh mục")
		return
	}

	cover, err := uploadFormImage(r.Context(), h.client.Uploads, r, "cover_image")
	if err != nil {
		slog.Error("cover upload failed", "error", err)
		form.Errors["cover_image"] = uploadErrorMessage(err)
		h.renderForm(w, r, form, "Danh mục")
		return
	}
	if cover == "" {
		cover = oldCover
	}
	form.CoverImage = cover

	canonical, _ := set.Get(model.DefaultLanguage)
	payload := api.CategoryPayload{
		Name:         canonical.Name,
		Description:  canonical.Description,
		Slug:         set.Slug("category"),
		Type:         form.Type,
		CoverImage:   cover,
		Translations: set.Payload("category"),
	}

	var saveErr error
	if id == "" {
		_, saveErr = h.client.Categories.Create(r.Context(), payload)
	} else {
		_, saveErr = h.client.Categories.Update(r.Context(), id, payload)
	}
	if saveErr != nil {
		slog.Error("failed to save category", "id", id, "error", saveErr)
		form.Errors["form"] = errorMessage(saveErr)
		h.renderForm(w, r, form, "Danh mục")
		return
	}

	h.invalidate(r.Context())

	message, flashType := "Đã lưu danh mục", FlashSuccess
	if id != "" && cover != oldCover && !deleteOldImage(r.Context(), h.client.Uploads, oldCover, cover) {
		message, flashType = "Đã lưu danh mục, nhưng không thể xóa ảnh cũ", FlashWarning
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteCategories), message, flashType)
}

// UpdateStatus handles POST /admin/categories/{id}/status - activates
// or deactivates a category.
func (h *CategoriesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	active := r.FormValue("active") == "true"
	if err := h.client.Categories.UpdateStatus(r.Context(), id, active); err != nil {
		slog.Error("failed to update category status", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Đã cập nhật trạng thái", FlashSuccess)
}

// Restore handles POST /admin/categories/{id}/restore - undoes a soft
// delete.
func (h *CategoriesHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Categories.Restore(r.Context(), id); err != nil {
		slog.Error("failed to restore category", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Đã khôi phục danh mục", FlashSuccess)
}

// Delete handles POST /admin/categories/{id}/delete. The backend soft
// deletes; the row stays listed with a restore action.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Categories.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete category", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Đã xóa danh mục", FlashSuccess)
}

// BulkDelete handles POST /admin/categories/delete.
func (h *CategoriesHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	cats, err := h.fetch(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), errorMessage(err), FlashError)
		return
	}

	ids := formSelection(r, cats, categoryPipeline.ID)
	if len(ids) == 0 {
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Chưa chọn mục nào để xóa", FlashWarning)
		return
	}

	err = h.client.Categories.DeleteMany(r.Context(), ids)
	h.invalidate(r.Context())
	if err != nil {
		slog.Error("bulk delete failed", "entity", "categories", "count", len(ids), "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Không thể xóa một số mục, vui lòng tải lại trang", FlashError)
		return
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteCategories), "Đã xóa các mục đã chọn", FlashSuccess)
}

func (h *CategoriesHandler) renderForm(w http.ResponseWriter, r *http.Request, form CategoryFormData, title string) {
	td := render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Active: "categories",
		Data:   form,
	}
	if err := h.renderer.Render(w, r, "admin/categories_form", td); err != nil {
		renderError(w, "admin/categories_form", err)
	}
}
