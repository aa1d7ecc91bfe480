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
	"github.com/senspa/spadmin-go/internal/translation"
)

const cacheKeyBlogs = "blogs"

// blogPipeline adapts the list pipeline to blog posts.
var blogPipeline = listview.Pipeline[model.Blog]{
	ID:          func(b model.Blog) string { return b.ID },
	Name:        model.Blog.DisplayTitle,
	Description: model.Blog.DisplayDescription,
	CategoryID:  func(b model.Blog) string { return b.CategoryID },
	CreatedAt:   func(b model.Blog) time.Time { return b.CreatedAt },
	Defaults: listview.Defaults{
		SortField: listview.SortByCreatedAt,
		SortDir:   listview.DirectionDESC,
		PageSize:  DefaultPageSize,
	},
}

// BlogsHandler handles blog post management routes.
type BlogsHandler struct {
	client     *api.Client
	renderer   *render.Renderer
	cache      *cache.TypedCache[[]model.Blog]
	categories *cache.TypedCache[[]model.Category]
}

// NewBlogsHandler creates a new BlogsHandler.
func NewBlogsHandler(client *api.Client, renderer *render.Renderer, cacher cache.Cacher) *BlogsHandler {
	return &BlogsHandler{
		client:     client,
		renderer:   renderer,
		cache:      cache.NewTypedCache[[]model.Blog](cacher, 0),
		categories: cache.NewTypedCache[[]model.Category](cacher, 0),
	}
}

// BlogsListData holds data for the blog list template.
type BlogsListData struct {
	Page       listview.Page[model.Blog]
	State      listview.State
	Categories []categoryOption
	Query      string
}

// BlogFormData holds data for the blog form template.
type BlogFormData struct {
	ID         string
	Entries    []model.Translation
	CategoryID string
	CoverImage string
	Published  bool
	Categories []categoryOption
	Errors     map[string]string
}

func (h *BlogsHandler) fetch(ctx context.Context) ([]model.Blog, error) {
	items, err := h.cache.GetOrSet(ctx, cacheKeyBlogs, func() (*[]model.Blog, error) {
		list, _, err := h.client.Blogs.List(ctx)
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

func (h *BlogsHandler) invalidate(ctx context.Context) {
	if err := h.cache.Delete(ctx, cacheKeyBlogs); err != nil {
		slog.Warn("failed to invalidate blog cache", "error", err)
	}
}

func (h *BlogsHandler) blogCategories(ctx context.Context) []categoryOption {
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
		if c.Type == model.CategoryTypeBlog {
			ofType = append(ofType, c)
		}
	}
	return categoryOptions(ofType)
}

// List handles GET /admin/blogs.
func (h *BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	state := parseListState(r, blogPipeline.Defaults)

	data := BlogsListData{
		State:      state,
		Categories: h.blogCategories(r.Context()),
		Query:      listQuery(state),
	}
	td := render.TemplateData{Title: "Bài viết", User: user, Active: "blogs"}

	blogs, err := h.fetch(r.Context())
	if err != nil {
		slog.Error("failed to list blogs", "error", err)
		td.Flash = errorMessage(err)
		td.FlashType = FlashError
	}
	data.Page = blogPipeline.Apply(blogs, state)

	td.Data = data
	if err := h.renderer.Render(w, r, "admin/blogs_list", td); err != nil {
		renderError(w, "admin/blogs_list", err)
	}
}

// NewForm handles GET /admin/blogs/new.
func (h *BlogsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	set := translation.NewSet(nil, model.SupportedLanguages)
	h.renderForm(w, r, BlogFormData{
		Entries:    set.Entries(),
		Categories: h.blogCategories(r.Context()),
	}, "Thêm bài viết")
}

// Create handles POST /admin/blogs.
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// EditForm handles GET /admin/blogs/{id}/edit.
func (h *BlogsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.client.Blogs.Get(r.Context(), id)
	if err != nil {
		slog.Error("failed to load blog", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), errorMessage(err), FlashError)
		return
	}

	set := translation.NewSet(blog.Translations, model.SupportedLanguages)
	h.renderForm(w, r, BlogFormData{
		ID:         blog.ID,
		Entries:    set.Entries(),
		CategoryID: blog.CategoryID,
		CoverImage: blog.CoverImage,
		Published:  blog.Published,
		Categories: h.blogCategories(r.Context()),
	}, "Sửa bài viết")
}

// Update handles POST /admin/blogs/{id}.
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

// save is the shared create/update path. An empty id means create.
func (h *BlogsHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseMultipartForm(maxUploadSize + 1<<20); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	set := translation.FromForm(r.FormValue, model.SupportedLanguages)
	set = sanitizeSetContent(set, model.SupportedLanguages)
	oldCover := r.FormValue("existing_cover")

	form := BlogFormData{
		ID:         id,
		Entries:    set.Entries(),
		CategoryID: r.FormValue("category_id"),
		CoverImage: oldCover,
		Published:  r.FormValue("published") == "on",
		Categories: h.blogCategories(r.Context()),
		Errors:     map[string]string{},
	}

	if err := set.Validate(); err != nil {
		form.Errors["name_"+model.DefaultLanguage] = "Vui lòng nhập tiêu đề tiếng Việt"
		h.renderForm(w, r, form, "Bài viết")
		return
	}

	cover, err := uploadFormImage(r.Context(), h.client.Uploads, r, "cover_image")
	if err != nil {
		slog.Error("cover upload failed", "error", err)
		form.Errors["cover_image"] = uploadErrorMessage(err)
		h.renderForm(w, r, form, "Bài viết")
		return
	}
	if cover == "" {
		cover = oldCover
	}
	form.CoverImage = cover

	canonical, _ := set.Get(model.DefaultLanguage)
	payload := api.BlogPayload{
		Title:       canonical.Name,
		Description: canonical.Description,
		Content:     canonical.Content,
		Slug:        set.Slug("blog"),
		CategoryID:  form.CategoryID,
		CoverImage:  cover,
		Published:   form.Published,
	}

	var saved model.Blog
	var saveErr error
	if id == "" {
		saved, saveErr = h.client.Blogs.Create(r.Context(), payload)
	} else {
		saved, saveErr = h.client.Blogs.Update(r.Context(), id, payload)
	}
	if saveErr != nil {
		slog.Error("failed to save blog", "id", id, "error", saveErr)
		form.Errors["form"] = errorMessage(saveErr)
		h.renderForm(w, r, form, "Bài viết")
		return
	}

	// The translation set is written after the parent record so a new
	// post's writes can target the ID the backend assigned.
	savedID := id
	if savedID == "" {
		savedID = saved.ID
	}
	if err := h.client.Blogs.SaveTranslations(r.Context(), savedID, set.Payload("blog")); err != nil {
		slog.Error("failed to save blog translations", "id", savedID, "error", err)
		h.invalidate(r.Context())
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs),
			"Đã lưu bài viết, nhưng không thể lưu bản dịch", FlashWarning)
		return
	}

	h.invalidate(r.Context())

	message, flashType := "Đã lưu bài viết", FlashSuccess
	if id != "" && cover != oldCover && !deleteOldImage(r.Context(), h.client.Uploads, oldCover, cover) {
		message, flashType = "Đã lưu bài viết, nhưng không thể xóa ảnh cũ", FlashWarning
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), message, flashType)
}

// TogglePublish handles POST /admin/blogs/{id}/toggle.
func (h *BlogsHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Blogs.TogglePublish(r.Context(), id); err != nil {
		slog.Error("failed to toggle blog publish", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), "Đã cập nhật trạng thái", FlashSuccess)
}

// Delete handles POST /admin/blogs/{id}/delete.
func (h *BlogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.client.Blogs.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete blog", "id", id, "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), errorMessage(err), FlashError)
		return
	}
	h.invalidate(r.Context())
	flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), "Đã xóa bài viết", FlashSuccess)
}

// BulkDelete handles POST /admin/blogs/delete. Selected IDs outside
// the current collection are ignored; a partial failure is reported as
// failure even though some rows may already be gone.
func (h *BlogsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.fetch(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), errorMessage(err), FlashError)
		return
	}

	ids := formSelection(r, blogs, blogPipeline.ID)
	if len(ids) == 0 {
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), "Chưa chọn mục nào để xóa", FlashWarning)
		return
	}

	err = h.client.Blogs.DeleteMany(r.Context(), ids)
	h.invalidate(r.Context())
	if err != nil {
		slog.Error("bulk delete failed", "entity", "blogs", "count", len(ids), "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), "Không thể xóa một số mục, vui lòng tải lại trang", FlashError)
		return
	}
	flashRedirect(w, r, h.renderer, adminPath(RouteBlogs), "Đã xóa các mục đã chọn", FlashSuccess)
}

func (h *BlogsHandler) renderForm(w http.ResponseWriter, r *http.Request, form BlogFormData, title string) {
	td := render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Active: "blogs",
		Data:   form,
	}
	if err := h.renderer.Render(w, r, "admin/blogs_form", td); err != nil {
		renderError(w, "admin/blogs_form", err)
	}
}
