// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/model"
	"github.com/senspa/spadmin-go/internal/render"
)

// siteSettingFields is the fixed set of keys the form edits. Translated
// fields keep the default (English) text in the root value and one
// variant per supported settings language.
var siteSettingFields = []struct {
	Key        string
	Label      string
	Section    string
	Translated bool
	Multiline  bool
}{
	{"working_hours", "Thời gian làm việc", "Thông tin chung", true, false},
	{"contact_phone", "Số điện thoại", "Thông tin liên hệ", false, false},
	{"contact_email", "Email", "Thông tin liên hệ", false, false},
	{"contact_address", "Địa chỉ", "Thông tin liên hệ", true, false},
	{"social_facebook", "Facebook", "Mạng xã hội", false, false},
	{"social_instagram", "Instagram", "Mạng xã hội", false, false},
	{"social_twitter", "Twitter", "Mạng xã hội", false, false},
	{"about_us", "Giới thiệu", "Giới thiệu", true, true},
}

// SiteSettingsHandler handles the key/value site settings form. Every
// save upserts the full field set: keys the backend already stores are
// updated by key, missing ones created.
type SiteSettingsHandler struct {
	client   *api.Client
	renderer *render.Renderer
}

// NewSiteSettingsHandler creates a new SiteSettingsHandler.
func NewSiteSettingsHandler(client *api.Client, renderer *render.Renderer) *SiteSettingsHandler {
	return &SiteSettingsHandler{client: client, renderer: renderer}
}

// SiteSettingValue is one per-language input of a translated field.
type SiteSettingValue struct {
	Language string
	Value    string
}

// SiteSettingRow is one field of the site settings form.
type SiteSettingRow struct {
	Key          string
	Label        string
	Section      string
	Multiline    bool
	Value        string
	Translations []SiteSettingValue
}

// SiteSettingsFormData holds data for the site settings template.
type SiteSettingsFormData struct {
	Rows   []SiteSettingRow
	Errors map[string]string
}

func siteSettingRows(settings []model.SiteSetting) []SiteSettingRow {
	byKey := make(map[string]model.SiteSetting, len(settings))
	for _, s := range settings {
		byKey[s.Key] = s
	}

	rows := make([]SiteSettingRow, 0, len(siteSettingFields))
	for _, f := range siteSettingFields {
		row := SiteSettingRow{
			Key:       f.Key,
			Label:     f.Label,
			Section:   f.Section,
			Multiline: f.Multiline,
			Value:     byKey[f.Key].Value,
		}
		if f.Translated {
			for _, lang := range model.SiteSettingLanguages {
				row.Translations = append(row.Translations, SiteSettingValue{
					Language: lang,
					Value:    byKey[f.Key].ValueFor(lang),
				})
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Show handles GET /admin/site-settings.
func (h *SiteSettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	settings, err := h.client.Site.List(r.Context())
	if err != nil {
		slog.Error("failed to load site settings", "error", err)
		h.renderForm(w, r, SiteSettingsFormData{
			Rows:   siteSettingRows(nil),
			Errors: map[string]string{"form": errorMessage(err)},
		})
		return
	}
	h.renderForm(w, r, SiteSettingsFormData{Rows: siteSettingRows(settings)})
}

// Save handles POST /admin/site-settings. The full field set is
// upserted on every save; existing keys are re-read first so the
// handler knows which writes go through update and which create.
func (h *SiteSettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSiteSettings), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	current, err := h.client.Site.List(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSiteSettings), errorMessage(err), FlashError)
		return
	}
	existing := make(map[string]bool, len(current))
	for _, s := range current {
		existing[s.Key] = true
	}

	settings := make([]model.SiteSetting, 0, len(siteSettingFields))
	for _, f := range siteSettingFields {
		st := model.SiteSetting{
			Key:   f.Key,
			Value: strings.TrimSpace(r.FormValue(f.Key)),
		}
		if f.Translated {
			// Every language is submitted, empty values included, so a
			// cleared translation overwrites the stored one.
			for _, lang := range model.SiteSettingLanguages {
				st.Translations = append(st.Translations, model.SiteSettingTranslation{
					Language: lang,
					Value:    strings.TrimSpace(r.FormValue(f.Key + "_" + lang)),
				})
			}
		}
		settings = append(settings, st)
	}

	if err := h.client.Site.SaveAll(r.Context(), settings, existing); err != nil {
		slog.Error("failed to save site settings", "error", err)
		flashRedirect(w, r, h.renderer, adminPath(RouteSiteSettings), "Không thể lưu cài đặt website", FlashError)
		return
	}

	slog.Info("site settings saved", "keys", len(settings))
	flashRedirect(w, r, h.renderer, adminPath(RouteSiteSettings), "Đã cập nhật cài đặt website", FlashSuccess)
}

func (h *SiteSettingsHandler) renderForm(w http.ResponseWriter, r *http.Request, form SiteSettingsFormData) {
	td := render.TemplateData{
		Title:  "Cài đặt chung",
		User:   middleware.GetUser(r),
		Active: "site-settings",
		Data:   form,
	}
	if err := h.renderer.Render(w, r, "admin/site_settings", td); err != nil {
		renderError(w, "admin/site_settings", err)
	}
}
