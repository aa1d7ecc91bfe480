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

// messengerChannels maps each messenger field pair of the settings
// record. The form input for a channel's account is named after Key,
// its QR upload "qr_<Key>".
var messengerChannels = []struct {
	Key     string
	Label   string
	Account func(*model.WebSettings) *string
	QR      func(*model.WebSettings) *string
}{
	{"messenger", "Messenger", func(s *model.WebSettings) *string { return &s.Messenger }, func(s *model.WebSettings) *string { return &s.MessengerQR }},
	{"zalo", "Zalo", func(s *model.WebSettings) *string { return &s.Zalo }, func(s *model.WebSettings) *string { return &s.ZaloQR }},
	{"kakaotalk", "KakaoTalk", func(s *model.WebSettings) *string { return &s.KakaoTalk }, func(s *model.WebSettings) *string { return &s.KakaoTalkQR }},
	{"telegram", "Telegram", func(s *model.WebSettings) *string { return &s.Telegram }, func(s *model.WebSettings) *string { return &s.TelegramQR }},
	{"wechat", "WeChat", func(s *model.WebSettings) *string { return &s.WeChat }, func(s *model.WebSettings) *string { return &s.WeChatQR }},
	{"line", "LINE", func(s *model.WebSettings) *string { return &s.Line }, func(s *model.WebSettings) *string { return &s.LineQR }},
	{"whatsapp", "WhatsApp", func(s *model.WebSettings) *string { return &s.WhatsApp }, func(s *model.WebSettings) *string { return &s.WhatsAppQR }},
	{"instagram", "Instagram", func(s *model.WebSettings) *string { return &s.Instagram }, func(s *model.WebSettings) *string { return &s.InstagramQR }},
}

// SettingsHandler handles the web settings form. Settings are a single
// record upstream; the form creates it on first save.
type SettingsHandler struct {
	client   *api.Client
	renderer *render.Renderer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(client *api.Client, renderer *render.Renderer) *SettingsHandler {
	return &SettingsHandler{client: client, renderer: renderer}
}

// SettingsChannel is one messenger row of the settings form.
type SettingsChannel struct {
	Key     string
	Label   string
	Account string
	QR      string
}

// SettingsFormData holds data for the settings template.
type SettingsFormData struct {
	Settings model.WebSettings
	Channels []SettingsChannel
	Errors   map[string]string
}

func settingsChannels(s *model.WebSettings) []SettingsChannel {
	rows := make([]SettingsChannel, 0, len(messengerChannels))
	for _, ch := range messengerChannels {
		rows = append(rows, SettingsChannel{
			Key:     ch.Key,
			Label:   ch.Label,
			Account: *ch.Account(s),
			QR:      *ch.QR(s),
		})
	}
	return rows
}

// Show handles GET /admin/settings.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	settings, err := h.client.Settings.First(r.Context())
	if err != nil {
		slog.Error("failed to load web settings", "error", err)
		h.renderForm(w, r, SettingsFormData{Errors: map[string]string{"form": errorMessage(err)}})
		return
	}
	if settings == nil {
		settings = &model.WebSettings{}
	}
	h.renderForm(w, r, SettingsFormData{
		Settings: *settings,
		Channels: settingsChannels(settings),
	})
}

// Save handles POST /admin/settings. Text fields come from the form;
// the logo and each messenger QR keep their stored value unless a new
// file was chosen.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize + 1<<20); err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSettings), "Dữ liệu không hợp lệ", FlashError)
		return
	}

	existing, err := h.client.Settings.First(r.Context())
	if err != nil {
		flashRedirect(w, r, h.renderer, adminPath(RouteSettings), errorMessage(err), FlashError)
		return
	}
	if existing == nil {
		existing = &model.WebSettings{}
	}

	settings := *existing
	settings.SiteName = strings.TrimSpace(r.FormValue("site_name"))
	settings.Address = strings.TrimSpace(r.FormValue("address"))
	settings.WorkingHours = strings.TrimSpace(r.FormValue("working_hours"))
	settings.GoogleMap = strings.TrimSpace(r.FormValue("google_map"))
	settings.Email = strings.TrimSpace(r.FormValue("email"))
	settings.Phone = strings.TrimSpace(r.FormValue("phone"))
	for _, ch := range messengerChannels {
		*ch.Account(&settings) = strings.TrimSpace(r.FormValue(ch.Key))
	}

	form := SettingsFormData{Errors: map[string]string{}}
	if settings.SiteName == "" {
		form.Errors["site_name"] = "Vui lòng nhập tên website"
	}
	if len(form.Errors) > 0 {
		form.Settings = settings
		form.Channels = settingsChannels(&settings)
		h.renderForm(w, r, form)
		return
	}

	// Replaced images are deleted only after the record saves; failures
	// downgrade the flash to a warning.
	var replaced []string

	logo, err := uploadFormImage(r.Context(), h.client.Uploads, r, "logo")
	if err != nil {
		form.Errors["logo"] = uploadErrorMessage(err)
		form.Settings = settings
		form.Channels = settingsChannels(&settings)
		h.renderForm(w, r, form)
		return
	}
	if logo != "" {
		replaced = append(replaced, settings.Logo)
		settings.Logo = logo
	}

	for _, ch := range messengerChannels {
		qr, err := uploadFormImage(r.Context(), h.client.Uploads, r, "qr_"+ch.Key)
		if err != nil {
			form.Errors["qr_"+ch.Key] = uploadErrorMessage(err)
			form.Settings = settings
			form.Channels = settingsChannels(&settings)
			h.renderForm(w, r, form)
			return
		}
		if qr != "" {
			replaced = append(replaced, *ch.QR(&settings))
			*ch.QR(&settings) = qr
		}
	}

	saved, err := h.client.Settings.Save(r.Context(), settings)
	if err != nil {
		slog.Error("failed to save web settings", "error", err)
		form.Errors["form"] = errorMessage(err)
		form.Settings = settings
		form.Channels = settingsChannels(&settings)
		h.renderForm(w, r, form)
		return
	}

	message, flashType := "Đã lưu cài đặt", FlashSuccess
	for _, old := range replaced {
		if old != "" && !deleteOldImage(r.Context(), h.client.Uploads, old, "") {
			message, flashType = "Đã lưu cài đặt, nhưng không thể xóa ảnh cũ", FlashWarning
		}
	}

	slog.Info("web settings saved", "id", saved.ID)
	flashRedirect(w, r, h.renderer, adminPath(RouteSettings), message, flashType)
}

func (h *SettingsHandler) renderForm(w http.ResponseWriter, r *http.Request, form SettingsFormData) {
	if form.Channels == nil {
		s := form.Settings
		form.Channels = settingsChannels(&s)
	}
	td := render.TemplateData{
		Title:  "Cài đặt website",
		User:   middleware.GetUser(r),
		Active: "settings",
		Data:   form,
	}
	if err := h.renderer.Render(w, r, "admin/settings", td); err != nil {
		renderError(w, "admin/settings", err)
	}
}
