// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// SiteSettingLanguages is the language set for translated site
// settings. The root value holds the default (English) text, so "en"
// carries no separate translation entry.
var SiteSettingLanguages = []string{"vi", "zh", "ko", "ru"}

// SiteSetting is one key/value entry of the site settings collection.
// Textual settings carry per-language variants alongside the default
// value stored at the root.
type SiteSetting struct {
	ID           string                   `json:"id,omitempty"`
	Key          string                   `json:"key"`
	Value        string                   `json:"value"`
	Translations []SiteSettingTranslation `json:"translations,omitempty"`
}

// SiteSettingTranslation is a per-language value of a site setting.
type SiteSettingTranslation struct {
	ID        string `json:"id,omitempty"`
	Language  string `json:"language"`
	Value     string `json:"value"`
	SettingID string `json:"settingId,omitempty"`
}

// ValueFor returns the setting's translated value for a language, or
// the empty string when no translation exists for it.
func (s SiteSetting) ValueFor(lang string) string {
	for _, t := range s.Translations {
		if t.Language == lang {
			return t.Value
		}
	}
	return ""
}

// WebSettings holds the public website's contact and branding settings.
// Each messenger channel has an optional QR code image alongside its
// account identifier.
type WebSettings struct {
	ID           string `json:"id,omitempty"`
	SiteName     string `json:"siteName"`
	Address      string `json:"address,omitempty"`
	Logo         string `json:"logo,omitempty"`
	WorkingHours string `json:"workingHours,omitempty"`
	GoogleMap    string `json:"googleMap,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Messenger    string `json:"messenger,omitempty"`
	MessengerQR  string `json:"messengerQr,omitempty"`
	Zalo         string `json:"zalo,omitempty"`
	ZaloQR       string `json:"zaloQr,omitempty"`
	KakaoTalk    string `json:"kakaotalk,omitempty"`
	KakaoTalkQR  string `json:"kakaotalkQr,omitempty"`
	Telegram     string `json:"telegram,omitempty"`
	TelegramQR   string `json:"telegramQr,omitempty"`
	WeChat       string `json:"wechat,omitempty"`
	WeChatQR     string `json:"wechatQr,omitempty"`
	Line         string `json:"line,omitempty"`
	LineQR       string `json:"lineQr,omitempty"`
	WhatsApp     string `json:"whatsapp,omitempty"`
	WhatsAppQR   string `json:"whatsappQr,omitempty"`
	Instagram    string `json:"instagram,omitempty"`
	InstagramQR  string `json:"instagramQr,omitempty"`
}
