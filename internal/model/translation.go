// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the entity types exchanged with the upstream
// backend and shared across the admin application.
package model

// Canonical content language. Root display fields (name, description)
// are denormalized from this language's translation.
const DefaultLanguage = "vi"

// SupportedLanguages is the fixed set of content languages, in the
// order translation tabs are presented. The canonical language comes
// first.
var SupportedLanguages = []string{"vi", "en", "ko", "zh", "ru"}

// LanguageLabels maps language codes to their native display names.
var LanguageLabels = map[string]string{
	"vi": "Tiếng Việt",
	"en": "English",
	"ko": "한국어",
	"zh": "中文",
	"ru": "Русский",
}

// Translation is a per-language variant of a translatable entity's
// textual fields. An entry whose Name, Description and Content are all
// empty is considered absent.
type Translation struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// IsEmpty reports whether the translation carries no usable text.
func (t Translation) IsEmpty() bool {
	return t.Name == "" && t.Description == "" && t.Content == ""
}

// FindTranslation returns the translation with the given language code,
// or nil when absent.
func FindTranslation(ts []Translation, lang string) *Translation {
	for i := range ts {
		if ts[i].Language == lang {
			return &ts[i]
		}
	}
	return nil
}

// displayField resolves a denormalized display field: explicit root
// value, then the canonical translation, then the first translation
// that has the field, then empty.
func displayField(root string, ts []Translation, pick func(Translation) string) string {
	if root != "" {
		return root
	}
	if t := FindTranslation(ts, DefaultLanguage); t != nil && pick(*t) != "" {
		return pick(*t)
	}
	for _, t := range ts {
		if v := pick(t); v != "" {
			return v
		}
	}
	return ""
}
