// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Blog represents a blog post managed through the admin.
type Blog struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Content      string        `json:"content,omitempty"`
	Slug         string        `json:"slug,omitempty"`
	CategoryID   string        `json:"categoryId,omitempty"`
	CoverImage   string        `json:"coverImage,omitempty"`
	Published    bool          `json:"published"`
	CreatedAt    time.Time     `json:"createdAt,omitzero"`
	UpdatedAt    time.Time     `json:"updatedAt,omitzero"`
	Translations []Translation `json:"translations,omitempty"`
}

// DisplayTitle resolves the title shown in list views when no specific
// language is requested.
func (b Blog) DisplayTitle() string {
	return displayField(b.Title, b.Translations, func(t Translation) string { return t.Name })
}

// DisplayDescription resolves the description shown in list views.
func (b Blog) DisplayDescription() string {
	return displayField(b.Description, b.Translations, func(t Translation) string { return t.Description })
}
