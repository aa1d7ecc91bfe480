// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Category types
const (
	CategoryTypeBlog    = "blog"
	CategoryTypeService = "service"
)

// ValidCategoryTypes contains all valid category types.
var ValidCategoryTypes = []string{CategoryTypeBlog, CategoryTypeService}

// Category groups blog posts or services.
type Category struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Slug         string        `json:"slug,omitempty"`
	Description  string        `json:"description,omitempty"`
	Type         string        `json:"type"`
	CoverImage   string        `json:"coverImage,omitempty"`
	Active       bool          `json:"status"`
	CreatedAt    time.Time     `json:"createdAt,omitzero"`
	UpdatedAt    time.Time     `json:"updatedAt,omitzero"`
	DeletedAt    *time.Time    `json:"deletedAt,omitempty"`
	Translations []Translation `json:"translations,omitempty"`
}

// DisplayName resolves the name shown in list views.
func (c Category) DisplayName() string {
	return displayField(c.Name, c.Translations, func(t Translation) string { return t.Name })
}

// DisplayDescription resolves the description shown in list views.
func (c Category) DisplayDescription() string {
	return displayField(c.Description, c.Translations, func(t Translation) string { return t.Description })
}

// IsDeleted reports whether the category is soft-deleted upstream.
func (c Category) IsDeleted() bool {
	return c.DeletedAt != nil
}
