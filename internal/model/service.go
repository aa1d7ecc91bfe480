// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Service represents a spa service offering.
type Service struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Duration     int           `json:"duration"` // minutes
	CoverImage   string        `json:"coverImage,omitempty"`
	CategoryID   string        `json:"categoryId"`
	CreatedAt    time.Time     `json:"createdAt,omitzero"`
	UpdatedAt    time.Time     `json:"updatedAt,omitzero"`
	Translations []Translation `json:"translations,omitempty"`
}

// DisplayName resolves the name shown in list views.
func (s Service) DisplayName() string {
	return displayField(s.Name, s.Translations, func(t Translation) string { return t.Name })
}

// DisplayDescription resolves the description shown in list views.
func (s Service) DisplayDescription() string {
	return displayField(s.Description, s.Translations, func(t Translation) string { return t.Description })
}
