// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Slide roles determine where a banner is displayed on the public site.
const (
	SlideRoleHome    = "home"
	SlideRoleService = "service"
	SlideRoleBlog    = "blog"
)

// ValidSlideRoles contains all valid slide roles.
var ValidSlideRoles = []string{SlideRoleHome, SlideRoleService, SlideRoleBlog}

// Slide represents a banner image on the public site.
type Slide struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Role        string    `json:"role"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// SlideOrder is one item of a reorder request.
type SlideOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
