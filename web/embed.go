// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the admin templates and compiled static assets
// into the binary so a deployment is a single file plus its .env.
package web

import "embed"

// Templates holds the layout, partial, auth and admin page templates.
//
//go:embed all:templates
var Templates embed.FS

// Static holds the built CSS and JS served under /static.
//
//go:embed all:static/dist
var Static embed.FS
