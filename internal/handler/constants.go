// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixDelete is the suffix for bulk delete routes.
	RouteSuffixDelete = "/delete"
	// RouteSuffixReorder is the suffix for reorder routes.
	RouteSuffixReorder = "/reorder"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamIDEdit is the edit form route pattern.
	RouteParamIDEdit = RouteParamID + "/edit"
	// RouteParamIDDelete is the per-entity delete route pattern.
	RouteParamIDDelete = RouteParamID + "/delete"
	// RouteParamIDToggle is the publish/approval toggle route pattern.
	RouteParamIDToggle = RouteParamID + "/toggle"
	// RouteParamIDStatus is the status-change route pattern.
	RouteParamIDStatus = RouteParamID + "/status"
	// RouteParamIDRestore is the soft-delete restore route pattern.
	RouteParamIDRestore = RouteParamID + "/restore"
	// RouteParamIDRead is the mark-as-read route pattern.
	RouteParamIDRead = RouteParamID + "/read"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteBlogs is the blog posts admin route.
	RouteBlogs = "/blogs"
	// RouteServices is the services admin route.
	RouteServices = "/services"
	// RouteCategories is the categories admin route.
	RouteCategories = "/categories"
	// RouteSlides is the slides admin route.
	RouteSlides = "/slides"
	// RouteReviews is the reviews admin route.
	RouteReviews = "/reviews"
	// RouteContacts is the contact messages admin route.
	RouteContacts = "/contacts"
	// RouteSettings is the web settings admin route.
	RouteSettings = "/settings"
	// RouteSiteSettings is the key/value site settings admin route.
	RouteSiteSettings = "/site-settings"
)

// redirectAdmin is the post-login landing page.
const redirectAdmin = "/admin"

// Flash message types map to alert styles in the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// DefaultPageSize is the number of rows per list page.
const DefaultPageSize = 10
