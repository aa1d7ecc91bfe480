// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig controls the browser hardening headers on
// every HTML response.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS and loosens CSP for local work.
	IsDevelopment bool

	// ContentSecurityPolicy is the full CSP header value.
	ContentSecurityPolicy string

	// HSTSMaxAge in seconds; 0 disables the header entirely.
	HSTSMaxAge            int
	HSTSIncludeSubDomains bool
	HSTSPreload           bool

	// FrameOptions is "DENY", "SAMEORIGIN", or empty to omit.
	FrameOptions string

	ReferrerPolicy    string
	PermissionsPolicy string

	// ExcludePaths lists path prefixes that skip all headers.
	ExcludePaths []string
}

// cspDirective keeps CSP output order deterministic.
type cspDirective struct {
	name  string
	value string
}

func joinCSP(directives []cspDirective) string {
	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		parts = append(parts, d.name+" "+d.value)
	}
	return strings.Join(parts, "; ")
}

// DefaultSecurityHeadersConfig returns the policy the admin ships
// with. Inline styles and scripts stay allowed because the templates
// carry small inline snippets; img-src admits https origins since
// entity images live on the backend's media host.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	imgSrc := "'self' data: blob: https:"
	scriptSrc := "'self' 'unsafe-inline'"
	if isDev {
		imgSrc = "'self' data: blob: http: https:"
		scriptSrc = "'self' 'unsafe-inline' 'unsafe-eval'"
	}

	cfg := SecurityHeadersConfig{
		IsDevelopment:         isDev,
		HSTSMaxAge:            31536000, // 1 year
		HSTSIncludeSubDomains: !isDev,
		FrameOptions:          "SAMEORIGIN",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: joinCSP([]cspDirective{
			{"default-src", "'self'"},
			{"script-src", scriptSrc},
			{"style-src", "'self' 'unsafe-inline'"},
			{"img-src", imgSrc},
			{"font-src", "'self' data:"},
			{"connect-src", "'self'"},
			{"object-src", "'none'"},
			{"base-uri", "'self'"},
			{"form-action", "'self'"},
		}),
	}

	// The admin never needs device features; deny them all.
	denied := []string{
		"accelerometer", "camera", "geolocation", "gyroscope",
		"magnetometer", "microphone", "payment", "usb",
		"interest-cohort", "browsing-topics",
	}
	for i, name := range denied {
		denied[i] = name + "=()"
	}
	cfg.PermissionsPolicy = strings.Join(denied, ", ")

	return cfg
}

// SecurityHeaders returns a middleware applying the configured
// headers to every response outside ExcludePaths.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var hsts string
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			h := w.Header()
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
