// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/auth"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/render"
)

// AuthHandler handles login and logout against the upstream backend.
type AuthHandler struct {
	client          *api.Client
	creds           *auth.Credentials
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *api.Client, creds *auth.Credentials, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		client:          client,
		creds:           creds,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginData holds data for the login template.
type LoginData struct {
	Email string
	Next  string
}

// LoginForm renders the login page. Already-authenticated users are
// sent straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.creds.Token(r.Context()) != "" {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	data := render.TemplateData{
		Title: "Đăng nhập",
		Data:  LoginData{Next: safeNext(r.URL.Query().Get("next"))},
	}
	if err := h.renderer.Render(w, r, "auth/login", data); err != nil {
		renderError(w, "auth/login", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, h.renderer, RouteLogin, "Dữ liệu không hợp lệ", FlashError)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	if email == "" || password == "" {
		h.renderLoginError(w, r, email, next, "Vui lòng nhập email và mật khẩu")
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		minutes := int(remaining.Minutes()) + 1
		h.renderLoginError(w, r, email, next,
			fmt.Sprintf("Tài khoản tạm khóa do đăng nhập sai nhiều lần, thử lại sau %d phút", minutes))
		return
	}

	session, err := h.client.Auth.Login(r.Context(), email, password)
	if err != nil {
		h.loginProtection.RecordFailedAttempt(email)
		slog.Warn("login failed", "email", email, "error", err)
		h.renderLoginError(w, r, email, next, errorMessage(err))
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// Rotate the session token on privilege change.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.creds.Set(r.Context(), session.Token)
	user := session.User
	if user.Email == "" {
		// Some backend versions omit the user from the login envelope.
		if me, err := h.client.Auth.Me(r.Context()); err == nil {
			user = me
		} else {
			user.Email = email
		}
	}
	h.creds.SetUser(r.Context(), user)

	slog.Info("user logged in", "email", user.Email, "role", user.Role)

	target := redirectAdmin
	if next != "" {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout clears the credential holder and rotates the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.creds.Clear(r.Context())
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
	}
	flashRedirect(w, r, h.renderer, RouteLogin, "Đã đăng xuất", FlashInfo)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, email, next, message string) {
	data := render.TemplateData{
		Title:     "Đăng nhập",
		Flash:     message,
		FlashType: FlashError,
		Data:      LoginData{Email: email, Next: next},
	}
	if err := h.renderer.Render(w, r, "auth/login", data); err != nil {
		renderError(w, "auth/login", err)
	}
}

// safeNext accepts only site-local redirect targets. Anything that
// could leave the host ("//evil", "http://…") is dropped.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
