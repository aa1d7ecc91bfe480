// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth holds the backend bearer token in the admin's session
// and checks its expiry client-side. All outgoing backend requests read
// the token through the Credentials holder; nothing else touches
// session storage directly.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/senspa/spadmin-go/internal/model"
)

// Session keys for the stored credential and user identity.
const (
	SessionKeyToken     = "api_token"
	SessionKeyUserName  = "user_name"
	SessionKeyUserEmail = "user_email"
	SessionKeyUserRole  = "user_role"
)

// Credentials is the process-wide credential holder: explicit get, set
// and clear over the session-backed token store, plus a single
// registered callback invoked when the backend rejects the credential.
type Credentials struct {
	sessions *scs.SessionManager

	mu        sync.RWMutex
	onExpired func(ctx context.Context)
}

// NewCredentials creates the credential holder over the given session
// manager.
func NewCredentials(sm *scs.SessionManager) *Credentials {
	return &Credentials{sessions: sm}
}

// Token returns the stored bearer token, or "" when the session has
// none or the token is already expired. An expired token is treated as
// absent.
func (c *Credentials) Token(ctx context.Context) string {
	token := c.sessions.GetString(ctx, SessionKeyToken)
	if token == "" || TokenExpired(token, time.Now()) {
		return ""
	}
	return token
}

// Set stores the bearer token for the current session.
func (c *Credentials) Set(ctx context.Context, token string) {
	c.sessions.Put(ctx, SessionKeyToken, token)
}

// SetUser stores the authenticated user's identity alongside the token.
func (c *Credentials) SetUser(ctx context.Context, u model.User) {
	c.sessions.Put(ctx, SessionKeyUserName, u.Name)
	c.sessions.Put(ctx, SessionKeyUserEmail, u.Email)
	c.sessions.Put(ctx, SessionKeyUserRole, u.Role)
}

// User returns the stored user identity. The zero value means no user
// is logged in.
func (c *Credentials) User(ctx context.Context) model.User {
	return model.User{
		Name:  c.sessions.GetString(ctx, SessionKeyUserName),
		Email: c.sessions.GetString(ctx, SessionKeyUserEmail),
		Role:  c.sessions.GetString(ctx, SessionKeyUserRole),
	}
}

// Clear removes the stored token and user identity.
func (c *Credentials) Clear(ctx context.Context) {
	c.sessions.Remove(ctx, SessionKeyToken)
	c.sessions.Remove(ctx, SessionKeyUserName)
	c.sessions.Remove(ctx, SessionKeyUserEmail)
	c.sessions.Remove(ctx, SessionKeyUserRole)
}

// OnExpired registers the single callback run when the backend answers
// with an authorization-denied status. Registering replaces any
// previous callback.
func (c *Credentials) OnExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = fn
}

// HandleUnauthorized clears the credential and fires the registered
// on-expired callback.
func (c *Credentials) HandleUnauthorized(ctx context.Context) {
	c.Clear(ctx)

	c.mu.RLock()
	fn := c.onExpired
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

// TokenExpired decodes the JWT without verifying its signature and
// reports whether its exp claim lies in the past. Tokens that cannot
// be decoded, or that carry no exp claim, count as expired: the
// backend is the authority and will be asked again after re-login.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(now)
}
