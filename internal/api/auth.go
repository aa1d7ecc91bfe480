// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/senspa/spadmin-go/internal/model"
)

// AuthService talks to the backend's user endpoints.
type AuthService struct {
	c *Client
}

// Session is a successful login: the bearer token plus the
// authenticated user.
type Session struct {
	Token string
	User  model.User
}

// Login exchanges credentials for a bearer token. The backend has
// shipped two envelope shapes for this endpoint — `{data: {token,
// user}}` and `{accessToken, user}` — and both are accepted.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := s.c.do(ctx, http.MethodPost, "/users/login", nil, body)
	if err != nil {
		return Session{}, err
	}

	var nested struct {
		Data struct {
			Token string     `json:"token"`
			User  model.User `json:"user"`
		} `json:"data"`
		AccessToken string     `json:"accessToken"`
		Token       string     `json:"token"`
		User        model.User `json:"user"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return Session{}, fmt.Errorf("decoding login response: %w", err)
	}

	switch {
	case nested.Data.Token != "":
		return Session{Token: nested.Data.Token, User: nested.Data.User}, nil
	case nested.AccessToken != "":
		return Session{Token: nested.AccessToken, User: nested.User}, nil
	case nested.Token != "":
		return Session{Token: nested.Token, User: nested.User}, nil
	}
	return Session{}, fmt.Errorf("login response carried no token")
}

// Me returns the currently authenticated user.
func (s *AuthService) Me(ctx context.Context) (model.User, error) {
	return getObject[model.User](ctx, s.c, "/users/me")
}
