// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the client for the upstream REST backend. It owns
// bearer-token injection, response envelope normalization, and the
// mapping of HTTP statuses onto the application's error taxonomy.
// Everything above this package works with already-normalized,
// strongly-typed entities.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend request.
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20 // 10MB

// CredentialSource supplies the bearer token for outgoing requests and
// is notified when the backend rejects it.
type CredentialSource interface {
	Token(ctx context.Context) string
	HandleUnauthorized(ctx context.Context)
}

// Client is the entry point to all backend services.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource

	Auth       *AuthService
	Blogs      *BlogService
	Categories *CategoryService
	Services   *ServiceService
	Slides     *SlideService
	Reviews    *ReviewService
	Contacts   *ContactService
	Settings   *SettingsService
	Site       *SiteSettingsService
	Uploads    *UploadService
}

// Config holds client configuration.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials CredentialSource
}

// New creates a backend client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		creds:   cfg.Credentials,
	}

	c.Auth = &AuthService{c: c}
	c.Blogs = &BlogService{c: c}
	c.Categories = &CategoryService{c: c}
	c.Services = &ServiceService{c: c}
	c.Slides = &SlideService{c: c}
	c.Reviews = &ReviewService{c: c}
	c.Contacts = &ContactService{c: c}
	c.Settings = &SettingsService{c: c}
	c.Site = &SiteSettingsService{c: c}
	c.Uploads = &UploadService{c: c}
	return c
}

// do sends one request and returns the raw response body. Statuses of
// 400 and above become a typed *Error; a 401 additionally notifies the
// credential source before the error propagates.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

// doMultipart sends a multipart/form-data request with a single file
// field, used by the upload endpoint.
func (c *Client) doMultipart(ctx context.Context, method, path, field, filename string, file io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("writing multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if c.creds != nil {
		if token := c.creds.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newError(resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized && c.creds != nil {
			slog.Warn("backend rejected credential", "path", req.URL.Path)
			c.creds.HandleUnauthorized(req.Context())
		}
		return nil, apiErr
	}
	return data, nil
}

// getCollection fetches and normalizes a collection response.
func getCollection[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, Meta, error) {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, Meta{}, err
	}
	return NormalizeCollection[T](data)
}

// getObject fetches and normalizes a single-object response.
func getObject[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return zero, err
	}
	return NormalizeObject[T](data)
}

// writeObject sends a write and normalizes the returned entity.
func writeObject[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return zero, nil
	}
	return NormalizeObject[T](data)
}
