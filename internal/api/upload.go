// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"io"
	"net/http"
)

// UploadService stores and removes media files on the backend.
type UploadService struct {
	c *Client
}

type uploadResult struct {
	URL string `json:"url"`
}

// Upload sends a file and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	data, err := s.c.doMultipart(ctx, http.MethodPost, "/upload", "file", filename, file)
	if err != nil {
		return "", err
	}
	result, err := NormalizeObject[uploadResult](data)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// DeleteFile removes a previously uploaded file by its public URL.
func (s *UploadService) DeleteFile(ctx context.Context, fileURL string) error {
	body := map[string]string{"fileUrl": fileURL}
	_, err := s.c.do(ctx, http.MethodDelete, "/upload", nil, body)
	return err
}
