// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Meta is the pagination metadata a collection response may carry.
// When the backend returns a bare array the metadata is synthesized
// from its length.
type Meta struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

// envelope matches the wrapper shapes the backend uses
// inconsistently across entities.
type envelope struct {
	Items json.RawMessage `json:"items"`
	Meta  *Meta           `json:"meta"`
	Data  json.RawMessage `json:"data"`
}

// NormalizeCollection decodes any of the backend's collection shapes —
// `{items, meta}`, a bare array, or `{data: ...}` wrapping either —
// into one canonical (items, meta) pair. Callers never see envelope
// differences.
func NormalizeCollection[T any](data []byte) ([]T, Meta, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, Meta{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, Meta{}, fmt.Errorf("decoding collection: %w", err)
		}
		return items, syntheticMeta(len(items)), nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, Meta{}, fmt.Errorf("decoding collection envelope: %w", err)
	}

	if env.Items != nil {
		var items []T
		if err := json.Unmarshal(env.Items, &items); err != nil {
			return nil, Meta{}, fmt.Errorf("decoding collection items: %w", err)
		}
		if env.Meta != nil {
			return items, *env.Meta, nil
		}
		return items, syntheticMeta(len(items)), nil
	}

	if env.Data != nil {
		return NormalizeCollection[T](env.Data)
	}

	return nil, Meta{}, fmt.Errorf("unrecognized collection envelope: %s", snippet(trimmed))
}

// NormalizeObject decodes a single entity that may or may not be
// wrapped in `{data: ...}`.
func NormalizeObject[T any](data []byte) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return zero, nil
	}

	if trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Data != nil {
			return NormalizeObject[T](env.Data)
		}
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return zero, fmt.Errorf("decoding entity: %w", err)
	}
	return out, nil
}

func syntheticMeta(n int) Meta {
	return Meta{CurrentPage: 1, TotalPages: 1, ItemsPerPage: n, TotalItems: n}
}

func snippet(data []byte) string {
	const max = 120
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
