// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"testing"
)

type fixtureItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestNormalizeCollectionShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIDs   []string
		wantMeta  Meta
		wantError bool
	}{
		{
			name:     "items with meta",
			body:     `{"items":[{"id":"a"},{"id":"b"}],"meta":{"currentPage":2,"totalPages":5,"itemsPerPage":2,"totalItems":10}}`,
			wantIDs:  []string{"a", "b"},
			wantMeta: Meta{CurrentPage: 2, TotalPages: 5, ItemsPerPage: 2, TotalItems: 10},
		},
		{
			name:     "bare array synthesizes meta",
			body:     `[{"id":"a"},{"id":"b"},{"id":"c"}]`,
			wantIDs:  []string{"a", "b", "c"},
			wantMeta: Meta{CurrentPage: 1, TotalPages: 1, ItemsPerPage: 3, TotalItems: 3},
		},
		{
			name:     "data wrapping array",
			body:     `{"data":[{"id":"a"}]}`,
			wantIDs:  []string{"a"},
			wantMeta: Meta{CurrentPage: 1, TotalPages: 1, ItemsPerPage: 1, TotalItems: 1},
		},
		{
			name:     "data wrapping items envelope",
			body:     `{"data":{"items":[{"id":"x"}],"meta":{"currentPage":1,"totalPages":1,"itemsPerPage":20,"totalItems":1}}}`,
			wantIDs:  []string{"x"},
			wantMeta: Meta{CurrentPage: 1, TotalPages: 1, ItemsPerPage: 20, TotalItems: 1},
		},
		{
			name:     "items without meta",
			body:     `{"items":[{"id":"a"}]}`,
			wantIDs:  []string{"a"},
			wantMeta: Meta{CurrentPage: 1, TotalPages: 1, ItemsPerPage: 1, TotalItems: 1},
		},
		{
			name:    "null body",
			body:    `null`,
			wantIDs: nil,
		},
		{
			name:    "empty array",
			body:    `[]`,
			wantIDs: []string{},
		},
		{
			name:      "unrecognized envelope",
			body:      `{"rows":[{"id":"a"}]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meta, err := NormalizeCollection[fixtureItem]([]byte(tt.body))
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeCollection: %v", err)
			}
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if items[i].ID != id {
					t.Errorf("item %d: got id %q, want %q", i, items[i].ID, id)
				}
			}
			if len(tt.wantIDs) > 0 && meta != tt.wantMeta {
				t.Errorf("got meta %+v, want %+v", meta, tt.wantMeta)
			}
		})
	}
}

func TestNormalizeObject(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName string
	}{
		{"plain object", `{"id":"a","name":"Massage"}`, "Massage"},
		{"data wrapped", `{"data":{"id":"a","name":"Massage"}}`, "Massage"},
		{"double wrapped", `{"data":{"data":{"id":"a","name":"Massage"}}}`, "Massage"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NormalizeObject[fixtureItem]([]byte(tt.body))
			if err != nil {
				t.Fatalf("NormalizeObject: %v", err)
			}
			if item.Name != tt.wantName {
				t.Errorf("got name %q, want %q", item.Name, tt.wantName)
			}
		})
	}
}
