// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listview implements the client-side list pipeline shared by
// every entity table: search filter, multi-field sort, and pagination
// over a collection fetched whole from the backend. The pipeline is
// pure data transformation and performs no I/O.
package listview

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort directions
const (
	DirectionASC  = "ASC"
	DirectionDESC = "DESC"
)

// Sort fields supported by every entity list.
const (
	SortByCreatedAt = "createdAt"
	SortByName      = "name"
)

// State is the ephemeral view state of one list page. It is parsed
// from the query string on every request and never persisted.
type State struct {
	Search     string
	CategoryID string
	SortField  string
	SortDir    string
	Page       int
	PageSize   int
}

// Defaults describes the initial sort for an entity list.
type Defaults struct {
	SortField string
	SortDir   string
	PageSize  int
}

// NewState returns the initial view state for the given defaults.
func NewState(d Defaults) State {
	return State{
		SortField: d.SortField,
		SortDir:   d.SortDir,
		Page:      1,
		PageSize:  d.PageSize,
	}
}

// Reset restores search, category filter, sort, and page to their
// initial values. The page size is preserved. Resetting twice yields
// the same state as resetting once.
func (s *State) Reset(d Defaults) {
	s.Search = ""
	s.CategoryID = ""
	s.SortField = d.SortField
	s.SortDir = d.SortDir
	s.Page = 1
}

// Pipeline adapts the generic list operations to one entity type via
// accessor functions. CategoryID may be nil for entities without a
// category reference.
type Pipeline[T any] struct {
	ID          func(T) string
	Name        func(T) string
	Description func(T) string
	CategoryID  func(T) string
	CreatedAt   func(T) time.Time
	Defaults    Defaults
}

// Page is the slice of rows to render plus result-count metadata.
type Page[T any] struct {
	Rows       []T
	From       int
	To         int
	Total      int
	Page       int
	TotalPages int
}

// Filter returns the entities whose display name or description
// contains the search term case-insensitively, additionally restricted
// to the given category when set. A nil collection is treated as
// empty; no match yields an empty subset.
func (p Pipeline[T]) Filter(items []T, search, categoryID string) []T {
	result := make([]T, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, it := range items {
		if categoryID != "" && (p.CategoryID == nil || p.CategoryID(it) != categoryID) {
			continue
		}
		if needle != "" {
			name := strings.ToLower(p.Name(it))
			desc := ""
			if p.Description != nil {
				desc = strings.ToLower(p.Description(it))
			}
			if !strings.Contains(name, needle) && !strings.Contains(desc, needle) {
				continue
			}
		}
		result = append(result, it)
	}
	return result
}

// Sort returns a new slice ordered by the given field and direction.
// The date field compares creation timestamps numerically with missing
// timestamps as epoch 0; the name field uses Vietnamese collation. The
// sort is stable: ties keep their original relative order in both
// directions.
func (p Pipeline[T]) Sort(items []T, field, dir string) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	var less func(a, b T) bool
	switch field {
	case SortByName:
		// Collators are not safe for concurrent use, so build one per call.
		c := collate.New(language.Vietnamese)
		less = func(a, b T) bool {
			return c.CompareString(p.Name(a), p.Name(b)) < 0
		}
	default:
		less = func(a, b T) bool {
			return timestampOf(p.CreatedAt(a)) < timestampOf(p.CreatedAt(b))
		}
	}

	if dir == DirectionDESC {
		asc := less
		less = func(a, b T) bool { return asc(b, a) }
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// timestampOf converts a creation time to a comparable number,
// treating the zero time as epoch 0.
func timestampOf(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// Paginate slices the ordered collection for the requested page.
// Pages beyond the last valid page yield empty rows, never an error.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	result := Page[T]{
		Rows:       items[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
	if total > 0 && start < total {
		result.From = start + 1
		result.To = end
	}
	return result
}

// Apply runs the whole pipeline for the given view state.
func (p Pipeline[T]) Apply(items []T, s State) Page[T] {
	filtered := p.Filter(items, s.Search, s.CategoryID)
	sorted := p.Sort(filtered, s.SortField, s.SortDir)
	return Paginate(sorted, s.Page, s.PageSize)
}
