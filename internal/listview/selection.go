// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listview

// RestrictSelection filters a set of selected IDs down to those present
// in the last fetched collection. Bulk actions must never act on stale
// IDs left over from a previous fetch.
func RestrictSelection[T any](selected []string, items []T, id func(T) string) []string {
	if len(selected) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		known[id(it)] = struct{}{}
	}

	var result []string
	seen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := known[s]; ok {
			result = append(result, s)
		}
	}
	return result
}
