// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translation manages the per-language variant set edited
// alongside every translatable entity. A set always carries one entry
// per supported language in fixed order; only non-empty entries make
// it into the persisted payload.
package translation

import (
	"errors"
	"strings"

	"github.com/senspa/spadmin-go/internal/model"
	"github.com/senspa/spadmin-go/internal/util"
)

// ErrMissingCanonicalName rejects submission of a set whose canonical
// language entry has no name: a translatable entity must always have a
// usable default display name.
var ErrMissingCanonicalName = errors.New("translation: canonical language name is required")

// Set is the editable state of a translation form: exactly one entry
// per supported language, in the supported order.
type Set struct {
	entries []model.Translation
}

// NewSet builds the editable set from an entity's existing
// translations. Every supported language is represented; languages
// without an existing translation get an empty placeholder. Existing
// translations with unsupported codes are ignored.
func NewSet(existing []model.Translation, langs []string) Set {
	entries := make([]model.Translation, 0, len(langs))
	for _, lang := range langs {
		if t := model.FindTranslation(existing, lang); t != nil {
			entries = append(entries, *t)
			continue
		}
		entries = append(entries, model.Translation{Language: lang})
	}
	return Set{entries: entries}
}

// Entries returns a copy of the entries in supported-language order.
func (s Set) Entries() []model.Translation {
	out := make([]model.Translation, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry for a language code.
func (s Set) Get(lang string) (model.Translation, bool) {
	for _, e := range s.entries {
		if e.Language == lang {
			return e, true
		}
	}
	return model.Translation{}, false
}

// Update returns a new set with the given field of one language entry
// replaced. All other entries are untouched.
func (s Set) Update(lang, field, value string) Set {
	entries := make([]model.Translation, len(s.entries))
	copy(entries, s.entries)
	for i := range entries {
		if entries[i].Language != lang {
			continue
		}
		switch field {
		case "name":
			entries[i].Name = value
		case "description":
			entries[i].Description = value
		case "content":
			entries[i].Content = value
		}
	}
	return Set{entries: entries}
}

// Validate rejects a set whose canonical language entry has an empty
// name after trimming.
func (s Set) Validate() error {
	if t, ok := s.Get(model.DefaultLanguage); ok {
		if strings.TrimSpace(t.Name) != "" {
			return nil
		}
	}
	return ErrMissingCanonicalName
}

// Payload assembles the submittable translation array: all fields
// trimmed, entries empty in both name and description/content dropped,
// and the canonical entry's slug derived from its name. When the
// canonical name slugifies to nothing the slug falls back to the
// entity kind plus a uniqueness token.
func (s Set) Payload(kind string) []model.Translation {
	out := make([]model.Translation, 0, len(s.entries))
	for _, e := range s.entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Description = strings.TrimSpace(e.Description)
		e.Content = strings.TrimSpace(e.Content)
		if e.IsEmpty() {
			continue
		}
		if e.Language == model.DefaultLanguage {
			e.Slug = util.Slugify(e.Name)
			if !util.IsValidSlug(e.Slug) {
				e.Slug = util.FallbackSlug(kind)
			}
		}
		out = append(out, e)
	}
	return out
}

// Slug returns the slug the payload would carry for the canonical
// entry, applying the same fallback rule.
func (s Set) Slug(kind string) string {
	if t, ok := s.Get(model.DefaultLanguage); ok {
		if slug := util.Slugify(strings.TrimSpace(t.Name)); util.IsValidSlug(slug) {
			return slug
		}
	}
	return util.FallbackSlug(kind)
}

// FromForm rebuilds a set from posted form values, one field input per
// language per field, named like "name_vi" and "description_en".
func FromForm(get func(string) string, langs []string) Set {
	entries := make([]model.Translation, 0, len(langs))
	for _, lang := range langs {
		entries = append(entries, model.Translation{
			Language:    lang,
			Name:        get("name_" + lang),
			Description: get("description_" + lang),
			Content:     get("content_" + lang),
		})
	}
	return Set{entries: entries}
}
