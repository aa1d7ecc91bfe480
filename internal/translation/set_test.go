package translation

import (
	"strings"
	"testing"

	"github.com/senspa/spadmin-go/internal/model"
)

var langs = model.SupportedLanguages

func TestNewSetFillsAllLanguages(t *testing.T) {
	existing := []model.Translation{
		{Language: "en", Name: "Facial care"},
		{Language: "xx", Name: "ignored"},
	}

	s := NewSet(existing, langs)
	entries := s.Entries()

	if len(entries) != len(langs) {
		t.Fatalf("entries = %d, want %d", len(entries), len(langs))
	}
	for i, lang := range langs {
		if entries[i].Language != lang {
			t.Errorf("entries[%d].Language = %s, want %s (fixed order)", i, entries[i].Language, lang)
		}
	}

	en, _ := s.Get("en")
	if en.Name != "Facial care" {
		t.Errorf("en name = %q, want existing value", en.Name)
	}
	vi, _ := s.Get("vi")
	if vi.Name != "" || vi.Description != "" {
		t.Errorf("vi placeholder = %+v, want empty", vi)
	}
}

func TestUpdateIsImmutable(t *testing.T) {
	s := NewSet([]model.Translation{{Language: "en", Name: "Old"}}, langs)

	s2 := s.Update("vi", "name", "Tên mới")

	if got, _ := s2.Get("vi"); got.Name != "Tên mới" {
		t.Errorf("updated vi name = %q", got.Name)
	}
	if got, _ := s2.Get("en"); got.Name != "Old" {
		t.Errorf("en entry changed as a side effect: %q", got.Name)
	}
	if got, _ := s.Get("vi"); got.Name != "" {
		t.Errorf("original set mutated: vi name = %q", got.Name)
	}
}

func TestPayloadDropsEmptyEntriesAndDerivesSlug(t *testing.T) {
	s := NewSet([]model.Translation{
		{Language: "vi", Name: "Tên", Description: ""},
		{Language: "en", Name: "", Description: ""},
	}, langs)

	payload := s.Payload("category")

	if len(payload) != 1 {
		t.Fatalf("payload entries = %d, want exactly 1", len(payload))
	}
	if payload[0].Language != "vi" {
		t.Errorf("payload language = %s, want vi", payload[0].Language)
	}
	if payload[0].Slug != "ten" {
		t.Errorf("slug = %q, want %q derived from name", payload[0].Slug, "ten")
	}
}

func TestPayloadTrimsWhitespace(t *testing.T) {
	s := NewSet([]model.Translation{
		{Language: "vi", Name: "  Chăm sóc da  ", Description: " mô tả "},
		{Language: "en", Name: "   ", Description: "\t"},
	}, langs)

	payload := s.Payload("service")

	if len(payload) != 1 {
		t.Fatalf("payload entries = %d, want 1 (whitespace-only entry dropped)", len(payload))
	}
	if payload[0].Name != "Chăm sóc da" || payload[0].Description != "mô tả" {
		t.Errorf("payload not trimmed: %+v", payload[0])
	}
}

func TestPayloadSlugFallback(t *testing.T) {
	// Canonical name of pure punctuation slugifies to nothing.
	s := NewSet([]model.Translation{
		{Language: "vi", Name: "!!!", Description: "x"},
	}, langs)

	payload := s.Payload("slide")
	if len(payload) != 1 {
		t.Fatalf("payload entries = %d, want 1", len(payload))
	}
	if !strings.HasPrefix(payload[0].Slug, "slide-") {
		t.Errorf("slug = %q, want generated slide-<token> fallback", payload[0].Slug)
	}
}

func TestSlugFallsBackWhenDerivedSlugInvalid(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		want      string
		fallback  bool
	}{
		{"plain name", "Chăm sóc da", "cham-soc-da", false},
		{"punctuation only", "!!!", "", true},
		{"empty name", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet([]model.Translation{
				{Language: "vi", Name: tt.canonical},
			}, langs)

			got := s.Slug("blog")
			if tt.fallback {
				if !strings.HasPrefix(got, "blog-") {
					t.Errorf("slug = %q, want generated blog-<token> fallback", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("slug = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	full := []model.Translation{
		{Language: "vi", Name: "Tên", Description: "Mô tả", Content: "Nội dung"},
		{Language: "en", Name: "Name", Description: "Description"},
		{Language: "ko", Name: "이름"},
		{Language: "zh", Name: "名字", Content: "内容"},
		{Language: "ru", Name: "Имя", Description: "Описание"},
	}

	payload := NewSet(full, langs).Payload("blog")

	if len(payload) != len(full) {
		t.Fatalf("payload entries = %d, want %d", len(payload), len(full))
	}
	for i, want := range full {
		got := payload[i]
		if got.Language != want.Language || got.Name != want.Name ||
			got.Description != want.Description || got.Content != want.Content {
			t.Errorf("entry %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		viName  string
		wantErr bool
	}{
		{"canonical name present", "Tên", false},
		{"canonical name empty", "", true},
		{"canonical name whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet([]model.Translation{{Language: "vi", Name: tt.viName}}, langs)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFromForm(t *testing.T) {
	values := map[string]string{
		"name_vi":        "Tên",
		"description_vi": "Mô tả",
		"name_en":        "Name",
	}

	s := FromForm(func(k string) string { return values[k] }, langs)

	vi, _ := s.Get("vi")
	if vi.Name != "Tên" || vi.Description != "Mô tả" {
		t.Errorf("vi entry = %+v", vi)
	}
	en, _ := s.Get("en")
	if en.Name != "Name" {
		t.Errorf("en entry = %+v", en)
	}
	if len(s.Entries()) != len(langs) {
		t.Errorf("entries = %d, want %d", len(s.Entries()), len(langs))
	}
}
