package sim

import (
	"reflect"
	"testing"
)

func TestSongCategoriesMerge(t *testing.T) {
	h := &songCategoriesHandler{}

	t.Run("matching modes sum shares", func(t *testing.T) {
		out, err := h.Merge([]FilterSettings{
			SongCategories{ViewMode: ViewSimple, Categories: map[string]int{"standard": 60, "character": 20}},
			SongCategories{ViewMode: ViewSimple, Categories: map[string]int{"standard": 10, "chanting": 5}},
		}, MergeEnv{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := out.(SongCategories)
		want := map[string]int{"standard": 70, "character": 20, "chanting": 5}
		if !reflect.DeepEqual(s.Categories, want) {
			t.Fatalf("Categories = %v, want %v", s.Categories, want)
		}
	})

	t.Run("mixed modes keep the first member", func(t *testing.T) {
		out, err := h.Merge([]FilterSettings{
			SongCategories{ViewMode: ViewAdvanced, Categories: map[string]int{"standard": 40}},
			SongCategories{ViewMode: ViewSimple, Categories: map[string]int{"standard": 60}},
		}, MergeEnv{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := out.(SongCategories)
		if s.ViewMode != ViewAdvanced || s.Categories["standard"] != 40 {
			t.Fatalf("merged = %+v, want the first member untouched", s)
		}
	})
}

func TestSongCategoriesInspect(t *testing.T) {
	h := &songCategoriesHandler{}
	var rep Report
	h.Inspect(Node{ID: "c1", Settings: map[string]any{
		"categories": map[string]any{"standard": -5},
	}}, &rep)
	if len(rep.Errors) != 1 {
		t.Fatalf("expected one negative-share error, got %+v", rep.Errors)
	}
}
