package sim

import "testing"

func TestAnimeTypeMerge(t *testing.T) {
	h := &animeTypeHandler{}

	t.Run("simple toggles OR together", func(t *testing.T) {
		out, err := h.Merge([]FilterSettings{
			AnimeTypes{ViewMode: ViewSimple, TV: true},
			AnimeTypes{ViewMode: ViewSimple, Movie: true, OVA: true},
		}, MergeEnv{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := out.(AnimeTypes)
		if !s.TV || !s.Movie || !s.OVA || s.ONA || s.Special {
			t.Fatalf("merged toggles = %+v", s)
		}
	})

	t.Run("advanced counts sum and enables OR", func(t *testing.T) {
		out, err := h.Merge([]FilterSettings{
			AnimeTypes{ViewMode: ViewAdvanced, Advanced: map[string]AnimeTypeDetail{
				"tv": {Enabled: true, Count: 10},
			}},
			AnimeTypes{ViewMode: ViewAdvanced, Advanced: map[string]AnimeTypeDetail{
				"tv":    {Count: 5},
				"movie": {Enabled: true, Count: 3},
			}},
		}, MergeEnv{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := out.(AnimeTypes)
		if d := s.Advanced["tv"]; !d.Enabled || d.Count != 15 {
			t.Errorf("tv = %+v, want enabled with 15", d)
		}
		if d := s.Advanced["movie"]; !d.Enabled || d.Count != 3 {
			t.Errorf("movie = %+v, want enabled with 3", d)
		}
	})

	t.Run("mixed modes keep the first member's advanced view", func(t *testing.T) {
		out, err := h.Merge([]FilterSettings{
			AnimeTypes{ViewMode: ViewAdvanced, Advanced: map[string]AnimeTypeDetail{
				"tv": {Enabled: true, Count: 10},
			}},
			AnimeTypes{ViewMode: ViewSimple, Movie: true, Advanced: map[string]AnimeTypeDetail{
				"tv": {Count: 99},
			}},
		}, MergeEnv{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := out.(AnimeTypes)
		if d := s.Advanced["tv"]; d.Count != 10 {
			t.Errorf("tv count = %d, want the first member's 10", d.Count)
		}
		if !s.Movie {
			t.Error("simple toggles should still OR across mixed modes")
		}
	})
}

func TestAnimeTypeResolve(t *testing.T) {
	h := &animeTypeHandler{}

	t.Run("advanced without details is rejected", func(t *testing.T) {
		_, err := h.Resolve(Node{ID: "a1", Settings: map[string]any{"viewMode": ViewAdvanced}})
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("empty mode defaults to simple", func(t *testing.T) {
		got, err := h.Resolve(Node{ID: "a2", Settings: map[string]any{"tv": true}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.(AnimeTypes).ViewMode != ViewSimple {
			t.Fatalf("ViewMode = %q", got.(AnimeTypes).ViewMode)
		}
	})
}

func TestAnimeTypeDefaults(t *testing.T) {
	h := &animeTypeHandler{}
	s := h.Defaults(MergeEnv{}).(AnimeTypes)
	if !s.TV || !s.Movie || !s.OVA || !s.ONA || !s.Special {
		t.Fatalf("defaults = %+v, want every type enabled", s)
	}
}
