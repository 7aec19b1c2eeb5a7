package sim

// AnimeTypeDetail is the advanced per-type allocation of the anime-type kind.
type AnimeTypeDetail struct {
	Enabled bool `json:"enabled"`
	Count   int  `json:"count,omitempty"`
}

// AnimeTypes is the canonical settings of the anime-type kind. Simple mode
// toggles broad type flags; advanced mode allocates per-type quantities.
type AnimeTypes struct {
	ViewMode string `json:"viewMode"`

	// Simple-mode toggles.
	TV      bool `json:"tv,omitempty"`
	Movie   bool `json:"movie,omitempty"`
	OVA     bool `json:"ova,omitempty"`
	ONA     bool `json:"ona,omitempty"`
	Special bool `json:"special,omitempty"`

	// Advanced-mode per-type details.
	Advanced map[string]AnimeTypeDetail `json:"advanced,omitempty"`
}

type animeTypeHandler struct{}

func (h *animeTypeHandler) DefinitionID() string { return "anime-type" }

func (h *animeTypeHandler) Resolve(node Node) (FilterSettings, error) {
	var s AnimeTypes
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "viewMode", Err: err}
	}
	if s.ViewMode == "" {
		s.ViewMode = ViewSimple
	}
	if s.ViewMode == ViewAdvanced && len(s.Advanced) == 0 {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "advanced"}
	}
	return s, nil
}

// Merge OR-combines the boolean type flags when every member shares one view
// mode; advanced numeric sub-fields sum and their enabled flags OR. On mixed
// view modes the members are not speaking the same language, so the first
// member wins wholesale except for the OR-able simple toggles, which still
// combine across all members.
func (h *animeTypeHandler) Merge(members []FilterSettings, _ MergeEnv) (FilterSettings, error) {
	first := members[0].(AnimeTypes)
	mixed := false
	for _, m := range members[1:] {
		if m.(AnimeTypes).ViewMode != first.ViewMode {
			mixed = true
			break
		}
	}

	merged := first
	merged.Advanced = nil
	for name, d := range first.Advanced {
		if merged.Advanced == nil {
			merged.Advanced = make(map[string]AnimeTypeDetail)
		}
		merged.Advanced[name] = d
	}

	for _, m := range members[1:] {
		s := m.(AnimeTypes)
		merged.TV = merged.TV || s.TV
		merged.Movie = merged.Movie || s.Movie
		merged.OVA = merged.OVA || s.OVA
		merged.ONA = merged.ONA || s.ONA
		merged.Special = merged.Special || s.Special
		if mixed {
			continue
		}
		for name, d := range s.Advanced {
			if merged.Advanced == nil {
				merged.Advanced = make(map[string]AnimeTypeDetail)
			}
			prev := merged.Advanced[name]
			merged.Advanced[name] = AnimeTypeDetail{
				Enabled: prev.Enabled || d.Enabled,
				Count:   prev.Count + d.Count,
			}
		}
	}
	return merged, nil
}

func (h *animeTypeHandler) Defaults(_ MergeEnv) FilterSettings {
	return AnimeTypes{ViewMode: ViewSimple, TV: true, Movie: true, OVA: true, ONA: true, Special: true}
}

func (h *animeTypeHandler) Inspect(node Node, rep *Report) {
	var s AnimeTypes
	if err := decodeSettings(node.Settings, &s); err != nil {
		rep.Errorf(node.ID, "anime-type settings are malformed: %v", err)
		return
	}
	for name, d := range s.Advanced {
		if d.Count < 0 {
			rep.Errorf(node.ID, "anime-type count for %q is negative", name)
		}
	}
}
