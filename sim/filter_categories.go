package sim

// View modes shared by the kinds whose settings have a simple toggle form and
// an advanced per-entry form.
const (
	ViewSimple   = "simple"
	ViewAdvanced = "advanced"
)

// SongCategories is the canonical settings of the song-categories kind: a
// view mode plus a per-category share table.
type SongCategories struct {
	ViewMode   string         `json:"viewMode"`
	Categories map[string]int `json:"categories"`
}

type songCategoriesHandler struct{}

func (h *songCategoriesHandler) DefinitionID() string { return "song-categories" }

func (h *songCategoriesHandler) Resolve(node Node) (FilterSettings, error) {
	var s SongCategories
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "categories", Err: err}
	}
	if s.ViewMode == "" {
		s.ViewMode = ViewSimple
	}
	return s, nil
}

// Merge adds category shares when every member agrees on one view mode. When
// view modes differ the shares are not comparable quantities, so the additive
// merge is discarded and the first member's settings win wholesale.
func (h *songCategoriesHandler) Merge(members []FilterSettings, _ MergeEnv) (FilterSettings, error) {
	first := members[0].(SongCategories)
	for _, m := range members[1:] {
		if m.(SongCategories).ViewMode != first.ViewMode {
			return first, nil
		}
	}

	merged := SongCategories{ViewMode: first.ViewMode, Categories: map[string]int{}}
	for _, m := range members {
		for name, share := range m.(SongCategories).Categories {
			merged.Categories[name] += share
		}
	}
	return merged, nil
}

func (h *songCategoriesHandler) Defaults(_ MergeEnv) FilterSettings {
	return SongCategories{ViewMode: ViewSimple, Categories: map[string]int{}}
}

func (h *songCategoriesHandler) Inspect(node Node, rep *Report) {
	s, err := h.Resolve(node)
	if err != nil {
		rep.Errorf(node.ID, "%v", err)
		return
	}
	for name, share := range s.(SongCategories).Categories {
		if share < 0 {
			rep.Errorf(node.ID, "song-categories share for %q is negative", name)
		}
	}
}
