package sim

// SongTypes is the canonical settings of the songs-and-types kind. The type
// fields say which kinds of songs fill the quiz; the selection fields say how
// songs are drawn from the pool. The two groups are independent quantities:
// selection describes how songs are chosen, not an additional count against
// the total.
type SongTypes struct {
	Openings int `json:"openings"`
	Endings  int `json:"endings"`
	Inserts  int `json:"inserts"`

	Random  int `json:"random"`
	Watched int `json:"watched"`
}

type songTypesHandler struct{}

func (h *songTypesHandler) DefinitionID() string { return "songs-and-types" }

func (h *songTypesHandler) Resolve(node Node) (FilterSettings, error) {
	var s SongTypes
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "openings", Err: err}
	}
	return s, nil
}

// Merge sums the type fields and the selection fields as two independent
// groups, rescaling each group to the inherited song count only when its own
// sum overflows it (proportional scale, rounding residual folded into the
// largest entry).
func (h *songTypesHandler) Merge(members []FilterSettings, env MergeEnv) (FilterSettings, error) {
	var merged SongTypes
	for _, m := range members {
		s := m.(SongTypes)
		merged.Openings += s.Openings
		merged.Endings += s.Endings
		merged.Inserts += s.Inserts
		merged.Random += s.Random
		merged.Watched += s.Watched
	}

	if merged.Openings+merged.Endings+merged.Inserts > env.SongCount {
		types := scaleToTotal([]int{merged.Openings, merged.Endings, merged.Inserts}, env.SongCount)
		merged.Openings, merged.Endings, merged.Inserts = types[0], types[1], types[2]
	}
	if merged.Random+merged.Watched > env.SongCount {
		sel := scaleToTotal([]int{merged.Random, merged.Watched}, env.SongCount)
		merged.Random, merged.Watched = sel[0], sel[1]
	}
	return merged, nil
}

func (h *songTypesHandler) Defaults(env MergeEnv) FilterSettings {
	return SongTypes{Openings: env.SongCount, Random: env.SongCount}
}

func (h *songTypesHandler) Inspect(node Node, rep *Report) {
	var s SongTypes
	if err := decodeSettings(node.Settings, &s); err != nil {
		rep.Errorf(node.ID, "songs-and-types settings are malformed: %v", err)
		return
	}
	for _, v := range []int{s.Openings, s.Endings, s.Inserts, s.Random, s.Watched} {
		if v < 0 {
			rep.Errorf(node.ID, "songs-and-types quantities must not be negative")
			return
		}
	}
}
