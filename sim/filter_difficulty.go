package sim

// Fixed difficulty bands used when a basic-mode member is converted to the
// advanced range form.
var (
	basicEasyBand   = [2]float64{60, 100}
	basicMediumBand = [2]float64{25, 60}
	basicHardBand   = [2]float64{0, 25}
)

// DifficultyRange is one advanced-mode difficulty band with its allocated
// song quantity. Percent-specified bands are materialized into counts during
// merging, once the inherited song count is known.
type DifficultyRange struct {
	From    float64 `json:"from"`
	To      float64 `json:"to"`
	Count   int     `json:"count,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

// SongDifficulty is the canonical settings of the song-difficulty kind.
// Basic mode toggles easy/medium/hard bands with a percentage each; advanced
// mode lists explicit ranges. The merged form is always advanced.
type SongDifficulty struct {
	ViewMode string `json:"viewMode"`

	// Basic-mode percentages; nil means the band is toggled off.
	Easy   *float64 `json:"easy,omitempty"`
	Medium *float64 `json:"medium,omitempty"`
	Hard   *float64 `json:"hard,omitempty"`

	// Advanced-mode ranges.
	Ranges []DifficultyRange `json:"ranges,omitempty"`
}

type difficultyHandler struct{}

func (h *difficultyHandler) DefinitionID() string { return "song-difficulty" }

func (h *difficultyHandler) Resolve(node Node) (FilterSettings, error) {
	var s SongDifficulty
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "viewMode", Err: err}
	}
	if s.ViewMode == "" {
		s.ViewMode = ViewSimple
	}
	if s.ViewMode == ViewAdvanced && len(s.Ranges) == 0 {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "ranges"}
	}
	for _, r := range s.Ranges {
		if r.From > r.To {
			return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "ranges"}
		}
	}
	return s, nil
}

// Merge converts every basic-mode member to the fixed advanced bands
// (easy 60-100, medium 25-60, hard 0-25, percentage turned into a count
// against the inherited song count), concatenates all ranges without any
// geometric overlap resolution, then rescales the counts proportionally when
// their sum misses the inherited song count, folding the rounding residual
// into the single largest range. When the members carry no quantity at all,
// the first range (or a synthesized full-spectrum one when there are no
// ranges either) takes the entire count.
func (h *difficultyHandler) Merge(members []FilterSettings, env MergeEnv) (FilterSettings, error) {
	var ranges []DifficultyRange
	for _, m := range members {
		ranges = append(ranges, advancedRanges(m.(SongDifficulty), env.SongCount)...)
	}
	if len(ranges) == 0 {
		ranges = []DifficultyRange{{From: 0, To: 100}}
	}

	counts := make([]int, len(ranges))
	sum := 0
	for i, r := range ranges {
		counts[i] = r.Count
		sum += r.Count
	}
	if sum == 0 {
		// Zero authored mass leaves the rescale nothing to work with; the
		// first range absorbs the full song count.
		counts[0] = env.SongCount
	} else {
		counts = scaleToTotal(counts, env.SongCount)
	}
	for i := range ranges {
		ranges[i].Count = counts[i]
		ranges[i].Percent = 0
	}

	return SongDifficulty{ViewMode: ViewAdvanced, Ranges: ranges}, nil
}

// advancedRanges normalizes one member to the advanced form with counts.
func advancedRanges(s SongDifficulty, songCount int) []DifficultyRange {
	if s.ViewMode == ViewAdvanced {
		out := make([]DifficultyRange, len(s.Ranges))
		for i, r := range s.Ranges {
			if r.Count == 0 && r.Percent > 0 {
				r.Count = percentToCount(r.Percent, songCount)
				r.Percent = 0
			}
			out[i] = r
		}
		return out
	}

	var out []DifficultyRange
	for _, band := range []struct {
		pct    *float64
		bounds [2]float64
	}{
		{s.Easy, basicEasyBand},
		{s.Medium, basicMediumBand},
		{s.Hard, basicHardBand},
	} {
		if band.pct == nil {
			continue
		}
		out = append(out, DifficultyRange{
			From:  band.bounds[0],
			To:    band.bounds[1],
			Count: percentToCount(*band.pct, songCount),
		})
	}
	return out
}

func (h *difficultyHandler) Defaults(env MergeEnv) FilterSettings {
	return SongDifficulty{
		ViewMode: ViewAdvanced,
		Ranges:   []DifficultyRange{{From: 0, To: 100, Count: env.SongCount}},
	}
}

func (h *difficultyHandler) Inspect(node Node, rep *Report) {
	var s SongDifficulty
	if err := decodeSettings(node.Settings, &s); err != nil {
		rep.Errorf(node.ID, "song-difficulty settings are malformed: %v", err)
		return
	}
	for _, r := range s.Ranges {
		if r.From > r.To {
			rep.Errorf(node.ID, "song-difficulty range starts at %g, after its end %g", r.From, r.To)
		}
		if r.From < 0 || r.To > 100 {
			rep.Warnf(node.ID, "song-difficulty range [%g, %g] lies outside [0, 100]", r.From, r.To)
		}
	}
	for _, pct := range []*float64{s.Easy, s.Medium, s.Hard} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			rep.Errorf(node.ID, "song-difficulty percentage %g lies outside [0, 100]", *pct)
		}
	}
}
