package sim

import "sort"

// ScoreInterval is the canonical settings shape shared by the player-score
// and anime-score kinds: an inclusive score interval, scores carved out of
// it, and optional per-score percentage buckets.
type ScoreInterval struct {
	Min int `json:"min"`
	Max int `json:"max"`

	// Disallowed lists scores inside [Min, Max] that must not match.
	Disallowed []int `json:"disallowed,omitempty"`

	// Buckets maps a score to its percentage share of the song pool.
	Buckets map[int]int `json:"buckets,omitempty"`
}

type scoreHandler struct {
	id string
}

func (h *scoreHandler) DefinitionID() string { return h.id }

func (h *scoreHandler) Resolve(node Node) (FilterSettings, error) {
	var s ScoreInterval
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.id, Field: "min", Err: err}
	}
	if s.Min > s.Max {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.id, Field: "max"}
	}
	return s, nil
}

// Merge widens the interval to the envelope of every member and records the
// uncovered scores. Member intervals are sorted by lower bound; every integer
// falling strictly between consecutive intervals joins the disallowed set, so
// merging [2,5] and [8,10] yields [2,10] minus {6,7}. Percentage buckets sum
// per score; when the summed percentages exceed 100 every bucket is rescaled
// by 100/sum, rounding.
func (h *scoreHandler) Merge(members []FilterSettings, _ MergeEnv) (FilterSettings, error) {
	intervals := make([]ScoreInterval, len(members))
	for i, m := range members {
		intervals[i] = m.(ScoreInterval)
	}
	sort.SliceStable(intervals, func(i, j int) bool { return intervals[i].Min < intervals[j].Min })

	merged := ScoreInterval{Min: intervals[0].Min, Max: intervals[0].Max}
	disallowed := make(map[int]bool)
	covered := intervals[0].Max // highest score covered so far
	for _, iv := range intervals {
		if iv.Min < merged.Min {
			merged.Min = iv.Min
		}
		if iv.Max > merged.Max {
			merged.Max = iv.Max
		}
		for g := covered + 1; g < iv.Min; g++ {
			disallowed[g] = true
		}
		if iv.Max > covered {
			covered = iv.Max
		}
		for _, d := range iv.Disallowed {
			disallowed[d] = true
		}
	}
	for d := range disallowed {
		merged.Disallowed = append(merged.Disallowed, d)
	}
	sort.Ints(merged.Disallowed)

	buckets := make(map[int]int)
	sum := 0
	for _, iv := range intervals {
		for score, pct := range iv.Buckets {
			buckets[score] += pct
			sum += pct
		}
	}
	if sum > 100 {
		factor := 100.0 / float64(sum)
		for score, pct := range buckets {
			buckets[score] = int(float64(pct)*factor + 0.5)
		}
	}
	if len(buckets) > 0 {
		merged.Buckets = buckets
	}
	return merged, nil
}

func (h *scoreHandler) Defaults(_ MergeEnv) FilterSettings {
	return ScoreInterval{Min: 1, Max: 10}
}

func (h *scoreHandler) Inspect(node Node, rep *Report) {
	var s ScoreInterval
	if err := decodeSettings(node.Settings, &s); err != nil {
		rep.Errorf(node.ID, "%s settings are malformed: %v", h.id, err)
		return
	}
	if s.Min > s.Max {
		rep.Errorf(node.ID, "%s minimum %d exceeds maximum %d", h.id, s.Min, s.Max)
	}
	for _, d := range s.Disallowed {
		if d < s.Min || d > s.Max {
			rep.Warnf(node.ID, "%s disallowed score %d lies outside [%d, %d]", h.id, d, s.Min, s.Max)
		}
	}
}
