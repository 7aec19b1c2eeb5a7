package sim

import "fmt"

// Season enumerates airing seasons in calendar order.
type Season int

// Airing seasons.
const (
	Winter Season = iota
	Spring
	Summer
	Fall
)

// String returns the season's display name.
func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	}
	return fmt.Sprintf("Season(%d)", int(s))
}

// SeasonYear is one airing season of one year.
type SeasonYear struct {
	Year   int    `json:"year"`
	Season Season `json:"season"`
}

// Before reports whether s airs strictly earlier than other.
func (s SeasonYear) Before(other SeasonYear) bool {
	return s.Year*4+int(s.Season) < other.Year*4+int(other.Season)
}

// vintageOrigin is the open lower bound of implicit vintage ranges: the first
// season the song catalog covers.
var vintageOrigin = SeasonYear{Year: 1944, Season: Winter}

// Vintage allocation modes.
const (
	VintageModeCount      = "count"
	VintageModePercentage = "percentage"
)

// VintageRange is one airing-period range with its allocated quantity.
// Advanced ranges carry an explicit allocation; non-advanced ranges absorb
// whatever quantity the explicit ones leave uncovered.
type VintageRange struct {
	From     SeasonYear `json:"from"`
	To       SeasonYear `json:"to"`
	Advanced bool       `json:"advanced,omitempty"`
	Count    int        `json:"count,omitempty"`
	Percent  float64    `json:"percent,omitempty"`
}

// Vintage is the canonical settings of the vintage kind. The merged form is
// always count mode: percentage allocations are converted against the
// inherited song count during merging.
type Vintage struct {
	Mode   string         `json:"mode"`
	Ranges []VintageRange `json:"ranges"`
}

type vintageHandler struct{}

func (h *vintageHandler) DefinitionID() string { return "vintage" }

func (h *vintageHandler) Resolve(node Node) (FilterSettings, error) {
	var s Vintage
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "ranges", Err: err}
	}
	if s.Mode == "" {
		s.Mode = VintageModeCount
	}
	for _, r := range s.Ranges {
		if r.To.Before(r.From) {
			return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.DefinitionID(), Field: "ranges"}
		}
	}
	return s, nil
}

// Merge concatenates every member's ranges, never merging them
// geometrically. Explicitly allocated (advanced) ranges are rescaled
// proportionally when their sum exceeds the mode ceiling, with rounding
// drift folded into the largest one; once they cover the ceiling, exactly or
// in excess, non-advanced allocations are zeroed so the total never
// overshoots. When they under-cover the ceiling, one
// implicit random range spanning the catalog origin through the current
// real-world season carries the remainder. Percentage-mode allocations are
// then converted to absolute song counts and the result always reports count
// mode.
func (h *vintageHandler) Merge(members []FilterSettings, env MergeEnv) (FilterSettings, error) {
	mode := members[0].(Vintage).Mode
	ceiling := env.SongCount
	if mode == VintageModePercentage {
		ceiling = 100
	}

	var ranges []VintageRange
	for _, m := range members {
		ranges = append(ranges, m.(Vintage).Ranges...)
	}

	allocations := make([]int, len(ranges))
	advancedSum := 0
	var advancedIdx []int
	for i, r := range ranges {
		v := r.Count
		if mode == VintageModePercentage {
			v = int(r.Percent + 0.5)
		}
		allocations[i] = v
		if r.Advanced {
			advancedIdx = append(advancedIdx, i)
			advancedSum += v
		}
	}

	switch {
	case advancedSum >= ceiling:
		advanced := make([]int, len(advancedIdx))
		for i, idx := range advancedIdx {
			advanced[i] = allocations[idx]
		}
		advanced = scaleToTotal(advanced, ceiling)
		for i, idx := range advancedIdx {
			allocations[idx] = advanced[i]
		}
		// Explicit ranges consumed the whole ceiling; implicit ones get
		// nothing, including any authored counts they carried.
		for i, r := range ranges {
			if !r.Advanced {
				allocations[i] = 0
			}
		}
	default:
		remainder := ceiling - advancedSum
		implicit := -1
		for i, r := range ranges {
			if !r.Advanced {
				implicit = i
				break
			}
		}
		if implicit >= 0 {
			allocations[implicit] = remainder
			for i := implicit + 1; i < len(ranges); i++ {
				if !ranges[i].Advanced {
					allocations[i] = 0
				}
			}
		} else {
			ranges = append(ranges, VintageRange{From: vintageOrigin, To: env.Now})
			allocations = append(allocations, remainder)
		}
	}

	if mode == VintageModePercentage {
		counts := make([]int, len(allocations))
		for i, pct := range allocations {
			counts[i] = percentToCount(float64(pct), env.SongCount)
		}
		allocations = scaleToTotal(counts, env.SongCount)
	}

	for i := range ranges {
		ranges[i].Count = allocations[i]
		ranges[i].Percent = 0
	}
	return Vintage{Mode: VintageModeCount, Ranges: ranges}, nil
}

func (h *vintageHandler) Defaults(env MergeEnv) FilterSettings {
	return Vintage{
		Mode:   VintageModeCount,
		Ranges: []VintageRange{{From: vintageOrigin, To: env.Now, Count: env.SongCount}},
	}
}

func (h *vintageHandler) Inspect(node Node, rep *Report) {
	var s Vintage
	if err := decodeSettings(node.Settings, &s); err != nil {
		rep.Errorf(node.ID, "vintage settings are malformed: %v", err)
		return
	}
	for _, r := range s.Ranges {
		if r.To.Before(r.From) {
			rep.Errorf(node.ID, "vintage range from %s %d is after its end %s %d",
				r.From.Season, r.From.Year, r.To.Season, r.To.Year)
		}
	}
}
