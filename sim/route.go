package sim

// routerSettings is the decoded settings payload of a router node.
type routerSettings struct {
	Routes []Route `json:"routes"`
}

// SelectRoute picks one weighted route among the router's enabled routes.
//
// Percentages are relative weights, not required to sum to 100: the draw is
// scaled by the total weight and walked against cumulative sums, returning
// the first route whose cumulative weight covers the draw. The last candidate
// absorbs floating-point edge cases where the draw lands a hair past the
// total. Routes that are disabled or weighted at zero never win.
//
// Returns nil when the router has no enabled routes with positive weight.
func SelectRoute(router Node, rng *RNG) (*Route, error) {
	var settings routerSettings
	if err := decodeSettings(router.Settings, &settings); err != nil {
		return nil, &SettingsError{NodeID: router.ID, DefinitionID: router.DefinitionID, Field: "routes", Err: err}
	}

	var candidates []Route
	total := 0.0
	for _, r := range settings.Routes {
		if r.Enabled && r.Percentage > 0 {
			candidates = append(candidates, r)
			total += r.Percentage
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	draw := rng.Float() * total
	cum := 0.0
	for i, r := range candidates {
		cum += r.Percentage
		if cum >= draw || i == len(candidates)-1 {
			picked := r
			return &picked, nil
		}
	}
	// Unreachable: the loop always returns on the last candidate.
	picked := candidates[len(candidates)-1]
	return &picked, nil
}

// PassesExecution rolls a node's execution gate.
//
// A nil chance always passes. A ranged chance first rolls a concrete percent
// uniformly from [Min, Max]; a flat chance uses its percent directly. The
// node passes when a uniform draw over [0, 100) lands at or under the
// concrete percent, so 0 always fails anything but a 0.0 draw boundary and
// 100 always passes.
func PassesExecution(chance *ExecutionChance, rng *RNG) bool {
	if chance == nil {
		return true
	}
	var concrete float64
	if chance.Ranged {
		concrete = float64(rng.IntBetween(chance.Min, chance.Max))
	} else {
		concrete = clampPercent(chance.Percent)
	}
	return rng.Float()*100 <= concrete
}
