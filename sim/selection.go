package sim

// modifierSettings is the raw settings payload of a selection-modifier node.
// Pointers distinguish "unset" from zero so Min can default to 1.
type modifierSettings struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// modifierFor locates the selection-modifier spec governing a group of
// same-type nodes: the bounds of the single selection-modifier node attached
// (in either direction) to any group member. Returns nil when no modifier
// targets the group.
//
// Two distinct modifier nodes targeting one group is undefined behavior in
// the authoring model; rather than silently picking one, the engine refuses
// with ErrAmbiguousModifier. The pre-flight pass reports the same condition.
func modifierFor(group []Node, nodes []Node, edges []Edge) (*SelectionModifierSpec, error) {
	modifiers := make(map[string]Node)
	for _, n := range nodes {
		if n.Type == NodeSelectionModifier {
			modifiers[n.ID] = n
		}
	}
	if len(modifiers) == 0 {
		return nil, nil
	}

	inGroup := make(map[string]bool, len(group))
	for _, n := range group {
		inGroup[n.ID] = true
	}

	var found *Node
	for _, e := range edges {
		var mod Node
		var ok bool
		switch {
		case inGroup[e.Target]:
			mod, ok = modifiers[e.Source]
		case inGroup[e.Source]:
			mod, ok = modifiers[e.Target]
		}
		if !ok {
			continue
		}
		if found != nil && found.ID != mod.ID {
			return nil, ErrAmbiguousModifier
		}
		m := mod
		found = &m
	}
	if found == nil {
		return nil, nil
	}

	var raw modifierSettings
	if err := decodeSettings(found.Settings, &raw); err != nil {
		return nil, &SettingsError{NodeID: found.ID, Field: "min", Err: err}
	}
	spec := SelectionModifierSpec{Min: 1, Max: len(group)}
	if raw.Min != nil {
		spec.Min = *raw.Min
	}
	if raw.Max != nil {
		spec.Max = *raw.Max
	}
	return &spec, nil
}

// applySelection runs the probabilistic selection step over one group of
// same-type nodes.
//
// When no group member is flagged as selection-modified, every node simply
// rolls its own execution gate and the passers survive: no cardinality
// constraint applies. Otherwise the governing modifier's bounds kick in:
//
//   - zero eligible nodes: exactly one node is picked uniformly from the
//     original unfiltered group, guaranteeing a minimum of one even when
//     every node individually failed its roll;
//   - at most max eligible: all are kept;
//   - more than max: exactly max are sampled via an unbiased seeded shuffle.
//
// The second return reports whether the forced fallback fired.
func applySelection(group []Node, nodes []Node, edges []Edge, rng *RNG) ([]Node, bool, error) {
	if len(group) == 0 {
		return nil, false, nil
	}

	modified := false
	for _, n := range group {
		if n.SelectionModified {
			modified = true
			break
		}
	}

	if !modified {
		var kept []Node
		for _, n := range group {
			if PassesExecution(n.ExecutionChance, rng) {
				kept = append(kept, n)
			}
		}
		return kept, false, nil
	}

	spec, err := modifierFor(group, nodes, edges)
	if err != nil {
		return nil, false, err
	}
	if spec == nil {
		spec = &SelectionModifierSpec{Min: 1, Max: len(group)}
	}

	var eligible []Node
	for _, n := range group {
		if PassesExecution(n.ExecutionChance, rng) {
			eligible = append(eligible, n)
		}
	}

	switch {
	case len(eligible) == 0:
		return []Node{group[rng.Pick(len(group))]}, true, nil
	case len(eligible) <= spec.Max:
		return eligible, false, nil
	default:
		sampled := make([]Node, len(eligible))
		copy(sampled, eligible)
		rng.Shuffle(len(sampled), func(i, j int) {
			sampled[i], sampled[j] = sampled[j], sampled[i]
		})
		return sampled[:spec.Max], false, nil
	}
}
