package sim

// GroupMembership is the canonical settings shape shared by the genres and
// tags filter kinds: three disjoint name sets.
type GroupMembership struct {
	// Included entries must be present in every song.
	Included []string `json:"included"`

	// Excluded entries must not appear.
	Excluded []string `json:"excluded"`

	// Optional entries may appear but are not required.
	Optional []string `json:"optional"`
}

// membershipHandler implements the genres and tags kinds. Both share the
// include/exclude/optional shape; only the definition ID differs.
type membershipHandler struct {
	id string
}

func (h *membershipHandler) DefinitionID() string { return h.id }

func (h *membershipHandler) Resolve(node Node) (FilterSettings, error) {
	var s GroupMembership
	if err := decodeSettings(node.Settings, &s); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: h.id, Field: "included", Err: err}
	}
	return s, nil
}

// Merge unions each set across the members, then restores the disjointness
// invariant: any name landing in both included and excluded is removed from
// both and demoted to optional, since the authors disagreed on whether it is
// mandatory.
func (h *membershipHandler) Merge(members []FilterSettings, _ MergeEnv) (FilterSettings, error) {
	var inc, exc, opt [][]string
	for _, m := range members {
		s := m.(GroupMembership)
		inc = append(inc, s.Included)
		exc = append(exc, s.Excluded)
		opt = append(opt, s.Optional)
	}
	merged := GroupMembership{
		Included: unionStrings(inc...),
		Excluded: unionStrings(exc...),
		Optional: unionStrings(opt...),
	}

	excluded := make(map[string]bool, len(merged.Excluded))
	for _, name := range merged.Excluded {
		excluded[name] = true
	}
	var conflicted []string
	for _, name := range merged.Included {
		if excluded[name] {
			conflicted = append(conflicted, name)
		}
	}
	if len(conflicted) > 0 {
		drop := make(map[string]bool, len(conflicted))
		for _, name := range conflicted {
			drop[name] = true
		}
		merged.Included = withoutStrings(merged.Included, drop)
		merged.Excluded = withoutStrings(merged.Excluded, drop)
		merged.Optional = unionStrings(merged.Optional, conflicted)
	}
	return merged, nil
}

func (h *membershipHandler) Defaults(_ MergeEnv) FilterSettings {
	return GroupMembership{}
}

func (h *membershipHandler) Inspect(node Node, rep *Report) {
	s, err := h.Resolve(node)
	if err != nil {
		rep.Errorf(node.ID, "%v", err)
		return
	}
	m := s.(GroupMembership)
	excluded := make(map[string]bool, len(m.Excluded))
	for _, name := range m.Excluded {
		excluded[name] = true
	}
	for _, name := range m.Included {
		if excluded[name] {
			rep.Warnf(node.ID, "%s %q is both included and excluded", h.id, name)
		}
	}
}

// withoutStrings returns set minus the dropped names, preserving order.
func withoutStrings(set []string, drop map[string]bool) []string {
	var out []string
	for _, s := range set {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}
