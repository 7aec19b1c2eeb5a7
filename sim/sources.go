package sim

// sourceEntrySpec is one user's authored share of a multi-user source list.
type sourceEntrySpec struct {
	Name       string        `json:"name"`
	Percentage NumberOrRange `json:"percentage"`
}

// sourceListSettings is the authored settings payload of a source-list node.
type sourceListSettings struct {
	// Percentage is the list's own share spec. Defaults to 100 when absent.
	Percentage *NumberOrRange `json:"percentage,omitempty"`

	// Entries carries per-user share specs for multi-user lists.
	Entries []sourceEntrySpec `json:"entries,omitempty"`
}

// resolveSourceList turns one source-list node into its concrete shares.
// The list's own percentage resolves by one draw when ranged. When the node
// carries several per-entry percentages, the entries re-run the allocator
// against a ceiling of 100 so they always sum to exactly 100 regardless of
// how the individual draws landed.
func resolveSourceList(node Node, rng *RNG) (ResolvedSourceList, error) {
	var spec sourceListSettings
	if err := decodeSettings(node.Settings, &spec); err != nil {
		return ResolvedSourceList{}, &SettingsError{NodeID: node.ID, DefinitionID: node.DefinitionID, Field: "percentage", Err: err}
	}

	resolved := ResolvedSourceList{
		NodeID:       node.ID,
		DefinitionID: node.DefinitionID,
		Percentage:   100,
	}
	if spec.Percentage != nil {
		if spec.Percentage.Ranged {
			resolved.Percentage = rng.IntBetween(int(spec.Percentage.Min), int(spec.Percentage.Max))
		} else {
			resolved.Percentage = int(spec.Percentage.Value)
		}
	}

	if len(spec.Entries) > 0 {
		entries := make([]AllocationEntry, len(spec.Entries))
		for i, e := range spec.Entries {
			entries[i] = AllocationEntry{
				Label: e.Name,
				Kind:  EntryStatic,
				Value: int(e.Percentage.Value),
			}
			if e.Percentage.Ranged {
				entries[i].Kind = EntryRange
				entries[i].Min = int(e.Percentage.Min)
				entries[i].Max = int(e.Percentage.Max)
			}
		}
		shares := AllocateToTotal(entries, 100, rng)
		resolved.Entries = make([]ResolvedSourceEntry, len(spec.Entries))
		for i, e := range spec.Entries {
			resolved.Entries[i] = ResolvedSourceEntry{Name: e.Name, Percentage: shares[e.Name]}
		}
	}
	return resolved, nil
}
