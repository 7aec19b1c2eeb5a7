package sim

// ResolvedConfiguration is the fully concrete output of one resolution pass,
// together with the seed that produced it. Persisting the seed alongside the
// input graph allows exact replay.
type ResolvedConfiguration struct {
	// Seed is the random seed the pass consumed.
	Seed int64 `json:"seed"`

	// Route is the router branch taken, nil when the graph has no router or
	// the router had no selectable route.
	Route *Route `json:"route,omitempty"`

	// BasicSettings is the single effective basic-settings instance, nil
	// when none survived.
	BasicSettings *ResolvedBasicSettings `json:"basicSettings,omitempty"`

	// NumberOfSongs is the resolved total song count, shared by every
	// percentage-to-count conversion downstream.
	NumberOfSongs int `json:"numberOfSongs,omitempty"`

	// Filters holds one entry per authored filter kind and scope. Kinds
	// authored anywhere in the graph always appear, falling back to their
	// default settings when no instance survived selection.
	Filters []ResolvedFilter `json:"filters"`

	// SourceLists holds every connected source list; sources are independent
	// and additive, so they are never routed, gated, or merged.
	SourceLists []ResolvedSourceList `json:"sourceLists"`
}

// ResolvedFilter is one merged filter in its canonical settings shape.
type ResolvedFilter struct {
	DefinitionID string `json:"definitionId"`

	// Settings is the kind's canonical settings struct (GroupMembership,
	// ScoreInterval, Vintage, ...).
	Settings FilterSettings `json:"settings"`

	// ScopeSourceIDs restricts the filter to these song sources. Nil means
	// all sources.
	ScopeSourceIDs []string `json:"scopeSourceIds,omitempty"`
}

// ResolvedBasicSettings carries the effective lobby settings. Ranged guess
// times pass through verbatim for later per-song resolution; the sample
// point is always passed through verbatim.
type ResolvedBasicSettings struct {
	GuessTime      NumberOrRange `json:"guessTime"`
	ExtraGuessTime NumberOrRange `json:"extraGuessTime"`
	SamplePoint    NumberOrRange `json:"samplePoint"`
	PlaybackSpeed  float64       `json:"playbackSpeed"`
}

// ResolvedSourceList is one song source with its concrete share.
type ResolvedSourceList struct {
	NodeID       string `json:"nodeId"`
	DefinitionID string `json:"definitionId"`

	// Percentage is the list's own resolved share.
	Percentage int `json:"percentage"`

	// Entries carries per-user shares for multi-user lists, allocated to sum
	// to exactly 100.
	Entries []ResolvedSourceEntry `json:"entries,omitempty"`
}

// ResolvedSourceEntry is one user's share of a multi-user source list.
type ResolvedSourceEntry struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}
