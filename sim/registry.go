package sim

// FilterSettings is the canonical, merge-ready shape of one filter kind's
// settings. Each built-in kind uses its own concrete struct (GroupMembership,
// ScoreInterval, Vintage, ...); the alias exists so signatures read as what
// they carry rather than a bare any.
type FilterSettings = any

// MergeEnv carries the resolution-wide context a merge needs: the inherited
// song count every percentage-to-count conversion runs against, the current
// real-world season for open-ended vintage ranges, and the pass RNG for the
// few merges that draw.
type MergeEnv struct {
	// SongCount is the resolved total song count for this pass.
	SongCount int

	// Now is the current airing season, used as the open upper bound of
	// implicit vintage ranges. Injected so tests pin it.
	Now SeasonYear

	// RNG is the pass's random stream.
	RNG *RNG
}

// FilterHandler implements one filter kind: decoding a node's raw authored
// settings into the canonical shape, merging same-scope instances, and
// supplying defaults for kinds authored in the graph but left with zero
// surviving instances.
//
// Merge is an explicit typed function per kind. There is deliberately no
// generic path-walking fallback: a new settings leaf that the kind's merge
// does not handle is a compile-time concern in the handler, never a silently
// guessed strategy.
type FilterHandler interface {
	// DefinitionID returns the kind this handler implements.
	DefinitionID() string

	// Resolve decodes one node's raw authored settings into the canonical
	// merge-ready shape. Structural problems (a field required by the
	// declared mode is missing or malformed) are returned as *SettingsError.
	Resolve(node Node) (FilterSettings, error)

	// Merge combines the canonical settings of every same-scope instance
	// into one. Called only with two or more members; single-member groups
	// pass through untouched.
	Merge(members []FilterSettings, env MergeEnv) (FilterSettings, error)

	// Defaults returns the kind's hardcoded default settings, used when the
	// kind is authored somewhere in the graph but no instance survives
	// selection.
	Defaults(env MergeEnv) FilterSettings

	// Inspect runs the kind's advisory pre-flight checks over one node's raw
	// settings, appending findings to the report.
	Inspect(node Node, rep *Report)
}

// Registry maps filter definition IDs to their handlers. It is constructed
// explicitly and passed into the engine; nothing self-registers at import
// time, so behavior never depends on package load order.
type Registry map[string]FilterHandler

// Handler looks up the handler for a definition ID.
func (r Registry) Handler(definitionID string) (FilterHandler, bool) {
	h, ok := r[definitionID]
	return h, ok
}

// NewDefaultRegistry builds a registry with every built-in filter kind.
func NewDefaultRegistry() Registry {
	handlers := []FilterHandler{
		&membershipHandler{id: "genres"},
		&membershipHandler{id: "tags"},
		&songCategoriesHandler{},
		&scoreHandler{id: "player-score"},
		&scoreHandler{id: "anime-score"},
		&difficultyHandler{},
		&vintageHandler{},
		&animeTypeHandler{},
		&songTypesHandler{},
	}
	reg := make(Registry, len(handlers))
	for _, h := range handlers {
		reg[h.DefinitionID()] = h
	}
	return reg
}
