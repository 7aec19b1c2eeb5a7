package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quizforge/quizgraph/sim/emit"
	"github.com/quizforge/quizgraph/sim/store"
)

// defaultSongCount is the inherited song count when no number-of-songs node
// survives the pass. Percentage conversions need some total to run against.
const defaultSongCount = 20

// Engine resolves authored quiz graphs into concrete configurations.
//
// An Engine is immutable after construction and safe for concurrent use:
// each pass builds its own RNG from its seed, and passes share nothing else
// mutable. The filter registry defines which filter kinds the engine
// understands; it is supplied explicitly, so two engines with different
// registries can coexist in one process.
type Engine struct {
	registry Registry
	emitter  emit.Emitter
	metrics  *PrometheusMetrics
	store    store.Store[ResolvedConfiguration]
	now      func() time.Time
}

// New creates an Engine with the given filter registry.
func New(registry Registry, opts ...Option) (*Engine, error) {
	cfg := engineConfig{
		emitter: emit.NewNullEmitter(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Engine{
		registry: registry,
		emitter:  cfg.emitter,
		metrics:  cfg.metrics,
		store:    cfg.store,
		now:      cfg.now,
	}, nil
}

// Simulate resolves the graph under a fresh seed. The seed is recorded in
// the returned configuration, so the pass can be replayed exactly by handing
// the same graph and seed to SimulateSeeded.
func (e *Engine) Simulate(ctx context.Context, nodes []Node, edges []Edge) (*ResolvedConfiguration, error) {
	return e.SimulateSeeded(ctx, nodes, edges, NewSeed())
}

// SimulateSeeded resolves the graph under the given seed.
//
// The pass is a pure function of (nodes, edges, seed): nodes are never
// mutated, randomness is consumed in a fixed sequential order, and identical
// inputs always reproduce an identical configuration. Structural settings
// errors abort the pass; a partially resolved configuration is never
// returned.
func (e *Engine) SimulateSeeded(ctx context.Context, nodes []Node, edges []Edge, seed int64) (*ResolvedConfiguration, error) {
	start := time.Now()
	cfg, err := e.resolve(nodes, edges, seed)
	if err != nil {
		e.metrics.RecordPass("error", time.Since(start), len(nodes))
		e.emitter.Emit(emit.Event{Seed: seed, Msg: emit.MsgPassError, Meta: map[string]any{"error": err.Error()}})
		return nil, err
	}
	e.metrics.RecordPass("success", time.Since(start), len(nodes))
	e.emitter.Emit(emit.Event{
		Seed: seed,
		Msg:  emit.MsgPassComplete,
		Meta: map[string]any{"duration_ms": float64(time.Since(start).Microseconds()) / 1000},
	})
	return cfg, nil
}

// resolve runs the orchestration sequence. Randomness consumption order is
// part of the replay contract: router, basic settings, number of songs,
// filters (in first-appearance definition order), then source lists.
func (e *Engine) resolve(nodes []Node, edges []Edge, seed int64) (*ResolvedConfiguration, error) {
	rng := NewRNG(seed)
	cfg := &ResolvedConfiguration{
		Seed:        seed,
		Filters:     []ResolvedFilter{},
		SourceLists: []ResolvedSourceList{},
	}
	e.emitter.Emit(emit.Event{Seed: seed, Msg: emit.MsgPassStart, Meta: map[string]any{"nodes": len(nodes)}})
	step := 0

	// Route selection. At most one router is expected; the chosen route
	// constrains which downstream nodes participate, and no router (or no
	// selectable route) means no route filtering at all.
	routers := nodesOfType(nodes, NodeRouter)
	if len(routers) > 1 {
		return nil, ErrMultipleRouters
	}
	var reachable map[string]bool
	if len(routers) == 1 {
		route, err := SelectRoute(routers[0], rng)
		if err != nil {
			return nil, err
		}
		if route != nil {
			cfg.Route = route
			reachable = ReachableFromRoute(edges, routers[0].ID, route.ID)
			step++
			e.emitter.Emit(emit.Event{
				Seed: seed, Step: step, NodeID: routers[0].ID, Msg: emit.MsgRouteSelected,
				Meta: map[string]any{"route": route.Name},
			})
		}
	}

	connected := make(map[string]bool)
	for _, n := range ConnectedToTerminal(nodes, edges, NodeNumberOfSongs) {
		connected[n.ID] = true
	}
	inPlay := func(n Node) bool {
		if reachable != nil && !reachable[n.ID] {
			return false
		}
		return connected[n.ID]
	}

	// Basic settings: route + connectivity pruning, selection, then exactly
	// one effective instance. These are never merged.
	basics, err := e.selectOne(nodesOfType(nodes, NodeBasicSettings), nodes, edges, inPlay, rng)
	if err != nil {
		return nil, err
	}
	if basics != nil {
		step++
		e.emitter.Emit(emit.Event{Seed: seed, Step: step, NodeID: basics.ID, Msg: emit.MsgSelection,
			Meta: map[string]any{"group": string(NodeBasicSettings)}})
		resolved, err := resolveBasicSettings(*basics, rng)
		if err != nil {
			return nil, err
		}
		cfg.BasicSettings = resolved
	}

	// Number of songs: same pipeline; its resolved value is the inherited
	// song count every later percentage conversion runs against.
	cfg.NumberOfSongs = defaultSongCount
	songNode, err := e.selectOne(nodesOfType(nodes, NodeNumberOfSongs), nodes, edges, inPlay, rng)
	if err != nil {
		return nil, err
	}
	if songNode != nil {
		count, err := resolveNumberOfSongs(*songNode, rng)
		if err != nil {
			return nil, err
		}
		cfg.NumberOfSongs = count
		step++
		e.emitter.Emit(emit.Event{Seed: seed, Step: step, NodeID: songNode.ID, Msg: emit.MsgSelection,
			Meta: map[string]any{"group": string(NodeNumberOfSongs), "count": count}})
	}

	env := MergeEnv{
		SongCount: cfg.NumberOfSongs,
		Now:       currentSeason(e.now()),
		RNG:       rng,
	}

	// Filters: per definition ID, prune, select, group by scope, merge.
	// Every kind authored anywhere in the graph appears in the output, with
	// default settings when nothing survived.
	filters := nodesOfType(nodes, NodeFilter)
	for _, definitionID := range definitionOrder(filters) {
		handler, ok := e.registry.Handler(definitionID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, definitionID)
		}

		var group []Node
		for _, n := range filters {
			if n.DefinitionID == definitionID && inPlay(n) {
				group = append(group, n)
			}
		}
		selected, fellBack, err := applySelection(group, nodes, edges, rng)
		if err != nil {
			return nil, err
		}
		if fellBack {
			e.metrics.RecordFallbackSelection()
		}

		if len(selected) == 0 {
			step++
			cfg.Filters = append(cfg.Filters, ResolvedFilter{
				DefinitionID: definitionID,
				Settings:     handler.Defaults(env),
			})
			e.emitter.Emit(emit.Event{Seed: seed, Step: step, Msg: emit.MsgFilterDefault,
				Meta: map[string]any{"definition_id": definitionID}})
			continue
		}

		for _, g := range groupFilters(selected, nodes, edges) {
			resolved, err := resolveGroup(g, handler, env)
			if err != nil {
				return nil, err
			}
			cfg.Filters = append(cfg.Filters, resolved)
			step++
			if len(g.members) > 1 {
				e.metrics.RecordMerge(definitionID)
			}
			e.emitter.Emit(emit.Event{Seed: seed, Step: step, Msg: emit.MsgFilterMerged,
				Meta: map[string]any{"definition_id": definitionID, "members": len(g.members), "scope": g.scopeKey}})
		}
	}

	// Source lists: connectivity pruning only. Sources are independent and
	// additive, so no route gating, no selection, no merging.
	for _, n := range nodesOfType(nodes, NodeSourceList) {
		if !connected[n.ID] {
			continue
		}
		resolved, err := resolveSourceList(n, rng)
		if err != nil {
			return nil, err
		}
		cfg.SourceLists = append(cfg.SourceLists, resolved)
		step++
		e.emitter.Emit(emit.Event{Seed: seed, Step: step, NodeID: n.ID, Msg: emit.MsgSourceList})
	}

	return cfg, nil
}

// selectOne runs pruning and selection over a group whose types resolve to a
// single effective instance. When more than one node survives selection, one
// is picked uniformly.
func (e *Engine) selectOne(group []Node, nodes []Node, edges []Edge, inPlay func(Node) bool, rng *RNG) (*Node, error) {
	var pruned []Node
	for _, n := range group {
		if inPlay(n) {
			pruned = append(pruned, n)
		}
	}
	selected, fellBack, err := applySelection(pruned, nodes, edges, rng)
	if err != nil {
		return nil, err
	}
	if fellBack {
		e.metrics.RecordFallbackSelection()
	}
	switch len(selected) {
	case 0:
		return nil, nil
	case 1:
		return &selected[0], nil
	default:
		picked := selected[rng.Pick(len(selected))]
		return &picked, nil
	}
}

// SaveSnapshot persists a resolved configuration under id for later replay.
func (e *Engine) SaveSnapshot(ctx context.Context, id string, cfg *ResolvedConfiguration) error {
	if e.store == nil {
		return ErrNoStore
	}
	return e.store.Save(ctx, store.Snapshot[ResolvedConfiguration]{
		ID:        id,
		Seed:      cfg.Seed,
		Config:    *cfg,
		CreatedAt: e.now().UTC(),
	})
}

// LoadSnapshot retrieves a previously saved configuration.
func (e *Engine) LoadSnapshot(ctx context.Context, id string) (*ResolvedConfiguration, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	snapshot, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg := snapshot.Config
	return &cfg, nil
}

// Replay re-resolves the graph under a snapshot's stored seed and verifies
// the result matches the snapshot byte for byte. A mismatch means the graph
// changed since the snapshot was taken and returns ErrReplayMismatch
// alongside the freshly resolved configuration.
func (e *Engine) Replay(ctx context.Context, id string, nodes []Node, edges []Edge) (*ResolvedConfiguration, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	snapshot, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg, err := e.SimulateSeeded(ctx, nodes, edges, snapshot.Seed)
	if err != nil {
		return nil, err
	}

	// Stored settings come back as generic JSON values while a fresh pass
	// carries typed ones, so both sides are compared in canonical JSON form.
	want, err := canonicalJSON(snapshot.Config)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %q: %w", id, err)
	}
	got, err := canonicalJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode replayed configuration: %w", err)
	}
	if !bytes.Equal(want, got) {
		return cfg, fmt.Errorf("snapshot %q: %w", id, ErrReplayMismatch)
	}
	return cfg, nil
}

// canonicalJSON encodes v through a generic JSON round trip, erasing the
// difference between typed values and their decoded map form.
func canonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// definitionOrder returns the distinct filter definition IDs in
// first-appearance order, which fixes both output ordering and the order
// randomness is consumed in.
func definitionOrder(filters []Node) []string {
	seen := make(map[string]bool)
	var order []string
	for _, n := range filters {
		if !seen[n.DefinitionID] {
			seen[n.DefinitionID] = true
			order = append(order, n.DefinitionID)
		}
	}
	return order
}

// currentSeason maps a wall-clock time onto its airing season.
func currentSeason(t time.Time) SeasonYear {
	return SeasonYear{
		Year:   t.Year(),
		Season: Season((int(t.Month()) - 1) / 3),
	}
}
