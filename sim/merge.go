package sim

import (
	"sort"
	"strings"
)

// scopeAllSources is the sentinel scope key for filters not restricted to any
// particular song source.
const scopeAllSources = "*"

// filterGroup is one merge unit: every selected filter instance sharing a
// definition ID and a source scope.
type filterGroup struct {
	definitionID string
	scopeKey     string
	scopeIDs     []string // nil when unscoped
	members      []Node
}

// scopeSources returns the sorted IDs of the source-list nodes a filter is
// scoped to via attached source-selector nodes. A filter is scoped when a
// source-selector node links into it over a scope-handle edge; the selector's
// own upstream source-list nodes form the scope. Nil when unscoped.
func scopeSources(filterID string, nodes []Node, edges []Edge) []string {
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	seen := make(map[string]bool)
	var sources []string
	for _, e := range edges {
		if !e.IsScopeLink() || e.Target != filterID {
			continue
		}
		selector, ok := byID[e.Source]
		if !ok || selector.Type != NodeSourceSelector {
			continue
		}
		for _, in := range edges {
			if in.Target != selector.ID {
				continue
			}
			if src, ok := byID[in.Source]; ok && src.Type == NodeSourceList && !seen[src.ID] {
				seen[src.ID] = true
				sources = append(sources, src.ID)
			}
		}
	}
	sort.Strings(sources)
	return sources
}

// scopeKey canonicalizes a scope source set into a comparable key. Instances
// with differing keys are never merged even when their definition IDs match.
func scopeKey(scopeIDs []string) string {
	if len(scopeIDs) == 0 {
		return scopeAllSources
	}
	return strings.Join(scopeIDs, ",")
}

// groupFilters buckets selected filter instances by (definitionID, scopeKey),
// preserving first-appearance order of the groups so output ordering is
// stable across passes.
func groupFilters(selected []Node, nodes []Node, edges []Edge) []filterGroup {
	index := make(map[string]int)
	var groups []filterGroup
	for _, n := range selected {
		ids := scopeSources(n.ID, nodes, edges)
		key := n.DefinitionID + "|" + scopeKey(ids)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, filterGroup{
				definitionID: n.DefinitionID,
				scopeKey:     scopeKey(ids),
				scopeIDs:     ids,
			})
		}
		groups[i].members = append(groups[i].members, n)
	}
	return groups
}

// resolveGroup collapses one filter group into a single ResolvedFilter.
// Single-member groups pass through their resolved settings unchanged;
// multi-member groups run the kind's typed merge.
func resolveGroup(g filterGroup, h FilterHandler, env MergeEnv) (ResolvedFilter, error) {
	members := make([]FilterSettings, 0, len(g.members))
	for _, n := range g.members {
		s, err := h.Resolve(n)
		if err != nil {
			return ResolvedFilter{}, err
		}
		members = append(members, s)
	}

	settings := members[0]
	if len(members) > 1 {
		merged, err := h.Merge(members, env)
		if err != nil {
			return ResolvedFilter{}, err
		}
		settings = merged
	}

	return ResolvedFilter{
		DefinitionID:   g.definitionID,
		Settings:       settings,
		ScopeSourceIDs: g.scopeIDs,
	}, nil
}

// unionStrings merges string sets, deduplicating and sorting.
func unionStrings(sets ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range sets {
		for _, s := range set {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
