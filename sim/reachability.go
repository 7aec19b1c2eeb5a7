package sim

// ReachableFromRoute returns the set of node IDs reachable from routerID when
// the given route is taken. The BFS starts on the edges leaving the router
// through the route's source handle and then follows every ordinary edge
// downstream; the router itself is pre-seeded into the visited set so cycles
// back into it terminate.
//
// A nil result means "unconstrained": when nothing was reachable (or there is
// no router at all, in which case callers never invoke this) downstream
// consumers must treat the graph as having no route filtering rather than as
// having nothing reachable.
func ReachableFromRoute(edges []Edge, routerID, routeID string) map[string]bool {
	visited := map[string]bool{routerID: true}
	var frontier []string

	for _, e := range edges {
		if e.Source == routerID && e.SourceHandle == routeID && !visited[e.Target] {
			visited[e.Target] = true
			frontier = append(frontier, e.Target)
		}
	}
	if len(frontier) == 0 {
		return nil
	}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, e := range edges {
			if e.Source == cur && !visited[e.Target] {
				visited[e.Target] = true
				frontier = append(frontier, e.Target)
			}
		}
	}
	return visited
}

// ConnectedToTerminal prunes nodes that have no relationship with any
// terminal-type node. A node survives if a forward walk from it reaches a
// terminal node, or if an undirected walk from it reaches any node that does.
// Fully isolated islands are dropped.
//
// When the graph contains no terminal-type node at all the filter is a no-op:
// with no terminal there is nothing meaningful to prune against.
func ConnectedToTerminal(nodes []Node, edges []Edge, terminal NodeType) []Node {
	hasTerminal := false
	for _, n := range nodes {
		if n.Type == terminal {
			hasTerminal = true
			break
		}
	}
	if !hasTerminal {
		return nodes
	}

	forward := make(map[string][]string)
	undirected := make(map[string][]string)
	for _, e := range edges {
		forward[e.Source] = append(forward[e.Source], e.Target)
		undirected[e.Source] = append(undirected[e.Source], e.Target)
		undirected[e.Target] = append(undirected[e.Target], e.Source)
	}

	isTerminal := make(map[string]bool)
	for _, n := range nodes {
		if n.Type == terminal {
			isTerminal[n.ID] = true
		}
	}

	// anchored: nodes whose forward walk reaches a terminal.
	anchored := make(map[string]bool)
	for _, n := range nodes {
		if bfsHits(n.ID, forward, isTerminal) {
			anchored[n.ID] = true
		}
	}

	var kept []Node
	for _, n := range nodes {
		if anchored[n.ID] || bfsHits(n.ID, undirected, anchored) {
			kept = append(kept, n)
		}
	}
	return kept
}

// bfsHits walks adj from start and reports whether any visited node (start
// included) satisfies goal.
func bfsHits(start string, adj map[string][]string, goal map[string]bool) bool {
	if goal[start] {
		return true
	}
	visited := map[string]bool{start: true}
	frontier := []string{start}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, next := range adj[cur] {
			if visited[next] {
				continue
			}
			if goal[next] {
				return true
			}
			visited[next] = true
			frontier = append(frontier, next)
		}
	}
	return false
}
