package sim

import "testing"

func TestReachableFromRoute(t *testing.T) {
	edges := []Edge{
		{Source: "router", Target: "a", SourceHandle: "r1"},
		{Source: "router", Target: "b", SourceHandle: "r2"},
		{Source: "a", Target: "c"},
		{Source: "c", Target: "d"},
		{Source: "x", Target: "y"},
	}

	t.Run("follows only the chosen route", func(t *testing.T) {
		got := ReachableFromRoute(edges, "router", "r1")
		for _, id := range []string{"router", "a", "c", "d"} {
			if !got[id] {
				t.Errorf("expected %q reachable", id)
			}
		}
		for _, id := range []string{"b", "x", "y"} {
			if got[id] {
				t.Errorf("did not expect %q reachable", id)
			}
		}
	})

	t.Run("route with no edges is unconstrained", func(t *testing.T) {
		if got := ReachableFromRoute(edges, "router", "r999"); got != nil {
			t.Errorf("expected nil (unconstrained), got %v", got)
		}
	})

	t.Run("cycle back into router terminates", func(t *testing.T) {
		cyclic := append(edges, Edge{Source: "d", Target: "router"})
		got := ReachableFromRoute(cyclic, "router", "r1")
		if !got["d"] {
			t.Error("expected d reachable through the cycle")
		}
	})
}

func TestConnectedToTerminal(t *testing.T) {
	nodes := []Node{
		{ID: "songs", Type: NodeNumberOfSongs},
		{ID: "upstream", Type: NodeFilter, DefinitionID: "genres"},
		{ID: "sibling", Type: NodeBasicSettings},
		{ID: "island", Type: NodeFilter, DefinitionID: "tags"},
	}
	edges := []Edge{
		{Source: "upstream", Target: "songs"},
		{Source: "upstream", Target: "sibling"},
	}

	t.Run("keeps forward-connected and undirected-connected", func(t *testing.T) {
		kept := ConnectedToTerminal(nodes, edges, NodeNumberOfSongs)
		ids := make(map[string]bool)
		for _, n := range kept {
			ids[n.ID] = true
		}
		for _, want := range []string{"songs", "upstream", "sibling"} {
			if !ids[want] {
				t.Errorf("expected %q kept", want)
			}
		}
		if ids["island"] {
			t.Error("expected isolated node dropped")
		}
	})

	t.Run("no terminal anywhere is a no-op", func(t *testing.T) {
		noTerminal := []Node{
			{ID: "a", Type: NodeFilter},
			{ID: "b", Type: NodeFilter},
		}
		kept := ConnectedToTerminal(noTerminal, nil, NodeNumberOfSongs)
		if len(kept) != 2 {
			t.Errorf("expected all %d nodes kept, got %d", len(noTerminal), len(kept))
		}
	})

	t.Run("downstream of terminal survives via undirected walk", func(t *testing.T) {
		graph := []Node{
			{ID: "songs", Type: NodeNumberOfSongs},
			{ID: "after", Type: NodeFilter},
		}
		kept := ConnectedToTerminal(graph, []Edge{{Source: "songs", Target: "after"}}, NodeNumberOfSongs)
		if len(kept) != 2 {
			t.Errorf("expected both nodes kept, got %d", len(kept))
		}
	})
}
