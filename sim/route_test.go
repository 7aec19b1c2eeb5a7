package sim

import "testing"

func routerNode(routes ...map[string]any) Node {
	rs := make([]any, len(routes))
	for i, r := range routes {
		rs[i] = r
	}
	return Node{
		ID:       "router",
		Type:     NodeRouter,
		Settings: map[string]any{"routes": rs},
	}
}

// TestSelectRoute_Weighting verifies that empirical selection frequencies
// converge to the relative route weights over many seeds.
func TestSelectRoute_Weighting(t *testing.T) {
	router := routerNode(
		map[string]any{"id": "r1", "name": "thirty", "percentage": 30, "enabled": true},
		map[string]any{"id": "r2", "name": "seventy", "percentage": 70, "enabled": true},
	)

	counts := map[string]int{}
	const passes = 10000
	for seed := int64(0); seed < passes; seed++ {
		route, err := SelectRoute(router, NewRNG(seed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route == nil {
			t.Fatal("expected a route")
		}
		counts[route.ID]++
	}

	ratio := float64(counts["r1"]) / passes
	if ratio < 0.27 || ratio > 0.33 {
		t.Errorf("30%% route selected %.1f%% of the time", ratio*100)
	}
}

func TestSelectRoute_EdgeCases(t *testing.T) {
	t.Run("disabled and zero-weight routes never win", func(t *testing.T) {
		router := routerNode(
			map[string]any{"id": "off", "name": "off", "percentage": 100, "enabled": false},
			map[string]any{"id": "zero", "name": "zero", "percentage": 0, "enabled": true},
			map[string]any{"id": "on", "name": "on", "percentage": 10, "enabled": true},
		)
		for seed := int64(0); seed < 200; seed++ {
			route, err := SelectRoute(router, NewRNG(seed))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if route == nil || route.ID != "on" {
				t.Fatalf("seed %d: expected route on, got %+v", seed, route)
			}
		}
	})

	t.Run("no enabled routes yields nil", func(t *testing.T) {
		router := routerNode(
			map[string]any{"id": "off", "name": "off", "percentage": 50, "enabled": false},
		)
		route, err := SelectRoute(router, NewRNG(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if route != nil {
			t.Errorf("expected nil route, got %+v", route)
		}
	})

	t.Run("weights need not sum to 100", func(t *testing.T) {
		router := routerNode(
			map[string]any{"id": "a", "name": "a", "percentage": 3, "enabled": true},
			map[string]any{"id": "b", "name": "b", "percentage": 1, "enabled": true},
		)
		counts := map[string]int{}
		for seed := int64(0); seed < 4000; seed++ {
			route, _ := SelectRoute(router, NewRNG(seed))
			counts[route.ID]++
		}
		ratio := float64(counts["a"]) / 4000
		if ratio < 0.70 || ratio > 0.80 {
			t.Errorf("3:1 route selected %.1f%% of the time, want ~75%%", ratio*100)
		}
	})
}

func TestPassesExecution(t *testing.T) {
	t.Run("nil always passes", func(t *testing.T) {
		rng := NewRNG(1)
		for i := 0; i < 100; i++ {
			if !PassesExecution(nil, rng) {
				t.Fatal("nil chance failed")
			}
		}
	})

	t.Run("hundred percent always passes", func(t *testing.T) {
		rng := NewRNG(2)
		for i := 0; i < 100; i++ {
			if !PassesExecution(&ExecutionChance{Percent: 100}, rng) {
				t.Fatal("100% chance failed")
			}
		}
	})

	t.Run("zero percent practically never passes", func(t *testing.T) {
		rng := NewRNG(3)
		passes := 0
		for i := 0; i < 1000; i++ {
			if PassesExecution(&ExecutionChance{Percent: 0}, rng) {
				passes++
			}
		}
		if passes > 0 {
			t.Errorf("0%% chance passed %d of 1000 rolls", passes)
		}
	})

	t.Run("ranged chance rolls within bounds", func(t *testing.T) {
		// With min=max=50 the ranged form degenerates to a flat 50%; check
		// the pass rate lands near it.
		rng := NewRNG(4)
		passes := 0
		for i := 0; i < 10000; i++ {
			if PassesExecution(&ExecutionChance{Ranged: true, Min: 50, Max: 50}, rng) {
				passes++
			}
		}
		ratio := float64(passes) / 10000
		if ratio < 0.46 || ratio > 0.54 {
			t.Errorf("50%% ranged chance passed %.1f%% of rolls", ratio*100)
		}
	})
}
