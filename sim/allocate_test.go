package sim

import "testing"

// TestAllocateToTotal_Exactness verifies the core allocation contract: the
// output always sums to exactly the target and static entries keep their
// fixed values, for any mix of static and ranged entries.
func TestAllocateToTotal_Exactness(t *testing.T) {
	cases := []struct {
		name    string
		entries []AllocationEntry
		target  int
	}{
		{
			name: "all static",
			entries: []AllocationEntry{
				{Label: "a", Kind: EntryStatic, Value: 30},
				{Label: "b", Kind: EntryStatic, Value: 70},
			},
			target: 100,
		},
		{
			name: "all ranged",
			entries: []AllocationEntry{
				{Label: "a", Kind: EntryRange, Min: 10, Max: 60},
				{Label: "b", Kind: EntryRange, Min: 10, Max: 60},
				{Label: "c", Kind: EntryRange, Min: 10, Max: 60},
			},
			target: 100,
		},
		{
			name: "mixed",
			entries: []AllocationEntry{
				{Label: "fixed", Kind: EntryStatic, Value: 25},
				{Label: "low", Kind: EntryRange, Min: 5, Max: 50},
				{Label: "high", Kind: EntryRange, Min: 25, Max: 70},
			},
			target: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(0); seed < 50; seed++ {
				got := AllocateToTotal(tc.entries, tc.target, NewRNG(seed))

				sum := 0
				for _, v := range got {
					sum += v
				}
				if sum != tc.target {
					t.Fatalf("seed %d: allocations sum to %d, want %d (%v)", seed, sum, tc.target, got)
				}
				for _, e := range tc.entries {
					if e.Kind == EntryStatic && got[e.Label] != e.Value {
						t.Fatalf("seed %d: static entry %q changed: got %d, want %d",
							seed, e.Label, got[e.Label], e.Value)
					}
				}
			}
		})
	}
}

// TestAllocateToTotal_Deterministic verifies same seed, same allocation.
func TestAllocateToTotal_Deterministic(t *testing.T) {
	entries := []AllocationEntry{
		{Label: "a", Kind: EntryRange, Min: 0, Max: 100},
		{Label: "b", Kind: EntryRange, Min: 0, Max: 100},
	}
	a := AllocateToTotal(entries, 100, NewRNG(11))
	b := AllocateToTotal(entries, 100, NewRNG(11))
	if a["a"] != b["a"] || a["b"] != b["b"] {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestScaleToTotal(t *testing.T) {
	t.Run("preserves total exactly", func(t *testing.T) {
		got := scaleToTotal([]int{3, 3, 3}, 20)
		sum := 0
		for _, v := range got {
			sum += v
		}
		if sum != 20 {
			t.Errorf("scaled values sum to %d, want 20 (%v)", sum, got)
		}
	})

	t.Run("downscales overflow", func(t *testing.T) {
		got := scaleToTotal([]int{60, 60}, 100)
		if got[0]+got[1] != 100 {
			t.Errorf("scaled values sum to %d, want 100 (%v)", got[0]+got[1], got)
		}
	})

	t.Run("exact input untouched", func(t *testing.T) {
		got := scaleToTotal([]int{40, 60}, 100)
		if got[0] != 40 || got[1] != 60 {
			t.Errorf("exact input was rescaled: %v", got)
		}
	})

	t.Run("all zero untouched", func(t *testing.T) {
		got := scaleToTotal([]int{0, 0}, 50)
		if got[0] != 0 || got[1] != 0 {
			t.Errorf("zero input was rescaled: %v", got)
		}
	})
}

func TestPercentToCount(t *testing.T) {
	cases := []struct {
		pct   float64
		total int
		want  int
	}{
		{50, 20, 10},
		{33, 20, 7}, // 6.6 rounds up
		{0, 20, 0},
		{100, 20, 20},
	}
	for _, tc := range cases {
		if got := percentToCount(tc.pct, tc.total); got != tc.want {
			t.Errorf("percentToCount(%g, %d) = %d, want %d", tc.pct, tc.total, got, tc.want)
		}
	}
}
