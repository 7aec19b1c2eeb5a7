package sim

// EntryKind distinguishes fixed allocation entries from ranged ones.
type EntryKind string

// Allocation entry kinds.
const (
	EntryStatic EntryKind = "static"
	EntryRange  EntryKind = "range"
)

// AllocationEntry is one labeled quantity handed to AllocateToTotal: either a
// fixed value or an inclusive [Min, Max] range. Range entries must satisfy
// Min <= Max, both within the active domain ceiling (100 in percentage mode,
// the total song count in count mode). That invariant is validated upstream
// by the pre-flight pass, not here.
type AllocationEntry struct {
	Label string
	Kind  EntryKind
	Value int
	Min   int
	Max   int
}

// AllocateToTotal turns a mix of fixed and ranged quantities into integers
// summing to exactly target.
//
// Static entries contribute their fixed value untouched. Each range entry
// draws one uniform integer from its range. Independent draws rarely land
// exactly on target, so the signed residual is corrected deterministically by
// adding it to the single currently-largest ranged allocation (ties broken by
// input order) rather than by re-drawing, which would burn extra randomness
// and break replay alignment.
//
// Callers are responsible for feasibility: all-static entries must already
// sum to target, and mixed inputs must satisfy
// staticSum+Σmin <= target <= staticSum+Σmax.
func AllocateToTotal(entries []AllocationEntry, target int, rng *RNG) map[string]int {
	out := make(map[string]int, len(entries))

	sum := 0
	largest := -1 // index of the largest ranged allocation so far
	for i, e := range entries {
		var v int
		switch e.Kind {
		case EntryRange:
			v = rng.IntBetween(e.Min, e.Max)
			if largest < 0 || v > out[entries[largest].Label] {
				largest = i
			}
		default:
			v = e.Value
		}
		out[e.Label] = v
		sum += v
	}

	if drift := target - sum; drift != 0 && largest >= 0 {
		out[entries[largest].Label] += drift
	}
	return out
}

// scaleToTotal rescales values proportionally so they sum to exactly total,
// rounding each share and folding the rounding drift into the single largest
// entry (ties broken by input order). A nil or all-zero input is returned
// unchanged since there is no mass to redistribute.
//
// This is the shared total-preserving correction used by the difficulty,
// vintage, and songs-and-types merges.
func scaleToTotal(values []int, total int) []int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	if sum == 0 || sum == total {
		return values
	}

	out := make([]int, len(values))
	factor := float64(total) / float64(sum)
	scaled, largest := 0, 0
	for i, v := range values {
		out[i] = int(float64(v)*factor + 0.5)
		scaled += out[i]
		if out[i] > out[largest] {
			largest = i
		}
	}
	if drift := total - scaled; drift != 0 {
		out[largest] += drift
	}
	return out
}

// percentToCount converts a percentage share into an absolute song count
// against the inherited total, rounding half up.
func percentToCount(pct float64, total int) int {
	return int(pct/100*float64(total) + 0.5)
}

// clampPercent clamps a percentage-like value into [0, 100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
