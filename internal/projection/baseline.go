/**
 * @description
 * Base-line selector.
 * Given the multiset of line quotes for one player+stat pairing, picks the
 * single canonical "middle" line: the exact middle for odd counts, the lower
 * of the two central elements for even counts. Deterministic and stable,
 * duplicates allowed.
 */

package projection

import "sort"

// SelectBaseLine returns the canonical line for a group of quotes.
// Returns 0 for an empty slice. The input is not mutated.
func SelectBaseLine(lines []float64) float64 {
	if len(lines) == 0 {
		return 0
	}

	sorted := make([]float64, len(lines))
	copy(sorted, lines)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		// Even count: take the lower of the two middles, not their average.
		return sorted[middle-1]
	}
	return sorted[middle]
}
