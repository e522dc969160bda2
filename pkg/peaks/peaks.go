// Package peaks finds periodic maxima in a conditioned voltage series and
// derives an events-per-minute rate from them.
package peaks

import "sort"

// candidate is a local maximum before thresholding.
type candidate struct {
	idx        int
	value      float64
	prominence float64
}

// Detect returns the indices of local maxima whose prominence is at least
// minProminence, thinned so no two returned peaks are closer than
// minDistance samples. When two qualifying peaks conflict on distance, the
// more prominent one is kept. Indices are strictly increasing. Detect never
// fails; a series with no qualifying peak yields an empty set.
func Detect(x []float64, minDistance int, minProminence float64) []int {
	cands := localMaxima(x)
	for i := range cands {
		cands[i].prominence = prominence(x, cands[i].idx)
	}

	kept := cands[:0]
	for _, c := range cands {
		if c.prominence >= minProminence {
			kept = append(kept, c)
		}
	}

	if minDistance > 1 {
		kept = thinByDistance(kept, minDistance)
	}

	out := make([]int, len(kept))
	for i, c := range kept {
		out[i] = c.idx
	}
	sort.Ints(out)
	return out
}

// localMaxima finds strict local maxima. A flat-topped peak reports the
// middle of its plateau.
func localMaxima(x []float64) []candidate {
	var cands []candidate
	i := 1
	for i < len(x)-1 {
		if x[i] <= x[i-1] {
			i++
			continue
		}
		// Rising into x[i]; extend over a possible plateau.
		j := i
		for j < len(x)-1 && x[j+1] == x[i] {
			j++
		}
		if j < len(x)-1 && x[j+1] < x[i] {
			mid := (i + j) / 2
			cands = append(cands, candidate{idx: mid, value: x[mid]})
		}
		i = j + 1
	}
	return cands
}

// prominence measures how far the peak rises above the higher of the two
// valley floors that separate it from higher terrain (or from the series
// boundary).
func prominence(x []float64, peak int) float64 {
	v := x[peak]

	leftMin := v
	for i := peak - 1; i >= 0 && x[i] <= v; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}

	rightMin := v
	for i := peak + 1; i < len(x) && x[i] <= v; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return v - base
}

// thinByDistance keeps peaks in order of decreasing prominence, discarding
// any peak within minDistance of one already kept.
func thinByDistance(cands []candidate, minDistance int) []candidate {
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cands[order[a]].prominence > cands[order[b]].prominence
	})

	suppressed := make([]bool, len(cands))
	var kept []candidate
	for _, oi := range order {
		if suppressed[oi] {
			continue
		}
		kept = append(kept, cands[oi])
		for j := range cands {
			if j == oi || suppressed[j] {
				continue
			}
			d := cands[j].idx - cands[oi].idx
			if d < 0 {
				d = -d
			}
			if d < minDistance {
				suppressed[j] = true
			}
		}
	}
	return kept
}

// MeanValueAt returns the mean of x at the given indices, or 0 for an
// empty index set.
func MeanValueAt(x []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += x[i]
	}
	return sum / float64(len(idx))
}
