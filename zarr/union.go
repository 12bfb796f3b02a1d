package zarr

import "github.com/qri-io/hyperslab"

// interval is the half-open range [lo, hi) along one axis
type interval struct{ lo, hi int }

// axisIntervals lists the blocks of a bounded raw slice in ascending order
func axisIntervals(s hyperslab.RawSlice) []interval {
	ivs := make([]interval, 0, s.Count)
	for b := 0; b < s.Count; b++ {
		lo := s.Start + b*s.Step
		ivs = append(ivs, interval{lo, lo + s.Block})
	}
	return ivs
}

// intersect merges two sorted, disjoint interval lists
func intersect(a, b []interval) []interval {
	var out []interval
	for i, j := 0, 0; i < len(a) && j < len(b); {
		lo, hi := max(a[i].lo, b[j].lo), min(a[i].hi, b[j].hi)
		if lo < hi {
			out = append(out, interval{lo, hi})
		}
		if a[i].hi < b[j].hi {
			i++
		} else {
			j++
		}
	}
	return out
}

func coverage(ivs []interval) int {
	n := 0
	for _, iv := range ivs {
		n += iv.hi - iv.lo
	}
	return n
}

// unionSize counts the elements covered by any of hs. Each hyperslab is a
// product of per-axis block lists, so the intersection of several of them is
// the product of the per-axis intersections. Subsets whose intersection is
// empty are pruned along with every superset. Every hyperslab must be
// bounded and share one rank.
func unionSize(hs []hyperslab.RawHyperslab) int {
	if len(hs) == 0 {
		return 0
	}
	blocks := make([][][]interval, len(hs))
	for i, h := range hs {
		blocks[i] = make([][]interval, len(h))
		for ax, s := range h {
			blocks[i][ax] = axisIntervals(s)
		}
	}

	total := 0
	var visit func(next int, cur [][]interval, sign int)
	visit = func(next int, cur [][]interval, sign int) {
		for i := next; i < len(hs); i++ {
			inter := make([][]interval, len(blocks[i]))
			n := 1
			for ax := range inter {
				if cur == nil {
					inter[ax] = blocks[i][ax]
				} else {
					inter[ax] = intersect(cur[ax], blocks[i][ax])
				}
				n *= coverage(inter[ax])
			}
			if n == 0 {
				continue
			}
			total += sign * n
			visit(i+1, inter, -sign)
		}
	}
	visit(0, nil, 1)
	return total
}
