package zarr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/qri-io/hyperslab"
)

// ChunkGrid divides an array's shape into equally sized chunks
type ChunkGrid struct {
	shape  []int
	chunks []int
	sep    string
}

func NewChunkGrid(meta *ArrayMeta) *ChunkGrid {
	return &ChunkGrid{
		shape:  append([]int(nil), meta.Shape...),
		chunks: append([]int(nil), meta.Chunks...),
		sep:    meta.Separator(),
	}
}

// GridShape is the number of chunks along each axis
func (g *ChunkGrid) GridShape() []int {
	gs := make([]int, len(g.shape))
	for i, d := range g.shape {
		gs[i] = (d + g.chunks[i] - 1) / g.chunks[i]
	}
	return gs
}

// Key is the store key of the chunk at coords, relative to the array path.
// A zero-rank array keeps its single chunk under "0".
func (g *ChunkGrid) Key(coords []int) string {
	if len(coords) == 0 {
		return "0"
	}
	strs := make([]string, len(coords))
	for i, c := range coords {
		strs[i] = strconv.Itoa(c)
	}
	return strings.Join(strs, g.sep)
}

// ChunkProjection maps the part of a selection that falls into one chunk
type ChunkProjection struct {
	// Indices of chunk
	ChunkCoords []int `json:"chunk"`
	// Store key relative to the array
	Key string `json:"key"`
	// Number of selected elements inside the chunk
	Count int `json:"count"`
}

// Project lists the chunks a resolved selection touches, in row-major chunk
// order. Chunks holding no selected element are omitted.
func (g *ChunkGrid) Project(sel hyperslab.RawSelection) ([]ChunkProjection, error) {
	switch sel.Kind() {
	case hyperslab.RawNone:
		return []ChunkProjection{}, nil
	case hyperslab.RawAll:
		return g.projectHyperslab(g.allHyperslab())
	case hyperslab.RawRegularHyperslab:
		h, _ := sel.Hyperslab()
		if err := h.Validate(g.shape); err != nil {
			return nil, err
		}
		if h.IsUnlimited() {
			return nil, fmt.Errorf("cannot project unlimited hyperslab %s", h)
		}
		return g.projectHyperslab(h)
	case hyperslab.RawPoints:
		p, _ := sel.Points()
		return g.projectPoints(p)
	default:
		return nil, &hyperslab.UnsupportedSelectionError{Op: "ChunkGrid.Project", Reason: "complex hyperslabs are not supported"}
	}
}

func (g *ChunkGrid) allHyperslab() hyperslab.RawHyperslab {
	h := make(hyperslab.RawHyperslab, len(g.shape))
	for i, d := range g.shape {
		h[i] = hyperslab.NewRawSlice(0, 1, d, 1)
	}
	return h
}

// projectHyperslab counts selected elements per chunk one axis at a time.
// A hyperslab is a product of per-axis selections, so the count in a chunk
// is the product of the per-axis counts in that chunk's interval.
func (g *ChunkGrid) projectHyperslab(h hyperslab.RawHyperslab) ([]ChunkProjection, error) {
	perAxis := make([]map[int]int, len(h))
	for i, s := range h {
		perAxis[i] = map[int]int{}
		for b := 0; b < s.Count; b++ {
			lo := s.Start + b*s.Step
			for pos := lo; pos < lo+s.Block; pos++ {
				perAxis[i][pos/g.chunks[i]]++
			}
		}
		if len(perAxis[i]) == 0 {
			return []ChunkProjection{}, nil
		}
	}

	axes := make([][]int, len(perAxis))
	for i, m := range perAxis {
		for c := range m {
			axes[i] = append(axes[i], c)
		}
		sort.Ints(axes[i])
	}

	var projs []ChunkProjection
	coords := make([]int, len(axes))
	var walk func(axis, count int)
	walk = func(axis, count int) {
		if axis == len(axes) {
			cc := make([]int, len(coords))
			copy(cc, coords)
			projs = append(projs, ChunkProjection{ChunkCoords: cc, Key: g.Key(cc), Count: count})
			return
		}
		for _, c := range axes[axis] {
			coords[axis] = c
			walk(axis+1, count*perAxis[axis][c])
		}
	}
	walk(0, 1)
	return projs, nil
}

func (g *ChunkGrid) projectPoints(p hyperslab.Points) ([]ChunkProjection, error) {
	if p.NDim() != len(g.shape) {
		return nil, fmt.Errorf("points ndim (%d) != array ndim (%d)", p.NDim(), len(g.shape))
	}

	counts := map[string]*ChunkProjection{}
	var keys []string
	for i := 0; i < p.Len(); i++ {
		cc := make([]int, p.NDim())
		for j := range cc {
			v := p.At(i, j)
			if v < 0 || v >= g.shape[j] {
				return nil, fmt.Errorf("point %d coordinate %d out of bounds for axis %d with size %d", i, v, j, g.shape[j])
			}
			cc[j] = v / g.chunks[j]
		}
		key := g.Key(cc)
		if proj, ok := counts[key]; ok {
			proj.Count++
			continue
		}
		counts[key] = &ChunkProjection{ChunkCoords: cc, Key: key, Count: 1}
		keys = append(keys, key)
	}

	projs := make([]ChunkProjection, 0, len(keys))
	for _, k := range keys {
		projs = append(projs, *counts[k])
	}
	sort.Slice(projs, func(i, j int) bool {
		return lessCoords(projs[i].ChunkCoords, projs[j].ChunkCoords)
	})
	return projs, nil
}

func lessCoords(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
