package hyperslab

import (
	"fmt"
	"math"
	"strings"
)

// UnlimitedCount marks a RawSlice whose block count is left unbounded
const UnlimitedCount = -1

// RawSlice is the storage engine's per-axis hyperslab parameters. Blocks of
// Block elements start at Start, Start+Step, ... and there are Count of them,
// or as many as the axis holds when Count is UnlimitedCount.
type RawSlice struct {
	Start int `json:"start"`
	Step  int `json:"step"`
	Count int `json:"count"`
	Block int `json:"block"`
}

func NewRawSlice(start, step, count, block int) RawSlice {
	return RawSlice{Start: start, Step: step, Count: count, Block: block}
}

// UnlimitedRawSlice creates a raw slice without a block count
func UnlimitedRawSlice(start, step, block int) RawSlice {
	return RawSlice{Start: start, Step: step, Count: UnlimitedCount, Block: block}
}

// BlockCount returns the number of blocks, and false if the slice is
// unlimited
func (r RawSlice) BlockCount() (int, bool) {
	if r.Count < 0 {
		return 0, false
	}
	return r.Count, true
}

func (r RawSlice) IsUnlimited() bool { return r.Count < 0 }

// Len is the number of elements the slice selects along its axis
func (r RawSlice) Len() (int, bool) {
	n, ok := r.BlockCount()
	return n * r.Block, ok
}

// end is the exclusive upper bound of the last block
func (r RawSlice) end() int {
	return blockEnd(r.Start, r.Step, r.Count, r.Block)
}

// blockEnd is start + step*(count-1) + block for non-negative start and
// positive step and block. Results past math.MaxInt saturate to it.
func blockEnd(start, step, count, block int) int {
	if count <= 0 {
		return start
	}
	if n := count - 1; n > 0 {
		if step > (math.MaxInt-start)/n {
			return math.MaxInt
		}
		start += step * n
	}
	if block > math.MaxInt-start {
		return math.MaxInt
	}
	return start + block
}

func (r RawSlice) contains(i int) bool {
	if i < r.Start || r.Count == 0 || r.Step < 1 {
		return false
	}
	off := i - r.Start
	n := off / r.Step
	if r.Count > 0 && n >= r.Count {
		return false
	}
	return off%r.Step < r.Block
}

func (r RawSlice) String() string {
	count := "∞"
	if n, ok := r.BlockCount(); ok {
		count = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("{start: %d, step: %d, count: %s, block: %d}", r.Start, r.Step, count, r.Block)
}

// RawHyperslab is an ordered list of raw slices, one per axis
type RawHyperslab []RawSlice

// IsNone reports whether any axis selects zero blocks
func (h RawHyperslab) IsNone() bool {
	for _, s := range h {
		if s.Count == 0 {
			return true
		}
	}
	return false
}

// IsUnlimited reports whether any axis has an unbounded block count
func (h RawHyperslab) IsUnlimited() bool {
	for _, s := range h {
		if s.IsUnlimited() {
			return true
		}
	}
	return false
}

// IsAll reports whether the hyperslab covers every element of shape in
// contiguous back-to-back blocks
func (h RawHyperslab) IsAll(shape []int) bool {
	if len(h) == 0 {
		return true
	}
	if len(h) != len(shape) {
		return false
	}
	for i, s := range h {
		n, ok := s.BlockCount()
		if !ok {
			return false
		}
		if s.Start != 0 || s.Step != s.Block || n*s.Block != shape[i] {
			return false
		}
	}
	return true
}

// Shape is the per-axis extent of the selected region, count*block. Every
// axis must be bounded.
func (h RawHyperslab) Shape() ([]int, error) {
	shape := make([]int, len(h))
	for i, s := range h {
		n, ok := s.Len()
		if !ok {
			return nil, invalidAxis("RawHyperslab.Shape", "unlimited", i, 0, 0,
				"unable to get the shape for unlimited hyperslab (axis %d)", i)
		}
		shape[i] = n
	}
	return shape, nil
}

// Size is the number of selected elements
func (h RawHyperslab) Size() (int, error) {
	shape, err := h.Shape()
	if err != nil {
		return 0, err
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n, nil
}

// Contains reports whether coord lies inside one of the hyperslab's blocks
func (h RawHyperslab) Contains(coord []int) bool {
	if len(coord) != len(h) {
		return false
	}
	for i, s := range h {
		if !s.contains(coord[i]) {
			return false
		}
	}
	return true
}

// Validate checks the hyperslab is well formed for an array of the given
// shape: positive step and block, non-overlapping blocks, at most one
// unlimited axis, and every bounded axis inside its dimension.
func (h RawHyperslab) Validate(shape []int) error {
	const op = "RawHyperslab.Validate"
	if len(h) != len(shape) {
		return ndimMismatch(op, len(h), len(shape))
	}
	unlimited := 0
	for i, s := range h {
		switch {
		case s.Step < 1:
			return invalidAxis(op, "step", i, s.Step, 1, "slice step %d < 1 for axis %d", s.Step, i)
		case s.Block < 1:
			return invalidAxis(op, "block", i, s.Block, 1, "slice block %d < 1 for axis %d", s.Block, i)
		case s.Start < 0:
			return outOfBounds(op, "start", i, s.Start, shape[i])
		case s.Step < s.Block && s.Count != 0 && s.Count != 1:
			return invalidAxis(op, "block", i, s.Block, s.Step,
				"blocks can not overlap: block %d > step %d for axis %d", s.Block, s.Step, i)
		}
		if s.IsUnlimited() {
			if unlimited++; unlimited > 1 {
				return invalidAxis(op, "unlimited", i, unlimited, 1,
					"expected at most 1 unlimited axis, got a second one at axis %d", i)
			}
			continue
		}
		if end := s.end(); end > shape[i] {
			return outOfBounds(op, "end", i, end, shape[i])
		}
	}
	return nil
}

func (h RawHyperslab) Equal(o RawHyperslab) bool {
	if len(h) != len(o) {
		return false
	}
	for i := range h {
		if h[i] != o[i] {
			return false
		}
	}
	return true
}

func (h RawHyperslab) String() string {
	strs := make([]string, len(h))
	for i, s := range h {
		strs[i] = s.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// RawSelectionKind enumerates the selection classes the storage engine
// understands
type RawSelectionKind uint8

const (
	// RawAll selects every element. It is the zero value.
	RawAll RawSelectionKind = iota
	// RawNone selects nothing
	RawNone
	// RawPoints selects an explicit list of coordinates
	RawPoints
	// RawRegularHyperslab is a single regular hyperslab
	RawRegularHyperslab
	// RawComplexHyperslab is an irregular combination of hyperslabs with no
	// cooked representation
	RawComplexHyperslab
)

func (k RawSelectionKind) String() string {
	switch k {
	case RawAll:
		return "all"
	case RawNone:
		return "none"
	case RawPoints:
		return "points"
	case RawRegularHyperslab:
		return "regular-hyperslab"
	case RawComplexHyperslab:
		return "complex-hyperslab"
	default:
		return "unknown"
	}
}

// RawSelection is the canonical, shape-resolved selection handed to the
// storage engine
type RawSelection struct {
	kind   RawSelectionKind
	points Points
	hyper  RawHyperslab
}

func RawNoneSelection() RawSelection { return RawSelection{kind: RawNone} }

func RawAllSelection() RawSelection { return RawSelection{kind: RawAll} }

func RawPointsSelection(p Points) RawSelection {
	return RawSelection{kind: RawPoints, points: p}
}

func RawRegularSelection(h RawHyperslab) RawSelection {
	return RawSelection{kind: RawRegularHyperslab, hyper: append(RawHyperslab(nil), h...)}
}

func RawComplexSelection() RawSelection { return RawSelection{kind: RawComplexHyperslab} }

func (s RawSelection) Kind() RawSelectionKind { return s.kind }

// Points returns the coordinate matrix of a RawPoints selection
func (s RawSelection) Points() (Points, bool) {
	return s.points, s.kind == RawPoints
}

// Hyperslab returns the slices of a RawRegularHyperslab selection
func (s RawSelection) Hyperslab() (RawHyperslab, bool) {
	if s.kind != RawRegularHyperslab {
		return nil, false
	}
	return append(RawHyperslab(nil), s.hyper...), true
}

// Size is the number of elements the selection covers within shape
func (s RawSelection) Size(shape []int) (int, error) {
	switch s.kind {
	case RawNone:
		return 0, nil
	case RawAll:
		n := 1
		for _, d := range shape {
			n *= d
		}
		return n, nil
	case RawPoints:
		return s.points.Len(), nil
	case RawRegularHyperslab:
		return s.hyper.Size()
	default:
		return 0, &UnsupportedSelectionError{Op: "RawSelection.Size", Reason: "complex hyperslabs are not supported"}
	}
}

func (s RawSelection) Equal(o RawSelection) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case RawPoints:
		return s.points.Equal(o.points)
	case RawRegularHyperslab:
		return s.hyper.Equal(o.hyper)
	default:
		return true
	}
}

func (s RawSelection) String() string {
	switch s.kind {
	case RawPoints:
		return fmt.Sprintf("points(%s)", s.points)
	case RawRegularHyperslab:
		return fmt.Sprintf("hyperslab%s", s.hyper)
	default:
		return s.kind.String()
	}
}
