package hyperslab

import (
	"fmt"
	"strings"
)

// SliceKind enumerates the per-axis selector variants
type SliceKind uint8

const (
	// KindIndex selects exactly one position and drops the axis from the
	// output shape
	KindIndex SliceKind = iota
	// KindSliceTo is a strided, blocked range bounded by an end position
	KindSliceTo
	// KindSliceCount is a strided, blocked range bounded by a block count
	KindSliceCount
	// KindUnlimited is an open-ended range bound by the current dimension
	// size when resolved
	KindUnlimited
)

func (k SliceKind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindSliceTo:
		return "slice-to"
	case KindSliceCount:
		return "slice-count"
	case KindUnlimited:
		return "unlimited"
	default:
		return "unknown"
	}
}

// SliceOrIndex selects positions along a single axis. Given an axis of 11
// elements, selected positions marked with s:
//
//	Index(4)                  _ _ _ _ s _ _ _ _ _ _
//	SliceTo(2, 3, 8, 1)       _ _ s _ _ s _ _ _ _ _
//	SliceCount(1, 3, 2, 1)    _ s _ _ s _ _ _ _ _ _
//	Unlimited(0, 3, 1)        s _ _ s _ _ s _ _ s _
//	Unlimited(0, 4, 2)        s s _ _ s s _ _ s s _
//
// Values are immutable; every mutator returns a copy.
type SliceOrIndex struct {
	kind  SliceKind
	start int
	step  int
	end   int
	count int
	block int
}

// Index selects the single position i
func Index(i int) SliceOrIndex {
	return SliceOrIndex{kind: KindIndex, start: i, step: 1, count: 1, block: 1}
}

// SliceTo selects blocks starting at start, step apart, with every block
// ending before end
func SliceTo(start, step, end, block int) SliceOrIndex {
	return SliceOrIndex{kind: KindSliceTo, start: start, step: step, end: end, block: block}
}

// SliceCount selects count blocks starting at start, step apart
func SliceCount(start, step, count, block int) SliceOrIndex {
	return SliceOrIndex{kind: KindSliceCount, start: start, step: step, count: count, block: block}
}

// Unlimited selects blocks starting at start, step apart, up to whatever the
// axis size is when the selection is resolved
func Unlimited(start, step, block int) SliceOrIndex {
	return SliceOrIndex{kind: KindUnlimited, start: start, step: step, block: block}
}

// Range selects start..end
func Range(start, end int) SliceOrIndex { return SliceTo(start, 1, end, 1) }

// RangeInclusive selects start..=end
func RangeInclusive(start, end int) SliceOrIndex { return SliceTo(start, 1, end+1, 1) }

// RangeTo selects ..end
func RangeTo(end int) SliceOrIndex { return SliceTo(0, 1, end, 1) }

// RangeToInclusive selects ..=end
func RangeToInclusive(end int) SliceOrIndex { return SliceTo(0, 1, end+1, 1) }

// RangeFrom selects start..
func RangeFrom(start int) SliceOrIndex { return Unlimited(start, 1, 1) }

// Full selects the whole axis
func Full() SliceOrIndex { return Unlimited(0, 1, 1) }

func (s SliceOrIndex) Kind() SliceKind { return s.kind }

// Start is the first selected position; for an Index it is the index itself
func (s SliceOrIndex) Start() int { return s.start }
func (s SliceOrIndex) Step() int  { return s.step }
func (s SliceOrIndex) Block() int { return s.block }

// End returns the exclusive end bound of a SliceTo
func (s SliceOrIndex) End() (int, bool) {
	return s.end, s.kind == KindSliceTo
}

func (s SliceOrIndex) IsIndex() bool { return s.kind == KindIndex }

func (s SliceOrIndex) IsSlice() bool { return s.kind != KindIndex }

func (s SliceOrIndex) IsUnlimited() bool { return s.kind == KindUnlimited }

// ToUnlimited drops the end bound of a slice. An index cannot become an open
// range.
func (s SliceOrIndex) ToUnlimited() (SliceOrIndex, error) {
	if s.kind == KindIndex {
		return s, &ValidationError{
			Op:     "SliceOrIndex.ToUnlimited",
			Axis:   -1,
			Field:  "index",
			Value:  s.start,
			Reason: "cannot make index selection unlimited",
		}
	}
	return Unlimited(s.start, s.step, s.block), nil
}

// SetBlocksize returns a copy of the slice with a new block size
func (s SliceOrIndex) SetBlocksize(block int) (SliceOrIndex, error) {
	if s.kind == KindIndex {
		return s, &ValidationError{
			Op:     "SliceOrIndex.SetBlocksize",
			Axis:   -1,
			Field:  "index",
			Value:  s.start,
			Reason: "cannot set blocksize for index selection",
		}
	}
	s.block = block
	return s, nil
}

// Count is the number of blocks selected along the axis. It reports false for
// Unlimited slices, whose count depends on the shape they resolve against.
func (s SliceOrIndex) Count() (int, bool) {
	switch s.kind {
	case KindIndex:
		return 1, true
	case KindSliceTo:
		return blockCount(s.start, s.step, s.end, s.block), true
	case KindSliceCount:
		return s.count, true
	default:
		return 0, false
	}
}

// blockCount counts positions p = start, start+step, ... with
// p + block <= end
func blockCount(start, step, end, block int) int {
	if step < 1 || start >= end {
		return 0
	}
	if block < 1 {
		block = 1
	}
	if block > end-start {
		return 0
	}
	return (end-start-block)/step + 1
}

// Equal compares two selectors by the positions they denote. A SliceTo and a
// SliceCount are equal when start, step and block agree and the SliceTo's
// resolved count matches.
func (s SliceOrIndex) Equal(o SliceOrIndex) bool {
	if s.kind != o.kind {
		var to, cnt SliceOrIndex
		switch {
		case s.kind == KindSliceTo && o.kind == KindSliceCount:
			to, cnt = s, o
		case s.kind == KindSliceCount && o.kind == KindSliceTo:
			to, cnt = o, s
		default:
			return false
		}
		if to.start != cnt.start || to.step != cnt.step || to.block != cnt.block {
			return false
		}
		n, _ := to.Count()
		return n == cnt.count
	}

	switch s.kind {
	case KindIndex:
		return s.start == o.start
	case KindSliceTo:
		return s.start == o.start && s.step == o.step && s.end == o.end && s.block == o.block
	case KindSliceCount:
		return s.start == o.start && s.step == o.step && s.count == o.count && s.block == o.block
	default:
		return s.start == o.start && s.step == o.step && s.block == o.block
	}
}

func (s SliceOrIndex) String() string {
	if s.kind == KindIndex {
		return fmt.Sprintf("%d", s.start)
	}

	b := &strings.Builder{}
	if s.start != 0 {
		fmt.Fprintf(b, "%d", s.start)
	}
	switch s.kind {
	case KindSliceTo:
		fmt.Fprintf(b, "..%d", s.end)
	case KindSliceCount:
		fmt.Fprintf(b, "+%d", s.count)
	case KindUnlimited:
		b.WriteString("..∞")
	}
	if s.step != 1 {
		fmt.Fprintf(b, ";%d", s.step)
	}
	if s.block != 1 {
		fmt.Fprintf(b, "(Bx%d)", s.block)
	}
	return b.String()
}

// Span is a signed, ndarray-style slice argument: Start..Stop by Step, or
// Start.. when Open is set. It exists to accept input from callers that work in
// signed indices; negative values are rejected on conversion.
type Span struct {
	Start int
	Stop  int
	Step  int
	Open  bool
}

// SliceOrIndex converts the span into a selector
func (sp Span) SliceOrIndex() (SliceOrIndex, error) {
	const op = "Span.SliceOrIndex"
	step := sp.Step
	if step == 0 {
		step = 1
	}
	switch {
	case sp.Start < 0:
		return SliceOrIndex{}, invalidAxis(op, "start", -1, sp.Start, 0, "start %d must be non-negative", sp.Start)
	case step < 0:
		return SliceOrIndex{}, invalidAxis(op, "step", -1, step, 1, "step %d must be positive", step)
	case !sp.Open && sp.Stop < 0:
		return SliceOrIndex{}, invalidAxis(op, "end", -1, sp.Stop, 0, "end %d must be non-negative", sp.Stop)
	}
	if sp.Open {
		return Unlimited(sp.Start, step, 1), nil
	}
	return SliceTo(sp.Start, step, sp.Stop, 1), nil
}

// toSliceOrIndex converts one heterogeneous per-axis argument
func toSliceOrIndex(axis int, v interface{}) (SliceOrIndex, error) {
	const op = "TryHyperslab"
	switch x := v.(type) {
	case SliceOrIndex:
		return x, nil
	case int:
		if x < 0 {
			return SliceOrIndex{}, invalidAxis(op, "index", axis, x, 0, "index %d must be non-negative (axis %d)", x, axis)
		}
		return Index(x), nil
	case Span:
		s, err := x.SliceOrIndex()
		if err != nil {
			if ve, ok := err.(*ValidationError); ok {
				ve.Op = op
				ve.Axis = axis
				ve.Reason = fmt.Sprintf("%s (axis %d)", ve.Reason, axis)
			}
			return SliceOrIndex{}, err
		}
		return s, nil
	default:
		return SliceOrIndex{}, &ValidationError{
			Op:     op,
			Axis:   axis,
			Reason: fmt.Sprintf("cannot convert %T to a selector (axis %d)", v, axis),
		}
	}
}

// toRaw resolves the selector against an axis of size dim
func (s SliceOrIndex) toRaw(op string, axis, dim int) (RawSlice, error) {
	switch s.kind {
	case KindIndex:
		if s.start < 0 || s.start >= dim {
			return RawSlice{}, outOfBounds(op, "index", axis, s.start, dim)
		}
		return NewRawSlice(s.start, 1, 1, 1), nil

	case KindUnlimited:
		return SliceTo(s.start, s.step, dim, s.block).toRaw(op, axis, dim)
	}

	if s.step < 1 {
		return RawSlice{}, invalidAxis(op, "step", axis, s.step, 1, "slice step %d < 1 for axis %d", s.step, axis)
	}
	if s.block < 1 {
		return RawSlice{}, invalidAxis(op, "block", axis, s.block, 1, "slice block %d < 1 for axis %d", s.block, axis)
	}
	if s.start < 0 || s.start > dim {
		return RawSlice{}, outOfBounds(op, "start", axis, s.start, dim)
	}

	var count int
	switch s.kind {
	case KindSliceTo:
		if s.end < 0 || s.end > dim {
			return RawSlice{}, outOfBounds(op, "end", axis, s.end, dim)
		}
		count, _ = s.Count()
	case KindSliceCount:
		if s.count < 0 {
			return RawSlice{}, invalidAxis(op, "count", axis, s.count, 0, "slice count %d < 0 for axis %d", s.count, axis)
		}
		count = s.count
		if end := blockEnd(s.start, s.step, count, s.block); end > dim {
			return RawSlice{}, outOfBounds(op, "end", axis, end, dim)
		}
	}

	return normalizeStep(op, axis, s.start, s.step, count, s.block)
}

// normalizeStep enforces step >= block. A single block never overlaps
// itself, so the step is widened rather than rejected.
func normalizeStep(op string, axis, start, step, count, block int) (RawSlice, error) {
	if step < block {
		if count > 1 {
			return RawSlice{}, invalidAxis(op, "block", axis, block, step,
				"blocks can not overlap: block %d > step %d for axis %d", block, step, axis)
		}
		step = block
	}
	return NewRawSlice(start, step, count, block), nil
}
