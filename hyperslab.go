package hyperslab

import (
	"fmt"
	"strings"
)

// Hyperslab is a per-axis region descriptor, one SliceOrIndex per axis. It
// carries no shape: the number of axes fixes the rank it expects once
// resolved with IntoRaw.
type Hyperslab struct {
	axes []SliceOrIndex
}

// NewHyperslab creates a hyperslab from per-axis selectors
func NewHyperslab(axes ...SliceOrIndex) Hyperslab {
	return Hyperslab{axes: append([]SliceOrIndex(nil), axes...)}
}

// TryHyperslab creates a hyperslab from heterogeneous per-axis arguments:
// int (an index), SliceOrIndex, or Span. Negative indices and bounds fail.
func TryHyperslab(axes ...interface{}) (Hyperslab, error) {
	h := Hyperslab{axes: make([]SliceOrIndex, len(axes))}
	for i, v := range axes {
		s, err := toSliceOrIndex(i, v)
		if err != nil {
			return Hyperslab{}, err
		}
		h.axes[i] = s
	}
	return h, nil
}

// Len is the number of axes
func (h Hyperslab) Len() int { return len(h.axes) }

// At returns the selector for axis i
func (h Hyperslab) At(i int) SliceOrIndex { return h.axes[i] }

// Axes returns a copy of the per-axis selectors
func (h Hyperslab) Axes() []SliceOrIndex {
	return append([]SliceOrIndex(nil), h.axes...)
}

func (h Hyperslab) IsUnlimited() bool {
	_, ok := h.UnlimitedAxis()
	return ok
}

// UnlimitedAxis returns the position of the first unlimited axis
func (h Hyperslab) UnlimitedAxis() (int, bool) {
	for i, s := range h.axes {
		if s.IsUnlimited() {
			return i, true
		}
	}
	return -1, false
}

// SetUnlimited returns a copy with axis made unlimited
func (h Hyperslab) SetUnlimited(axis int) (Hyperslab, error) {
	if axis < 0 || axis >= len(h.axes) {
		return h, invalidAxis("Hyperslab.SetUnlimited", "ndim", axis, axis, len(h.axes),
			"invalid axis for making hyperslab unlimited: %d", axis)
	}
	s, err := h.axes[axis].ToUnlimited()
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Axis = axis
		}
		return h, err
	}
	return h.with(axis, s), nil
}

// SetBlock returns a copy with the block size of axis changed
func (h Hyperslab) SetBlock(axis, blocksize int) (Hyperslab, error) {
	if axis < 0 || axis >= len(h.axes) {
		return h, invalidAxis("Hyperslab.SetBlock", "ndim", axis, axis, len(h.axes),
			"invalid axis for changing the slice to block-like: %d", axis)
	}
	s, err := h.axes[axis].SetBlocksize(blocksize)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Axis = axis
		}
		return h, err
	}
	return h.with(axis, s), nil
}

func (h Hyperslab) with(axis int, s SliceOrIndex) Hyperslab {
	cp := h.Axes()
	cp[axis] = s
	return Hyperslab{axes: cp}
}

// IntoRaw resolves every axis against the matching dimension of shape.
// Unlimited axes are bound by the current dimension size; at most one of them
// may select any elements.
func (h Hyperslab) IntoRaw(shape []int) (RawHyperslab, error) {
	const op = "Hyperslab.IntoRaw"
	if len(h.axes) != len(shape) {
		return nil, ndimMismatch(op, len(h.axes), len(shape))
	}

	raw := make(RawHyperslab, len(h.axes))
	unbounded := 0
	for i, s := range h.axes {
		r, err := s.toRaw(op, i, shape[i])
		if err != nil {
			return nil, err
		}
		if s.IsUnlimited() && r.Count > 0 {
			if unbounded++; unbounded > 1 {
				return nil, invalidAxis(op, "unlimited", i, unbounded, 1,
					"expected at most 1 unlimited axis, got a second one at axis %d", i)
			}
		}
		raw[i] = r
	}
	return raw, nil
}

// IntoRawPartial resolves every bounded axis against shape but leaves an
// unlimited axis unbounded in the raw form. At most one axis may be unlimited.
func (h Hyperslab) IntoRawPartial(shape []int) (RawHyperslab, error) {
	const op = "Hyperslab.IntoRawPartial"
	if len(h.axes) != len(shape) {
		return nil, ndimMismatch(op, len(h.axes), len(shape))
	}

	raw := make(RawHyperslab, len(h.axes))
	unlimited := 0
	for i, s := range h.axes {
		if !s.IsUnlimited() {
			r, err := s.toRaw(op, i, shape[i])
			if err != nil {
				return nil, err
			}
			raw[i] = r
			continue
		}

		if unlimited++; unlimited > 1 {
			return nil, invalidAxis(op, "unlimited", i, unlimited, 1,
				"expected at most 1 unlimited axis, got a second one at axis %d", i)
		}
		switch {
		case s.step < 1:
			return nil, invalidAxis(op, "step", i, s.step, 1, "slice step %d < 1 for axis %d", s.step, i)
		case s.block < 1:
			return nil, invalidAxis(op, "block", i, s.block, 1, "slice block %d < 1 for axis %d", s.block, i)
		case s.step < s.block:
			return nil, invalidAxis(op, "block", i, s.block, s.step,
				"blocks can not overlap: block %d > step %d for axis %d", s.block, s.step, i)
		case s.start < 0 || s.start > shape[i]:
			return nil, outOfBounds(op, "start", i, s.start, shape[i])
		}
		raw[i] = UnlimitedRawSlice(s.start, s.step, s.block)
	}
	return raw, nil
}

// HyperslabFromRaw converts a raw hyperslab back into cooked form. Bounded axes
// become SliceCount, unbounded ones Unlimited. Overlapping blocks have no
// cooked representation.
func HyperslabFromRaw(raw RawHyperslab) (Hyperslab, error) {
	h := Hyperslab{axes: make([]SliceOrIndex, len(raw))}
	for i, s := range raw {
		if s.Step < s.Block {
			return Hyperslab{}, invalidAxis("HyperslabFromRaw", "block", i, s.Block, s.Step,
				"blocks can not overlap (axis: %d)", i)
		}
		if n, ok := s.BlockCount(); ok {
			h.axes[i] = SliceCount(s.Start, s.Step, n, s.Block)
		} else {
			h.axes[i] = Unlimited(s.Start, s.Step, s.Block)
		}
	}
	return h, nil
}

func (h Hyperslab) Equal(o Hyperslab) bool {
	if len(h.axes) != len(o.axes) {
		return false
	}
	for i := range h.axes {
		if !h.axes[i].Equal(o.axes[i]) {
			return false
		}
	}
	return true
}

func (h Hyperslab) String() string {
	strs := make([]string, len(h.axes))
	for i, s := range h.axes {
		strs[i] = s.String()
	}
	if len(strs) == 1 {
		return fmt.Sprintf("(%s,)", strs[0])
	}
	return "(" + strings.Join(strs, ", ") + ")"
}
