package hyperslab

// SelectionKind enumerates the cooked selection classes
type SelectionKind uint8

const (
	// SelectAll selects every element. It is the zero value.
	SelectAll SelectionKind = iota
	// SelectPoints selects an explicit list of coordinates
	SelectPoints
	// SelectHyperslab selects a regular, per-axis region
	SelectHyperslab
)

func (k SelectionKind) String() string {
	switch k {
	case SelectAll:
		return "all"
	case SelectPoints:
		return "points"
	case SelectHyperslab:
		return "hyperslab"
	default:
		return "unknown"
	}
}

// Selection describes the region of an array a read or write applies to.
// The zero value selects everything.
type Selection struct {
	kind   SelectionKind
	points Points
	hyper  Hyperslab
}

func All() Selection { return Selection{kind: SelectAll} }

// NoSelection is the cooked "nothing selected" value: a 0x0 point list
func NoSelection() Selection { return Selection{kind: SelectPoints} }

func SelectPointsOf(p Points) Selection { return Selection{kind: SelectPoints, points: p} }

// SelectIndices selects positions of a one-dimensional array
func SelectIndices(indices ...int) Selection { return SelectPointsOf(PointList(indices...)) }

func SelectHyperslabOf(h Hyperslab) Selection { return Selection{kind: SelectHyperslab, hyper: h} }

// Select builds a hyperslab selection from per-axis selectors
func Select(axes ...SliceOrIndex) Selection { return SelectHyperslabOf(NewHyperslab(axes...)) }

// TrySelect builds a hyperslab selection from heterogeneous per-axis
// arguments, see TryHyperslab
func TrySelect(axes ...interface{}) (Selection, error) {
	h, err := TryHyperslab(axes...)
	if err != nil {
		return Selection{}, err
	}
	return SelectHyperslabOf(h), nil
}

func (s Selection) Kind() SelectionKind { return s.kind }

// Points returns the coordinate matrix of a point selection
func (s Selection) Points() (Points, bool) { return s.points, s.kind == SelectPoints }

// Hyperslab returns the descriptor of a hyperslab selection
func (s Selection) Hyperslab() (Hyperslab, bool) { return s.hyper, s.kind == SelectHyperslab }

func (s Selection) IsAll() bool { return s.kind == SelectAll }

// IsPoints reports whether s is an explicit point list other than the
// "nothing selected" sentinel
func (s Selection) IsPoints() bool { return s.kind == SelectPoints && !s.points.IsEmpty() }

// IsNone reports whether s is the "nothing selected" sentinel
func (s Selection) IsNone() bool { return s.kind == SelectPoints && s.points.IsEmpty() }

func (s Selection) IsHyperslab() bool { return s.kind == SelectHyperslab }

// IntoRaw resolves the selection against shape and normalizes the result:
// an empty point list or a hyperslab with an empty axis becomes RawNone, and
// a hyperslab covering every element becomes RawAll.
func (s Selection) IntoRaw(shape []int) (RawSelection, error) {
	switch s.kind {
	case SelectPoints:
		if err := s.points.check("Selection.IntoRaw", shape); err != nil {
			return RawSelection{}, err
		}
		if s.points.Len() == 0 {
			return RawNoneSelection(), nil
		}
		return RawPointsSelection(s.points), nil

	case SelectHyperslab:
		raw, err := s.hyper.IntoRaw(shape)
		if err != nil {
			return RawSelection{}, err
		}
		switch {
		case raw.IsNone():
			return RawNoneSelection(), nil
		case raw.IsAll(shape):
			return RawAllSelection(), nil
		default:
			return RawRegularSelection(raw), nil
		}
	}
	return RawAllSelection(), nil
}

// SelectionFromRaw converts a raw selection back into cooked form. RawNone
// becomes the 0x0 point list. Complex hyperslabs have no cooked equivalent.
func SelectionFromRaw(raw RawSelection) (Selection, error) {
	switch raw.kind {
	case RawNone:
		return NoSelection(), nil
	case RawAll:
		return All(), nil
	case RawPoints:
		return SelectPointsOf(raw.points), nil
	case RawRegularHyperslab:
		h, err := HyperslabFromRaw(raw.hyper)
		if err != nil {
			return Selection{}, err
		}
		return SelectHyperslabOf(h), nil
	default:
		return Selection{}, &UnsupportedSelectionError{
			Op:     "SelectionFromRaw",
			Reason: "cannot convert complex hyperslabs",
		}
	}
}

// InNDim is the rank the selection must be applied against, and false when
// the selection fits any rank
func (s Selection) InNDim() (int, bool) {
	switch s.kind {
	case SelectPoints:
		if s.points.IsEmpty() {
			return 0, false
		}
		return s.points.NDim(), true
	case SelectHyperslab:
		return s.hyper.Len(), true
	default:
		return 0, false
	}
}

// OutNDim is the rank of the selected data once index axes are dropped, and
// false when the output keeps the rank of the array
func (s Selection) OutNDim() (int, bool) {
	switch s.kind {
	case SelectPoints:
		if s.points.IsEmpty() {
			return 0, true
		}
		return 1, true
	case SelectHyperslab:
		n := 0
		for _, ax := range s.hyper.axes {
			if ax.IsSlice() {
				n++
			}
		}
		return n, true
	default:
		return 0, false
	}
}

// OutShape is the shape of the data the selection yields from an array of
// shape inShape. Index axes are dropped; every other axis contributes
// count*block.
func (s Selection) OutShape(inShape []int) ([]int, error) {
	switch s.kind {
	case SelectPoints:
		if err := s.points.check("Selection.OutShape", inShape); err != nil {
			return nil, err
		}
		if s.points.IsEmpty() {
			return []int{}, nil
		}
		return []int{s.points.Len()}, nil

	case SelectHyperslab:
		raw, err := s.hyper.IntoRaw(inShape)
		if err != nil {
			return nil, err
		}
		out := make([]int, 0, len(raw))
		for i, r := range raw {
			n, ok := r.Len()
			if !ok {
				return nil, invalidAxis("Selection.OutShape", "unlimited", i, 0, 0,
					"unable to get the shape for unlimited hyperslab (axis %d)", i)
			}
			if s.hyper.axes[i].IsIndex() {
				continue
			}
			out = append(out, n)
		}
		return out, nil
	}
	return append([]int{}, inShape...), nil
}

func (s Selection) Equal(o Selection) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case SelectPoints:
		return s.points.Equal(o.points)
	case SelectHyperslab:
		return s.hyper.Equal(o.hyper)
	default:
		return true
	}
}

func (s Selection) String() string {
	switch s.kind {
	case SelectPoints:
		return s.points.String()
	case SelectHyperslab:
		return s.hyper.String()
	default:
		return ".."
	}
}
