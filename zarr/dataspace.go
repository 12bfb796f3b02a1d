package zarr

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qri-io/hyperslab"
)

// ErrInvalidSelection is returned when a raw selection does not fit a
// dataspace's extents
var ErrInvalidSelection = errors.New("invalid selection")

// Dataspace is an in-memory region handle: a set of extents plus the raw
// selection currently applied to them. A fresh dataspace selects everything.
type Dataspace struct {
	extents hyperslab.Extents
	sel     hyperslab.RawSelection
	// hyperslabs OR-ed together once the selection becomes complex
	union []hyperslab.RawHyperslab
}

var _ hyperslab.Space = (*Dataspace)(nil)

func NewDataspace(extents hyperslab.Extents) *Dataspace {
	ds := &Dataspace{extents: extents, sel: hyperslab.RawAllSelection()}
	if extents.IsNull() {
		ds.sel = hyperslab.RawNoneSelection()
	}
	return ds
}

func (ds *Dataspace) Extents() (hyperslab.Extents, error) { return ds.extents, nil }

// Select replaces the current selection. Points must match the rank and lie
// within the current dims; a regular hyperslab must validate against them.
// A null dataspace only accepts None.
func (ds *Dataspace) Select(sel hyperslab.RawSelection) error {
	if err := ds.check(sel); err != nil {
		return err
	}
	ds.sel = sel
	ds.union = nil
	return nil
}

func (ds *Dataspace) check(sel hyperslab.RawSelection) error {
	dims := ds.extents.Dims()
	if ds.extents.IsNull() && sel.Kind() != hyperslab.RawNone {
		return fmt.Errorf("%w: null dataspace only accepts an empty selection, got %s", ErrInvalidSelection, sel.Kind())
	}

	switch sel.Kind() {
	case hyperslab.RawPoints:
		p, _ := sel.Points()
		if p.Len() == 0 {
			return fmt.Errorf("%w: point selection without points", ErrInvalidSelection)
		}
		if p.NDim() != len(dims) {
			return fmt.Errorf("%w: points ndim (%d) != dataspace ndim (%d)", ErrInvalidSelection, p.NDim(), len(dims))
		}
		for i := 0; i < p.Len(); i++ {
			for j, d := range dims {
				if v := p.At(i, j); v < 0 || v >= d {
					return fmt.Errorf("%w: point %d coordinate %d out of bounds for axis %d with size %d", ErrInvalidSelection, i, v, j, d)
				}
			}
		}
	case hyperslab.RawRegularHyperslab:
		h, _ := sel.Hyperslab()
		if err := h.Validate(dims); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
		}
	case hyperslab.RawComplexHyperslab:
		return &hyperslab.UnsupportedSelectionError{Op: "Dataspace.Select", Reason: "complex hyperslabs can only be built with SelectOr"}
	}
	return nil
}

// SelectOr unions a regular hyperslab into the current selection. Combining
// two different hyperslabs leaves the dataspace with a complex selection.
func (ds *Dataspace) SelectOr(h hyperslab.RawHyperslab) error {
	if ds.extents.IsNull() {
		return fmt.Errorf("%w: cannot select in a null dataspace", ErrInvalidSelection)
	}
	if err := h.Validate(ds.extents.Dims()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	if h.IsUnlimited() {
		return fmt.Errorf("%w: cannot union an unlimited hyperslab", ErrInvalidSelection)
	}

	switch ds.sel.Kind() {
	case hyperslab.RawAll:
		return nil
	case hyperslab.RawNone:
		ds.sel = hyperslab.RawRegularSelection(h)
		return nil
	case hyperslab.RawRegularHyperslab:
		cur, _ := ds.sel.Hyperslab()
		if cur.Equal(h) {
			return nil
		}
		ds.union = []hyperslab.RawHyperslab{cur, h}
		ds.sel = hyperslab.RawComplexSelection()
		return nil
	case hyperslab.RawComplexHyperslab:
		for _, u := range ds.union {
			if u.Equal(h) {
				return nil
			}
		}
		ds.union = append(ds.union, h)
		return nil
	default:
		return fmt.Errorf("%w: cannot union a hyperslab with a %s selection", ErrInvalidSelection, ds.sel.Kind())
	}
}

func (ds *Dataspace) Selection() (hyperslab.RawSelection, error) { return ds.sel, nil }

// SelectionSize is the number of selected elements. Complex selections are
// counted by inclusion-exclusion over the OR-ed hyperslabs.
func (ds *Dataspace) SelectionSize() (int, error) {
	if ds.sel.Kind() != hyperslab.RawComplexHyperslab {
		return ds.sel.Size(ds.extents.Dims())
	}
	return unionSize(ds.union), nil
}

// Copy returns an independent dataspace with the same extents and selection
func (ds *Dataspace) Copy() *Dataspace {
	return &Dataspace{
		extents: ds.extents,
		sel:     ds.sel,
		union:   append([]hyperslab.RawHyperslab(nil), ds.union...),
	}
}

type dataspaceDoc struct {
	Kind    string                   `json:"kind"`
	Dims    []int                    `json:"dims,omitempty"`
	MaxDims []int                    `json:"maxdims,omitempty"`
	Sel     string                   `json:"selection"`
	Points  [][]int                  `json:"points,omitempty"`
	Slices  hyperslab.RawHyperslab   `json:"slices,omitempty"`
	Union   []hyperslab.RawHyperslab `json:"union,omitempty"`
}

// Encode serializes the dataspace as a JSON document compressed with codec
func (ds *Dataspace) Encode(codec Codec) ([]byte, error) {
	doc := dataspaceDoc{
		Kind: ds.extents.Kind().String(),
		Sel:  ds.sel.Kind().String(),
	}
	if ds.extents.IsSimple() {
		doc.Dims = ds.extents.Dims()
		doc.MaxDims = ds.extents.MaxDims()
	}
	switch ds.sel.Kind() {
	case hyperslab.RawPoints:
		p, _ := ds.sel.Points()
		doc.Points = p.Rows()
	case hyperslab.RawRegularHyperslab:
		doc.Slices, _ = ds.sel.Hyperslab()
	case hyperslab.RawComplexHyperslab:
		doc.Union = ds.union
	}

	d, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return codec.Encode(d)
}

// DecodeDataspace reads a dataspace written by Encode with the same codec
func DecodeDataspace(codec Codec, data []byte) (*Dataspace, error) {
	d, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	doc := dataspaceDoc{}
	if err := json.Unmarshal(d, &doc); err != nil {
		return nil, fmt.Errorf("decoding dataspace: %w", err)
	}

	var ext hyperslab.Extents
	switch doc.Kind {
	case hyperslab.ExtentsNull.String():
		ext = hyperslab.Null()
	case hyperslab.ExtentsScalar.String():
		ext = hyperslab.Scalar()
	case hyperslab.ExtentsSimple.String():
		if len(doc.MaxDims) != len(doc.Dims) {
			return nil, fmt.Errorf("decoding dataspace: maxdims rank (%d) != dims rank (%d)", len(doc.MaxDims), len(doc.Dims))
		}
		exts := make([]hyperslab.Extent, len(doc.Dims))
		for i, dim := range doc.Dims {
			exts[i] = hyperslab.NewExtent(dim, doc.MaxDims[i])
		}
		ext = hyperslab.Simple(exts...)
	default:
		return nil, fmt.Errorf("decoding dataspace: unknown extents kind %q", doc.Kind)
	}
	if !ext.IsValid() {
		return nil, fmt.Errorf("decoding dataspace: invalid extents %s", ext)
	}

	ds := NewDataspace(ext)
	switch doc.Sel {
	case hyperslab.RawAll.String():
		err = ds.Select(hyperslab.RawAllSelection())
	case hyperslab.RawNone.String():
		err = ds.Select(hyperslab.RawNoneSelection())
	case hyperslab.RawPoints.String():
		var p hyperslab.Points
		if p, err = hyperslab.NewPoints(doc.Points...); err == nil {
			err = ds.Select(hyperslab.RawPointsSelection(p))
		}
	case hyperslab.RawRegularHyperslab.String():
		err = ds.Select(hyperslab.RawRegularSelection(doc.Slices))
	case hyperslab.RawComplexHyperslab.String():
		if len(doc.Union) < 2 {
			return nil, fmt.Errorf("decoding dataspace: complex selection needs at least 2 hyperslabs")
		}
		if err = ds.Select(hyperslab.RawNoneSelection()); err != nil {
			break
		}
		for _, h := range doc.Union {
			if err = ds.SelectOr(h); err != nil {
				break
			}
		}
	default:
		return nil, fmt.Errorf("decoding dataspace: unknown selection kind %q", doc.Sel)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding dataspace: %w", err)
	}
	return ds, nil
}
