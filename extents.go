package hyperslab

import (
	"fmt"
	"strings"
)

const (
	// UnlimitedMax marks an Extent without an upper bound
	UnlimitedMax = -1
	// MaxRank is the largest number of axes a simple extent may have
	MaxRank = 32
)

// Extent is the current and maximum size of one axis. A negative Max means the
// axis is unlimited.
type Extent struct {
	Dim int `json:"dim"`
	Max int `json:"max"`
}

// NewExtent creates an extent with an explicit maximum. Pass UnlimitedMax for
// an axis without an upper bound.
func NewExtent(dim, max int) Extent {
	if max < 0 {
		max = UnlimitedMax
	}
	return Extent{Dim: dim, Max: max}
}

// FixedExtent creates an extent whose maximum equals its current size
func FixedExtent(dim int) Extent {
	return Extent{Dim: dim, Max: dim}
}

// ResizableExtent creates an extent with an unlimited maximum
func ResizableExtent(dim int) Extent {
	return Extent{Dim: dim, Max: UnlimitedMax}
}

// MaxDim returns the upper bound, and false if the axis is unlimited
func (e Extent) MaxDim() (int, bool) {
	if e.Max < 0 {
		return 0, false
	}
	return e.Max, true
}

func (e Extent) IsFixed() bool {
	max, ok := e.MaxDim()
	return ok && e.Dim >= max
}

func (e Extent) IsResizable() bool { return e.Max < 0 }

func (e Extent) IsUnlimited() bool { return e.IsResizable() }

// IsValid reports whether the current size is non-negative and fits under
// the maximum
func (e Extent) IsValid() bool {
	if e.Dim < 0 {
		return false
	}
	max, ok := e.MaxDim()
	return !ok || max >= e.Dim
}

func (e Extent) String() string {
	max, ok := e.MaxDim()
	switch {
	case !ok:
		return fmt.Sprintf("%d..", e.Dim)
	case max != e.Dim:
		return fmt.Sprintf("%d..=%d", e.Dim, max)
	default:
		return fmt.Sprintf("%d", e.Dim)
	}
}

// ExtentsKind enumerates the dataspace classes
type ExtentsKind uint8

const (
	// ExtentsNull contains no elements and has no axes
	ExtentsNull ExtentsKind = iota
	// ExtentsScalar is exactly one element of rank 0
	ExtentsScalar
	// ExtentsSimple is an N-dimensional array of elements
	ExtentsSimple
)

func (k ExtentsKind) String() string {
	switch k {
	case ExtentsNull:
		return "null"
	case ExtentsScalar:
		return "scalar"
	case ExtentsSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// Extents describes the shape of a storage object. The zero value is a null
// dataspace.
type Extents struct {
	kind    ExtentsKind
	extents []Extent
}

// Null creates extents for a dataspace that holds no data
func Null() Extents { return Extents{kind: ExtentsNull} }

// Scalar creates extents for a single, dimensionless element
func Scalar() Extents { return Extents{kind: ExtentsScalar} }

// Simple creates extents for an N-dimensional array. Passing no extents
// yields Scalar.
func Simple(extents ...Extent) Extents {
	if len(extents) == 0 {
		return Scalar()
	}
	return Extents{kind: ExtentsSimple, extents: append([]Extent(nil), extents...)}
}

// Fixed creates simple extents whose maxima equal dims
func Fixed(dims ...int) Extents {
	exts := make([]Extent, len(dims))
	for i, d := range dims {
		exts[i] = FixedExtent(d)
	}
	return Simple(exts...)
}

// ResizableDims creates simple extents with every axis unlimited
func ResizableDims(dims ...int) Extents {
	exts := make([]Extent, len(dims))
	for i, d := range dims {
		exts[i] = ResizableExtent(d)
	}
	return Simple(exts...)
}

func (e Extents) Kind() ExtentsKind { return e.kind }
func (e Extents) IsNull() bool      { return e.kind == ExtentsNull }
func (e Extents) IsScalar() bool    { return e.kind == ExtentsScalar }
func (e Extents) IsSimple() bool    { return e.kind == ExtentsSimple }

// NDim is the rank, zero for null and scalar extents
func (e Extents) NDim() int { return len(e.extents) }

// Extents returns a copy of the per-axis extents
func (e Extents) Extents() []Extent {
	return append([]Extent(nil), e.extents...)
}

// Dims returns the current size of every axis
func (e Extents) Dims() []int {
	dims := make([]int, len(e.extents))
	for i, ext := range e.extents {
		dims[i] = ext.Dim
	}
	return dims
}

// MaxDims returns the maximum size of every axis, UnlimitedMax for
// unlimited axes
func (e Extents) MaxDims() []int {
	dims := make([]int, len(e.extents))
	for i, ext := range e.extents {
		dims[i] = ext.Max
	}
	return dims
}

// Size is the total number of elements
func (e Extents) Size() int {
	switch e.kind {
	case ExtentsScalar:
		return 1
	case ExtentsSimple:
		n := 1
		for _, ext := range e.extents {
			n *= ext.Dim
		}
		return n
	default:
		return 0
	}
}

func (e Extents) IsValid() bool {
	if !e.IsSimple() {
		return true
	}
	if len(e.extents) > MaxRank {
		return false
	}
	for _, ext := range e.extents {
		if !ext.IsValid() {
			return false
		}
	}
	return true
}

// IsUnlimited reports whether any axis is unlimited. Null and scalar extents
// report true, matching the storage engine's view that they carry no fixed
// bound.
func (e Extents) IsUnlimited() bool {
	if !e.IsSimple() {
		return true
	}
	for _, ext := range e.extents {
		if ext.IsUnlimited() {
			return true
		}
	}
	return false
}

// IsResizable reports whether every axis is unlimited
func (e Extents) IsResizable() bool {
	if !e.IsSimple() {
		return true
	}
	for _, ext := range e.extents {
		if !ext.IsResizable() {
			return false
		}
	}
	return true
}

// Resizable returns a copy with every axis made unlimited
func (e Extents) Resizable() Extents {
	if !e.IsSimple() {
		return e
	}
	return ResizableDims(e.Dims()...)
}

func (e Extents) Equal(o Extents) bool {
	if e.kind != o.kind || len(e.extents) != len(o.extents) {
		return false
	}
	for i := range e.extents {
		if e.extents[i] != o.extents[i] {
			return false
		}
	}
	return true
}

func (e Extents) String() string {
	switch e.kind {
	case ExtentsNull:
		return "null"
	case ExtentsScalar:
		return "scalar"
	}
	if len(e.extents) == 1 {
		return fmt.Sprintf("(%s,)", e.extents[0])
	}
	strs := make([]string, len(e.extents))
	for i, ext := range e.extents {
		strs[i] = ext.String()
	}
	return "(" + strings.Join(strs, ", ") + ")"
}
