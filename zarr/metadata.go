package zarr

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/qri-io/hyperslab"
)

// FormatVersion is the zarr storage specification version written by Create
const FormatVersion = 2

type MetaType string

const (
	// MTAttributes stores userland metadata keyed by array name
	MTAttributes MetaType = ".zattrs"
	// MTArray is the key for storing metadata on an array store
	MTArray MetaType = ".zarray"
	// MTGroup is the key for storing group definitions on an array store
	MTGroup MetaType = ".zgroup"
	// MTMetadata is the key for composite metadata
	MTMetadata MetaType = ".zmetadata"
)

type MetaTyper interface {
	MetaType() MetaType
}

var metaTypes = map[MetaType]struct{}{
	MTAttributes: {},
	MTArray:      {},
	MTGroup:      {},
}

// KeyMetaType reports the metadata kind stored under key. It relies on every
// metadata key name being 7 characters long.
func KeyMetaType(s string) (mt MetaType, ok bool) {
	if len(s) < 7 {
		return mt, false
	}
	mt = MetaType(s[len(s)-7:])
	_, ok = metaTypes[mt]
	return mt, ok
}

type Attributes map[string]interface{}

func (Attributes) MetaType() MetaType { return MTAttributes }

// Group marks a logical path as a container of arrays and other groups
type Group struct {
	ZarrFormat int `json:"zarr_format"`
}

func (Group) MetaType() MetaType { return MTGroup }

// ArrayMeta is the ".zarray" document. Only the fields that describe the
// array's shape and chunk layout are interpreted; dtype and codec settings
// are carried through untouched.
type ArrayMeta struct {
	// Version of the storage specification the array adheres to
	ZarrFormat int `json:"zarr_format"`
	// Length of each dimension of the array
	Shape []int `json:"shape"`
	// Length of each dimension of a chunk. All chunks share a shape.
	Chunks []int `json:"chunks"`
	// Data type, kept in its encoded form
	Dtype json.RawMessage `json:"dtype,omitempty"`
	// Primary chunk compression codec, or nil
	Compressor *CompressionMeta `json:"compressor"`
	// Default value for uninitialized portions of the array
	FillValue interface{} `json:"fill_value"`
	// "C" for row-major, "F" for column-major chunk layout
	Order string `json:"order"`
	// Codec configurations applied before compression
	Filters []Filter `json:"filters"`
	// "." or "/", the separator between chunk coordinates in chunk keys.
	// Empty means ".".
	DimensionSeparator string `json:"dimension_separator,omitempty"`
}

func (a ArrayMeta) MetaType() MetaType { return MTArray }

// Validate checks that the shape and chunk grid agree
func (a *ArrayMeta) Validate() error {
	if len(a.Shape) > hyperslab.MaxRank {
		return fmt.Errorf("array rank %d exceeds maximum of %d", len(a.Shape), hyperslab.MaxRank)
	}
	if len(a.Chunks) != len(a.Shape) {
		return fmt.Errorf("chunks rank (%d) != shape rank (%d)", len(a.Chunks), len(a.Shape))
	}
	for i, d := range a.Shape {
		if d < 0 {
			return fmt.Errorf("shape dimension %d is negative: %d", i, d)
		}
		if a.Chunks[i] < 1 {
			return fmt.Errorf("chunk dimension %d must be positive: %d", i, a.Chunks[i])
		}
	}
	switch a.DimensionSeparator {
	case "", ".", "/":
	default:
		return fmt.Errorf("invalid dimension separator %q", a.DimensionSeparator)
	}
	return nil
}

// Extents describes the array's current shape. Zarr arrays may be resized
// along any axis, so every axis is unlimited; a zero-rank array is a scalar.
func (a *ArrayMeta) Extents() hyperslab.Extents {
	return hyperslab.ResizableDims(a.Shape...)
}

// Separator returns the chunk key separator, defaulting to "."
func (a *ArrayMeta) Separator() string {
	if a.DimensionSeparator == "" {
		return "."
	}
	return a.DimensionSeparator
}

type Filter struct {
	ID     string `json:"id"`
	Delta  string `json:"delta,omitempty"`
	Dtype  string `json:"dtype,omitempty"`
	AsType string `json:"astype,omitempty"`
}

const (
	// Not a Number
	FillValueNaN = "NaN"
	// Infinity
	FillValueInfinity = "Infinity"
	// -Infinity
	FillValueNegativeInfinity = "-Infinity"
)

// ConsolidatedMetadata gathers every metadata document of a hierarchy under
// a single ".zmetadata" key
type ConsolidatedMetadata struct {
	ConsolidatedFormat int                  `json:"zarr_consolidated_format"`
	Metadata           map[string]MetaTyper `json:"metadata"`
}

type consolidatedMetaDecoder struct {
	ConsolidatedFormat int                        `json:"zarr_consolidated_format"`
	Metadata           map[string]json.RawMessage `json:"metadata"`
}

func (m *ConsolidatedMetadata) UnmarshalJSON(d []byte) error {
	cd := consolidatedMetaDecoder{}
	if err := json.Unmarshal(d, &cd); err != nil {
		return err
	}
	cm := ConsolidatedMetadata{
		ConsolidatedFormat: cd.ConsolidatedFormat,
		Metadata:           map[string]MetaTyper{},
	}

	for key, data := range cd.Metadata {
		kt, ok := KeyMetaType(key)
		if !ok {
			return fmt.Errorf("invalid consolidated metadata key: %q", key)
		}

		switch kt {
		case MTArray:
			arr := &ArrayMeta{}
			if err := json.Unmarshal(data, arr); err != nil {
				return fmt.Errorf("reading %q metadata: %w", key, err)
			}
			cm.Metadata[key] = arr
		case MTAttributes:
			attr := Attributes{}
			if err := json.Unmarshal(data, &attr); err != nil {
				return fmt.Errorf("reading %q attributes: %w", key, err)
			}
			cm.Metadata[key] = attr
		case MTGroup:
			grp := Group{}
			if err := json.Unmarshal(data, &grp); err != nil {
				return fmt.Errorf("reading %q group: %w", key, err)
			}
			cm.Metadata[key] = grp
		}
	}

	*m = cm
	return nil
}

// ArrayMeta returns the array metadata recorded for path
func (m *ConsolidatedMetadata) ArrayMeta(path string) (*ArrayMeta, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	key := p.Join(string(MTArray)).String()
	mt, ok := m.Metadata[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotfound, key)
	}
	meta, ok := mt.(*ArrayMeta)
	if !ok {
		return nil, fmt.Errorf("key %q does not hold array metadata", key)
	}
	return meta, nil
}

// Consolidate reads every metadata document in store and writes them under
// the root ".zmetadata" key
func Consolidate(store Store) (*ConsolidatedMetadata, error) {
	lister, ok := store.(Lister)
	if !ok {
		return nil, fmt.Errorf("store %s cannot list keys", store.Type())
	}
	keys, err := lister.List("")
	if err != nil {
		return nil, err
	}

	docs := map[string]json.RawMessage{}
	for _, key := range keys {
		if _, ok := KeyMetaType(key); !ok {
			continue
		}
		d, err := readKey(store, key)
		if err != nil {
			return nil, err
		}
		docs[key] = d
	}

	d, err := json.Marshal(consolidatedMetaDecoder{ConsolidatedFormat: 1, Metadata: docs})
	if err != nil {
		return nil, err
	}
	cm := &ConsolidatedMetadata{}
	if err := json.Unmarshal(d, cm); err != nil {
		return nil, err
	}
	if err := store.Put(string(MTMetadata), strings.NewReader(string(d))); err != nil {
		return nil, err
	}
	return cm, nil
}

// OpenConsolidated reads the root ".zmetadata" document of store
func OpenConsolidated(store Store) (*ConsolidatedMetadata, error) {
	d, err := readKey(store, string(MTMetadata))
	if err != nil {
		return nil, err
	}
	cm := &ConsolidatedMetadata{}
	if err := json.Unmarshal(d, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func readKey(store Store, key string) ([]byte, error) {
	f, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
