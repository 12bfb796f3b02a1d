package zarr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qri-io/hyperslab"
)

type PersistenceMode string

const (
	// ModeRead means read only (must exist)
	ModeRead PersistenceMode = "r"
	// ModeReadWrite means read/write (must exist)
	ModeReadWrite PersistenceMode = "r+"
	// ModeReadWriteCreate means read/write (create if doesn't exist)
	ModeReadWriteCreate PersistenceMode = "a"
	// ModeWrite means create (overwrite if exists)
	ModeWrite PersistenceMode = "w"
	// ModeWriteFail means create (fail if exists)
	ModeWriteFail PersistenceMode = "w-"
)

func (m PersistenceMode) writable() bool { return m != ModeRead }

// Array is a handle on a zarr array's metadata. It answers extent queries and
// hands out dataspaces selections are applied to; it never reads chunk data.
type Array struct {
	path  Path
	store Store
	mode  PersistenceMode
	meta  *ArrayMeta
}

var _ hyperslab.ExtentsSource = (*Array)(nil)

// Create writes array metadata at path. ModeWriteFail refuses to replace an
// existing array; any other mode overwrites it.
func Create(store Store, path string, meta *ArrayMeta, mode PersistenceMode) (*Array, error) {
	if !mode.writable() {
		return nil, fmt.Errorf("%w: cannot create array in mode %q", ErrReadOnly, mode)
	}
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	if meta.ZarrFormat == 0 {
		meta.ZarrFormat = FormatVersion
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	key := p.Join(string(MTArray)).String()
	if mode == ModeWriteFail {
		if f, err := store.Get(key); err == nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s", ErrExists, key)
		}
	}

	a := &Array{path: p, store: store, mode: mode, meta: meta}
	if err := a.writeMeta(); err != nil {
		return nil, err
	}
	slog.Debug("created array", "path", a.Path(), "shape", meta.Shape, "chunks", meta.Chunks)
	return a, nil
}

// Open reads the array metadata stored at path. In ModeReadWriteCreate a
// missing array is not an error: the handle has no metadata until Create or
// Resize writes some.
func Open(store Store, path string, mode PersistenceMode) (*Array, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}

	a := &Array{
		path:  p,
		store: store,
		mode:  mode,
	}

	d, err := readKey(store, p.Join(string(MTArray)).String())
	if err != nil {
		if errors.Is(err, ErrNotfound) && mode == ModeReadWriteCreate {
			return a, nil
		}
		return nil, err
	}
	a.meta = &ArrayMeta{}
	if err := json.Unmarshal(d, a.meta); err != nil {
		return nil, fmt.Errorf("reading %s metadata: %w", a.Path(), err)
	}
	if err := a.meta.Validate(); err != nil {
		return nil, fmt.Errorf("reading %s metadata: %w", a.Path(), err)
	}
	slog.Debug("opened array", "path", a.Path(), "shape", a.meta.Shape)
	return a, nil
}

func (a *Array) Info() string {
	if a.meta == nil {
		return fmt.Sprintf("<zarr.Array %s (uninitialized)>", a.Path())
	}
	return fmt.Sprintf("<zarr.Array %s %s>", a.Path(), a.meta.Extents())
}

func (a *Array) Path() string {
	return a.path.String()
}

// Meta returns a copy of the array metadata
func (a *Array) Meta() (ArrayMeta, error) {
	if a.meta == nil {
		return ArrayMeta{}, fmt.Errorf("%w: %s has no array metadata", ErrNotfound, a.Path())
	}
	m := *a.meta
	m.Shape = append([]int(nil), a.meta.Shape...)
	m.Chunks = append([]int(nil), a.meta.Chunks...)
	return m, nil
}

// Extents reports the array's current shape
func (a *Array) Extents() (hyperslab.Extents, error) {
	if a.meta == nil {
		return hyperslab.Extents{}, fmt.Errorf("%w: %s has no array metadata", ErrNotfound, a.Path())
	}
	return a.meta.Extents(), nil
}

// Resize changes the array shape, keeping its rank
func (a *Array) Resize(shape []int) error {
	if !a.mode.writable() {
		return fmt.Errorf("%w: cannot resize %s", ErrReadOnly, a.Path())
	}
	if a.meta == nil {
		return fmt.Errorf("%w: %s has no array metadata", ErrNotfound, a.Path())
	}
	if len(shape) != len(a.meta.Shape) {
		return fmt.Errorf("resize rank (%d) != array rank (%d)", len(shape), len(a.meta.Shape))
	}

	prev := a.meta.Shape
	a.meta.Shape = append([]int(nil), shape...)
	if err := a.meta.Validate(); err != nil {
		a.meta.Shape = prev
		return err
	}
	if err := a.writeMeta(); err != nil {
		a.meta.Shape = prev
		return err
	}
	slog.Debug("resized array", "path", a.Path(), "from", prev, "to", shape)
	return nil
}

// Space returns a fresh dataspace over the array's current extents with
// everything selected
func (a *Array) Space() (*Dataspace, error) {
	ext, err := a.Extents()
	if err != nil {
		return nil, err
	}
	return NewDataspace(ext), nil
}

// Select resolves sel against the array's current extents and returns a
// dataspace with the result applied
func (a *Array) Select(sel hyperslab.Selection) (*Dataspace, error) {
	ds, err := a.Space()
	if err != nil {
		return nil, err
	}
	if _, err := hyperslab.Apply(ds, sel); err != nil {
		return nil, err
	}
	return ds, nil
}

// OutShape is the shape of the data sel yields from the array
func (a *Array) OutShape(sel hyperslab.Selection) ([]int, error) {
	return hyperslab.OutShape(a, sel)
}

// Chunks plans which chunks a selection touches
func (a *Array) Chunks(sel hyperslab.Selection) ([]ChunkProjection, error) {
	if a.meta == nil {
		return nil, fmt.Errorf("%w: %s has no array metadata", ErrNotfound, a.Path())
	}
	raw, err := hyperslab.Resolve(a, sel)
	if err != nil {
		return nil, err
	}
	grid := NewChunkGrid(a.meta)
	return grid.Project(raw)
}

// ChunkKey is the store key of the chunk at coords
func (a *Array) ChunkKey(coords []int) (string, error) {
	if a.meta == nil {
		return "", fmt.Errorf("%w: %s has no array metadata", ErrNotfound, a.Path())
	}
	return a.path.Join(NewChunkGrid(a.meta).Key(coords)).String(), nil
}

func (a *Array) writeMeta() error {
	d, err := json.Marshal(a.meta)
	if err != nil {
		return err
	}
	return a.store.Put(a.path.Join(string(MTArray)).String(), bytes.NewReader(d))
}

// Path is a normalized logical path within a store
type Path []string

// NewPath normalizes a logical path the way the zarr spec requires: backslashes
// become forward slashes, leading and trailing slashes are stripped and runs
// of slashes collapse into one
func NewPath(posix string) (Path, error) {
	posix = strings.ReplaceAll(posix, `\`, "/")
	var p Path
	for _, el := range strings.Split(posix, "/") {
		switch el {
		case "":
			continue
		case ".", "..":
			return nil, fmt.Errorf("invalid path %q: relative segment %q", posix, el)
		}
		p = append(p, el)
	}
	return p, nil
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

func (p Path) Shift() (head string, ch Path) {
	switch len(p) {
	case 0:
		return "", nil
	case 1:
		return p[0], nil
	default:
		return p[0], p[1:]
	}
}

// Join returns a new path with elems appended. p is never modified.
func (p Path) Join(elems ...string) Path {
	joined := make(Path, 0, len(p)+len(elems))
	joined = append(joined, p...)
	for _, el := range elems {
		joined = append(joined, strings.Split(el, "/")...)
	}
	return joined
}
