package hyperslab

// ExtentsSource reports the current extents of an array-like storage object
type ExtentsSource interface {
	Extents() (Extents, error)
}

// Space is a region handle a storage engine reads and writes through: it
// carries extents, accepts a raw selection and reports the one applied.
type Space interface {
	ExtentsSource
	Select(RawSelection) error
	Selection() (RawSelection, error)
}

// Resolve queries the current extents of src and translates sel against them
func Resolve(src ExtentsSource, sel Selection) (RawSelection, error) {
	ext, err := src.Extents()
	if err != nil {
		return RawSelection{}, err
	}
	return sel.IntoRaw(ext.Dims())
}

// Apply resolves sel against the extents of space and applies the result.
// On error the space is left untouched.
func Apply(space Space, sel Selection) (RawSelection, error) {
	raw, err := Resolve(space, sel)
	if err != nil {
		return RawSelection{}, err
	}
	if err := space.Select(raw); err != nil {
		return RawSelection{}, err
	}
	return raw, nil
}

// Extract reads the selection currently applied to space back in cooked form
func Extract(space Space) (Selection, error) {
	raw, err := space.Selection()
	if err != nil {
		return Selection{}, err
	}
	return SelectionFromRaw(raw)
}

// OutShape is the shape of the data sel yields from src
func OutShape(src ExtentsSource, sel Selection) ([]int, error) {
	ext, err := src.Extents()
	if err != nil {
		return nil, err
	}
	return sel.OutShape(ext.Dims())
}
