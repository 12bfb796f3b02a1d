package hyperslab

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryHyperslab(t *testing.T) {
	h, err := TryHyperslab()
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())

	h, err = TryHyperslab(2)
	require.NoError(t, err)
	assert.True(t, h.Equal(NewHyperslab(Index(2))))

	h, err = TryHyperslab(Span{Start: 3, Open: true})
	require.NoError(t, err)
	assert.True(t, h.Equal(NewHyperslab(Unlimited(3, 1, 1))))

	_, err = TryHyperslab(-1, Span{Start: 2, Step: 3, Open: true}, RangeTo(4))
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, ve.Axis)

	_, err = TryHyperslab(0, Span{Start: -2, Step: 2, Open: true})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Axis)

	_, err = TryHyperslab("1..2")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHyperslabImpl(t *testing.T) {
	h, err := TryHyperslab(0, Range(1, 10), Span{Start: 2, Step: 3, Open: true})
	require.NoError(t, err)
	assert.True(t, h.Equal(NewHyperslab(Index(0), SliceTo(1, 1, 10, 1), Unlimited(2, 3, 1))))
	assert.True(t, h.IsUnlimited())
	axis, ok := h.UnlimitedAxis()
	assert.True(t, ok)
	assert.Equal(t, 2, axis)

	_, err = h.SetUnlimited(0)
	assert.EqualError(t, err, "SliceOrIndex.ToUnlimited: cannot make index selection unlimited")
	_, err = h.SetUnlimited(1)
	assert.NoError(t, err)
	_, err = h.SetUnlimited(3)
	assert.EqualError(t, err, "Hyperslab.SetUnlimited: invalid axis for making hyperslab unlimited: 3")

	u, err := h.SetUnlimited(2)
	require.NoError(t, err)
	assert.True(t, u.Equal(h))
	axis, _ = u.UnlimitedAxis()
	assert.Equal(t, 2, axis)

	_, err = u.SetBlock(0, 1)
	assert.EqualError(t, err, "SliceOrIndex.SetBlocksize: cannot set blocksize for index selection")
	_, err = u.SetBlock(3, 1)
	assert.EqualError(t, err, "Hyperslab.SetBlock: invalid axis for changing the slice to block-like: 3")

	b, err := u.SetBlock(1, 2)
	require.NoError(t, err)
	assert.True(t, b.Equal(NewHyperslab(Index(0), SliceTo(1, 1, 10, 2), Unlimited(2, 3, 1))))
	b, err = b.SetBlock(2, 2)
	require.NoError(t, err)
	assert.True(t, b.Equal(NewHyperslab(Index(0), SliceTo(1, 1, 10, 2), Unlimited(2, 3, 2))))

	assert.True(t, h.Equal(NewHyperslab(Index(0), SliceTo(1, 1, 10, 1), Unlimited(2, 3, 1))), "receiver unchanged")

	axes := h.Axes()
	axes[0] = Index(5)
	assert.True(t, h.At(0).Equal(Index(0)))
}

func TestHyperslabIntoRawErrors(t *testing.T) {
	cases := []struct {
		h     Hyperslab
		shape []int
		err   string
		axis  int
	}{
		{NewHyperslab(Index(1), Index(2)), []int{1, 2, 3}, "Hyperslab.IntoRaw: selection ndim (2) != shape ndim (3)", -1},
		{NewHyperslab(Index(0), Index(0)), []int{0, 1}, "Hyperslab.IntoRaw: index 0 out of bounds for axis 0 with size 0", 0},
		{NewHyperslab(Full(), Index(1)), []int{0, 1}, "Hyperslab.IntoRaw: index 1 out of bounds for axis 1 with size 1", 1},
		{NewHyperslab(Index(2)), []int{2}, "Hyperslab.IntoRaw: index 2 out of bounds for axis 0 with size 2", 0},
		{NewHyperslab(Index(0), RangeFrom(3)), []int{1, 2}, "Hyperslab.IntoRaw: start 3 out of bounds for axis 1 with size 2", 1},
		{NewHyperslab(Index(0), RangeToInclusive(3)), []int{1, 2}, "Hyperslab.IntoRaw: end 4 out of bounds for axis 1 with size 2", 1},
		{NewHyperslab(SliceCount(1, 2, 3, 1)), []int{5}, "Hyperslab.IntoRaw: end 6 out of bounds for axis 0 with size 5", 0},
		{NewHyperslab(SliceTo(0, 0, 3, 1)), []int{5}, "Hyperslab.IntoRaw: slice step 0 < 1 for axis 0", 0},
		{NewHyperslab(SliceTo(0, 1, 3, 0)), []int{5}, "Hyperslab.IntoRaw: slice block 0 < 1 for axis 0", 0},
		{NewHyperslab(SliceCount(0, 1, -1, 1)), []int{5}, "Hyperslab.IntoRaw: slice count -1 < 0 for axis 0", 0},
		{NewHyperslab(SliceTo(0, 1, 5, 2)), []int{5}, "Hyperslab.IntoRaw: blocks can not overlap: block 2 > step 1 for axis 0", 0},
		{NewHyperslab(Full(), Full()), []int{3, 4}, "Hyperslab.IntoRaw: expected at most 1 unlimited axis, got a second one at axis 1", 1},
		{NewHyperslab(Full(), RangeFrom(3), Index(0), Unlimited(1, 2, 1)), []int{3, 3, 1, 4}, "Hyperslab.IntoRaw: expected at most 1 unlimited axis, got a second one at axis 3", 3},
	}

	for _, c := range cases {
		_, err := c.h.IntoRaw(c.shape)
		require.Error(t, err, c.h.String())
		assert.Equal(t, c.err, err.Error())

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, c.axis, ve.Axis, c.err)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err := HyperslabFromRaw(RawHyperslab{NewRawSlice(0, 2, 1, 3)})
	assert.EqualError(t, err, "HyperslabFromRaw: blocks can not overlap (axis: 0)")
}

func TestHyperslabIntoRawHugeParams(t *testing.T) {
	// the last block would end far past the axis; the bound must not wrap
	for _, s := range []SliceOrIndex{
		SliceCount(0, math.MaxInt/2, 4, 1),
		SliceCount(0, 1, math.MaxInt, 1),
		SliceCount(3, 1, 1, math.MaxInt),
		SliceCount(0, math.MaxInt, 2, math.MaxInt),
	} {
		_, err := NewHyperslab(s).IntoRaw([]int{10})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), s.String())
		assert.Equal(t, "end", ve.Field, s.String())
		assert.Equal(t, 0, ve.Axis)
		assert.Equal(t, 10, ve.Limit)
		assert.Greater(t, ve.Value, 10, s.String())

		_, err = Select(s).OutShape([]int{10})
		assert.ErrorIs(t, err, ErrValidation)
	}

	// a block wider than the remaining axis selects nothing
	sel := Select(SliceTo(2, math.MaxInt, 5, math.MaxInt))
	raw, err := sel.IntoRaw([]int{5})
	require.NoError(t, err)
	assert.Equal(t, RawNone, raw.Kind())
	out, err := sel.OutShape([]int{5})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, out)

	n, ok := SliceTo(0, 1, math.MaxInt, math.MaxInt).Count()
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	n, _ = SliceTo(1, 1, math.MaxInt, math.MaxInt).Count()
	assert.Equal(t, 0, n)
}

func TestHyperslabBoundary(t *testing.T) {
	for _, dim := range []int{1, 2, 7, 100} {
		raw, err := NewHyperslab(Index(dim - 1)).IntoRaw([]int{dim})
		require.NoError(t, err)
		assert.Equal(t, RawHyperslab{NewRawSlice(dim-1, 1, 1, 1)}, raw)

		_, err = NewHyperslab(Full(), Index(dim)).IntoRaw([]int{3, dim})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, 1, ve.Axis)
		assert.Equal(t, dim, ve.Value)
		assert.Equal(t, dim, ve.Limit)
	}
}

func TestHyperslabRoundTrip(t *testing.T) {
	cases := []struct {
		description string
		shape       []int
		h           Hyperslab
		raw         RawHyperslab
		back        Hyperslab
	}{
		{"empty", []int{}, NewHyperslab(), RawHyperslab{}, NewHyperslab()},
		{
			"full extent", []int{5, 5, 5},
			NewHyperslab(Full(), Range(0, 5), RangeToInclusive(4)),
			RawHyperslab{NewRawSlice(0, 1, 5, 1), NewRawSlice(0, 1, 5, 1), NewRawSlice(0, 1, 5, 1)},
			NewHyperslab(RangeTo(5), RangeTo(5), RangeTo(5)),
		},
		{
			"zero dims", []int{0, 0, 0, 0, 0, 0},
			NewHyperslab(Full(), RangeFrom(0), RangeTo(0), Range(0, 0), Unlimited(0, 1, 1), Unlimited(0, 2, 1)),
			RawHyperslab{
				NewRawSlice(0, 1, 0, 1), NewRawSlice(0, 1, 0, 1), NewRawSlice(0, 1, 0, 1),
				NewRawSlice(0, 1, 0, 1), NewRawSlice(0, 1, 0, 1), NewRawSlice(0, 2, 0, 1),
			},
			NewHyperslab(RangeTo(0), RangeTo(0), RangeTo(0), RangeTo(0), RangeTo(0), SliceTo(0, 2, 0, 1)),
		},
		{
			"strided", []int{7, 7, 7, 7, 7, 7, 7},
			NewHyperslab(
				SliceTo(1, 3, 2, 1), SliceTo(1, 3, 3, 1), SliceTo(1, 3, 4, 1), SliceTo(1, 3, 5, 1),
				SliceTo(1, 3, 6, 1), SliceTo(1, 3, 7, 1), SliceTo(0, 3, 7, 1),
			),
			RawHyperslab{
				NewRawSlice(1, 3, 1, 1), NewRawSlice(1, 3, 1, 1), NewRawSlice(1, 3, 1, 1), NewRawSlice(1, 3, 2, 1),
				NewRawSlice(1, 3, 2, 1), NewRawSlice(1, 3, 2, 1), NewRawSlice(0, 3, 3, 1),
			},
			NewHyperslab(
				SliceTo(1, 3, 2, 1), SliceTo(1, 3, 2, 1), SliceTo(1, 3, 2, 1), SliceTo(1, 3, 5, 1),
				SliceTo(1, 3, 5, 1), SliceTo(1, 3, 5, 1), SliceTo(0, 3, 7, 1),
			),
		},
		{
			"blocked", []int{20, 9},
			NewHyperslab(SliceTo(2, 5, 20, 3), Index(8)),
			RawHyperslab{NewRawSlice(2, 5, 4, 3), NewRawSlice(8, 1, 1, 1)},
			NewHyperslab(SliceCount(2, 5, 4, 3), SliceCount(8, 1, 1, 1)),
		},
		{
			"single wide block", []int{8},
			NewHyperslab(SliceTo(2, 2, 8, 6)),
			RawHyperslab{NewRawSlice(2, 6, 1, 6)},
			NewHyperslab(SliceCount(2, 6, 1, 6)),
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			raw, err := c.h.IntoRaw(c.shape)
			require.NoError(t, err)
			assert.True(t, raw.Equal(c.raw), "got %s", raw)

			back, err := HyperslabFromRaw(raw)
			require.NoError(t, err)
			assert.True(t, back.Equal(c.back), "got %s", back)

			raw2, err := back.IntoRaw(c.shape)
			require.NoError(t, err)
			assert.True(t, raw2.Equal(raw))
		})
	}
}

func TestHyperslabIntoRawPartial(t *testing.T) {
	h := NewHyperslab(Index(1), Unlimited(2, 3, 1), RangeTo(4))
	raw, err := h.IntoRawPartial([]int{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, RawHyperslab{NewRawSlice(1, 1, 1, 1), UnlimitedRawSlice(2, 3, 1), NewRawSlice(0, 1, 4, 1)}, raw)
	assert.True(t, raw.IsUnlimited())
	_, err = raw.Shape()
	assert.EqualError(t, err, "RawHyperslab.Shape: unable to get the shape for unlimited hyperslab (axis 1)")

	back, err := HyperslabFromRaw(raw)
	require.NoError(t, err)
	assert.True(t, back.At(1).Equal(Unlimited(2, 3, 1)))

	_, err = NewHyperslab(Full(), Full()).IntoRawPartial([]int{3, 3})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewHyperslab(Unlimited(0, 1, 2)).IntoRawPartial([]int{3})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewHyperslab(Unlimited(4, 1, 1)).IntoRawPartial([]int{3})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHyperslabString(t *testing.T) {
	assert.Equal(t, "(1,)", NewHyperslab(Index(1)).String())
	assert.Equal(t, "()", NewHyperslab().String())

	h, err := TryHyperslab(1, Span{Start: 2, Stop: 3, Step: 3, Open: true}, RangeTo(4), RangeFrom(5))
	require.NoError(t, err)
	h, err = h.SetUnlimited(1)
	require.NoError(t, err)
	assert.Equal(t, "(1, 2..∞;3, ..4, 5..∞)", h.String())
}
