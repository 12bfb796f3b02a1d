package hyperslab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectionRoundTrip(t *testing.T) {
	h, err := NewHyperslab(Index(1), Unlimited(2, 3, 1), RangeTo(4), RangeFrom(5)).SetUnlimited(1)
	require.NoError(t, err)

	sels := []Selection{
		All(),
		NoSelection(),
		SelectPointsOf(mustPoints(t, []int{1, 2, 3}, []int{4, 5, 6})),
		SelectPointsOf(EmptyPoints(3)),
		Select(Index(1)),
		Select(),
		SelectHyperslabOf(h),
		Select(SliceTo(0, 2, 8, 1), SliceCount(1, 3, 5, 2), Unlimited(4, 4, 3)),
		Select(RangeTo(0), Full(), Index(0)),
	}

	for _, sel := range sels {
		t.Run(sel.String(), func(t *testing.T) {
			got, err := ParseSelection(sel.String())
			require.NoError(t, err)
			assert.True(t, got.Equal(sel), "got %s", got)
			assert.Equal(t, sel.String(), got.String())
		})
	}
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		in   string
		want Selection
	}{
		{"  ..  ", All()},
		{"[]", NoSelection()},
		{"[1, 5, 7]", SelectIndices(1, 5, 7)},
		{"[[0, 1], [2, 3]]", SelectPointsOf(mustPoints(t, []int{0, 1}, []int{2, 3}))},
		{"(1..;2, 3)", Select(Unlimited(1, 2, 1), Index(3))},
		{"1..;2, 3", Select(Unlimited(1, 2, 1), Index(3))},
		{"(..=4, 3.., ..inf;2)", Select(SliceTo(0, 1, 5, 1), Unlimited(3, 1, 1), Unlimited(0, 2, 1))},
		{"(2..8;3(Bx2), 1+5;3(Bx2))", Select(SliceTo(2, 3, 8, 2), SliceCount(1, 3, 5, 2))},
		{"(..∞(Bx4),)", Select(Unlimited(0, 1, 4))},
	}

	for _, c := range cases {
		got, err := ParseSelection(c.in)
		require.NoError(t, err, c.in)
		assert.True(t, got.Equal(c.want), "%q: got %s", c.in, got)
	}
}

func TestParseEmptyPoints(t *testing.T) {
	sel := SelectPointsOf(EmptyPoints(3))
	assert.Equal(t, "[](0x3)", sel.String())

	got, err := ParseSelection(sel.String())
	require.NoError(t, err)
	assert.False(t, got.IsNone())
	n, ok := got.InNDim()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	out, err := got.OutShape([]int{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, out)

	for _, in := range []string{"[](0x)", "[](0x3", "[](0x3)]", "[](0x-1)"} {
		_, err := ParseSelection(in)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}

func TestParseSliceOrIndex(t *testing.T) {
	s, err := ParseSliceOrIndex(" 4 ")
	require.NoError(t, err)
	assert.True(t, s.Equal(Index(4)))

	s, err = ParseSliceOrIndex("1..10;2")
	require.NoError(t, err)
	assert.True(t, s.Equal(SliceTo(1, 2, 10, 1)))

	s, err = ParseSliceOrIndex("+5")
	require.NoError(t, err)
	assert.Equal(t, KindSliceCount, s.Kind())
	assert.True(t, s.Equal(SliceCount(0, 1, 5, 1)))

	s, err = ParseSliceOrIndex("..")
	require.NoError(t, err)
	assert.True(t, s.Equal(Full()))
}

func TestParseHugeSelection(t *testing.T) {
	// either the step does not fit an int or the slice ends past the axis
	sel, err := ParseSelection("(+4;4611686018427387904,)")
	if err == nil {
		_, err = sel.IntoRaw([]int{10})
	}
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in  string
		err string
	}{
		{"-1", "ParseSliceOrIndex: index -1 must be non-negative"},
		{"abc", `ParseSliceOrIndex: "abc": expected '..' or '+' after start`},
		{"1;2", `ParseSliceOrIndex: "1;2": expected '..' or '+' after start`},
		{"1..x", `ParseSliceOrIndex: "1..x": expected a non-negative integer`},
		{"1..4;", `ParseSliceOrIndex: "1..4;": step: expected a non-negative integer`},
		{"1..4x", `ParseSliceOrIndex: "1..4x": unexpected trailing "x"`},
		{"(1, 2", `ParseHyperslab: unbalanced parentheses in "(1, 2"`},
		{"(1,,2)", "ParseSliceOrIndex: empty selector"},
		{"[1, 2", `ParseSelection: unterminated point list "[1, 2"`},
		{"[[1, 2], [3]]", "NewPoints: point 1 has 1 coordinates, expected 2"},
		{"[1, -2]", `ParseSelection: "[1, -2]": coordinate -2 must be non-negative`},
	}

	for _, c := range cases {
		_, err := ParseSelection(c.in)
		assert.EqualError(t, err, c.err, c.in)
		assert.ErrorIs(t, err, ErrValidation, c.in)
	}
}
