package hyperslab

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelection reads a selection in the form String produces:
//
//	..                    All
//	[]                    nothing selected
//	[](0x3)               no points of a three-dimensional array
//	[[1, 2], [3, 4]]      points, one row per element
//	[1, 5, 7]             points of a one-dimensional array
//	(1, 2..∞;3, ..4)      hyperslab
//
// Slices additionally accept "a..", "..=b" and "..inf".
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "..":
		return All(), nil
	case strings.HasPrefix(s, "["):
		p, err := parsePoints(s)
		if err != nil {
			return Selection{}, err
		}
		return SelectPointsOf(p), nil
	}
	h, err := ParseHyperslab(s)
	if err != nil {
		return Selection{}, err
	}
	return SelectHyperslabOf(h), nil
}

// ParseHyperslab reads a parenthesised, comma separated list of selectors.
// The parentheses are optional.
func ParseHyperslab(s string) (Hyperslab, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") || strings.Count(s, "(") != strings.Count(s, ")") {
			return Hyperslab{}, syntaxError("ParseHyperslab", -1, "unbalanced parentheses in %q", s)
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return NewHyperslab(), nil
	}

	parts := splitAxes(s)
	if last := len(parts) - 1; last > 0 && strings.TrimSpace(parts[last]) == "" {
		parts = parts[:last]
	}
	axes := make([]SliceOrIndex, len(parts))
	for i, part := range parts {
		ax, err := parseSliceOrIndex(i, part)
		if err != nil {
			return Hyperslab{}, err
		}
		axes[i] = ax
	}
	return Hyperslab{axes: axes}, nil
}

// ParseSliceOrIndex reads a single selector, eg. "4", "2..8;3", "1+5;3(Bx2)"
func ParseSliceOrIndex(s string) (SliceOrIndex, error) {
	return parseSliceOrIndex(-1, s)
}

// splitAxes splits on commas outside of block suffixes
func splitAxes(s string) []string {
	var (
		parts []string
		depth int
		last  int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func parseSliceOrIndex(axis int, s string) (SliceOrIndex, error) {
	const op = "ParseSliceOrIndex"
	s = strings.TrimSpace(s)
	if s == "" {
		return SliceOrIndex{}, syntaxError(op, axis, "empty selector")
	}
	// "+5" is a count-bounded slice starting at 0, not the index 5
	if i, err := strconv.Atoi(s); err == nil && s[0] != '+' {
		if i < 0 {
			return SliceOrIndex{}, invalidAxis(op, "index", axis, i, 0, "index %d must be non-negative", i)
		}
		return Index(i), nil
	}

	rest := s
	start, rest, err := leadingInt(rest)
	if err != nil {
		return SliceOrIndex{}, syntaxError(op, axis, "%q: %s", s, err)
	}

	var (
		kind  SliceKind
		bound int
	)
	switch {
	case strings.HasPrefix(rest, "+"):
		kind = KindSliceCount
		bound, rest, err = requiredInt(rest[1:])
	case strings.HasPrefix(rest, "..="):
		kind = KindSliceTo
		bound, rest, err = requiredInt(rest[3:])
		bound++
	case strings.HasPrefix(rest, "..∞"):
		kind, rest = KindUnlimited, rest[len("..∞"):]
	case strings.HasPrefix(rest, "..inf"):
		kind, rest = KindUnlimited, rest[len("..inf"):]
	case strings.HasPrefix(rest, ".."):
		rest = rest[2:]
		if rest == "" || rest[0] == ';' || rest[0] == '(' {
			kind = KindUnlimited
		} else {
			kind = KindSliceTo
			bound, rest, err = requiredInt(rest)
		}
	default:
		return SliceOrIndex{}, syntaxError(op, axis, "%q: expected '..' or '+' after start", s)
	}
	if err != nil {
		return SliceOrIndex{}, syntaxError(op, axis, "%q: %s", s, err)
	}

	step, block := 1, 1
	if strings.HasPrefix(rest, ";") {
		if step, rest, err = requiredInt(rest[1:]); err != nil {
			return SliceOrIndex{}, syntaxError(op, axis, "%q: step: %s", s, err)
		}
	}
	if strings.HasPrefix(rest, "(Bx") {
		if block, rest, err = requiredInt(rest[3:]); err != nil {
			return SliceOrIndex{}, syntaxError(op, axis, "%q: block: %s", s, err)
		}
		if !strings.HasPrefix(rest, ")") {
			return SliceOrIndex{}, syntaxError(op, axis, "%q: unterminated block", s)
		}
		rest = rest[1:]
	}
	if strings.TrimSpace(rest) != "" {
		return SliceOrIndex{}, syntaxError(op, axis, "%q: unexpected trailing %q", s, rest)
	}

	switch kind {
	case KindSliceCount:
		return SliceCount(start, step, bound, block), nil
	case KindSliceTo:
		return SliceTo(start, step, bound, block), nil
	default:
		return Unlimited(start, step, block), nil
	}
}

// leadingInt consumes an optional unsigned integer prefix
func leadingInt(s string) (int, string, error) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, s, nil
	}
	v, err := strconv.Atoi(s[:n])
	return v, s[n:], err
}

func requiredInt(s string) (int, string, error) {
	s = strings.TrimLeft(s, " ")
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, s, fmt.Errorf("expected a non-negative integer")
	}
	return leadingInt(s)
}

func parsePoints(s string) (Points, error) {
	const op = "ParseSelection"
	if rest, ok := strings.CutPrefix(s, "[](0x"); ok {
		ndim, tail, err := requiredInt(rest)
		if err != nil || tail != ")" {
			return Points{}, syntaxError(op, -1, "invalid empty point list %q", s)
		}
		return EmptyPoints(ndim), nil
	}
	if !strings.HasSuffix(s, "]") {
		return Points{}, syntaxError(op, -1, "unterminated point list %q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return Points{}, nil
	}

	if !strings.HasPrefix(body, "[") {
		idx, err := parseInts(body)
		if err != nil {
			return Points{}, syntaxError(op, -1, "%q: %s", s, err)
		}
		return PointList(idx...), nil
	}

	var rows [][]int
	for body != "" {
		if !strings.HasPrefix(body, "[") {
			return Points{}, syntaxError(op, -1, "%q: expected '['", s)
		}
		end := strings.Index(body, "]")
		if end < 0 {
			return Points{}, syntaxError(op, -1, "%q: unterminated row", s)
		}
		row, err := parseInts(body[1:end])
		if err != nil {
			return Points{}, syntaxError(op, -1, "%q: %s", s, err)
		}
		rows = append(rows, row)
		body = strings.TrimSpace(body[end+1:])
		body = strings.TrimSpace(strings.TrimPrefix(body, ","))
	}
	return NewPoints(rows...)
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	ints := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("coordinate %d must be non-negative", v)
		}
		ints[i] = v
	}
	return ints, nil
}

func syntaxError(op string, axis int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Op:     op,
		Axis:   axis,
		Field:  "syntax",
		Reason: fmt.Sprintf(format, args...),
	}
}
