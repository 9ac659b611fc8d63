package types

import (
	"regexp"
	"strconv"
	"strings"
)

// Coordinates holds one position on each of the five image axes.
type Coordinates struct {
	X, Y, C, Z, T int
}

// Bounds describes a sub-region of an image as inclusive per-axis
// (start, end) ranges. An end of -1 means "last index on that axis".
type Bounds struct {
	Start Coordinates
	End   Coordinates
}

// WholeImage covers the full extent of every axis.
var WholeImage = Bounds{
	Start: Coordinates{0, 0, 0, 0, 0},
	End:   Coordinates{-1, -1, -1, -1, -1},
}

// boundsPattern captures XYCZT constraints in any order, each of the
// form x:: x:0: x::100 x:0:100 c:0.
var boundsPattern = regexp.MustCompile(`(?i)([xyczt]):(\d*)(:?)(\d*)`)

// ParseBounds parses a region string such as "x:0:100 y::200 z:5 t::"
// into Bounds. End coordinates are given exclusive-style and converted
// to inclusive last indices. An axis written as "z:5" with no second
// colon selects the single slice 5. Axes may appear in any order; the
// first constraint for an axis wins and unconstrained axes default to
// the whole extent. Unparseable input yields WholeImage.
func ParseBounds(spec string) Bounds {
	start := make(map[string]int, 5)
	end := make(map[string]int, 5)
	for _, m := range boundsPattern.FindAllStringSubmatch(spec, -1) {
		axis := strings.ToLower(m[1])
		if _, ok := start[axis]; ok {
			continue
		}
		s, e := axisRange(m[2], m[3], m[4])
		start[axis] = s
		end[axis] = e
	}
	get := func(m map[string]int, axis string, def int) int {
		if v, ok := m[axis]; ok {
			return v
		}
		return def
	}
	return Bounds{
		Start: Coordinates{
			X: get(start, "x", 0),
			Y: get(start, "y", 0),
			C: get(start, "c", 0),
			Z: get(start, "z", 0),
			T: get(start, "t", 0),
		},
		End: Coordinates{
			X: get(end, "x", -1),
			Y: get(end, "y", -1),
			C: get(end, "c", -1),
			Z: get(end, "z", -1),
			T: get(end, "t", -1),
		},
	}
}

// axisRange converts one captured (start, separator, end) triple to an
// inclusive range. Without a second colon a non-empty start selects a
// single slice.
func axisRange(from, sep, to string) (int, int) {
	start := 0
	if from != "" {
		start, _ = strconv.Atoi(from)
	}
	if sep == "" && from != "" {
		return start, start
	}
	if to == "" {
		return start, -1
	}
	end, _ := strconv.Atoi(to)
	return start, end - 1
}
