// Package version compares the version strings found in Updates.xml
// documents. These are not strict semver ("5.14.0-0-202003051720" is
// typical), so comparison is segment-wise: numeric segments compare
// numerically, everything else lexically. The resolver never consults
// versions; this component is for callers picking between packages.
package version

import (
	"strconv"
	"strings"
)

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b string) int {
	as, bs := segments(a), segments(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Max returns the highest of the given version strings, or "" for none.
func Max(versions []string) string {
	if len(versions) == 0 {
		return ""
	}
	max := versions[0]
	for _, v := range versions[1:] {
		if Compare(v, max) > 0 {
			max = v
		}
	}
	return max
}

func segments(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == '.' || r == '-'
	})
}

func compareSegment(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
