// Package semver models the catalog's three-component resource versions and
// the "latest version wins" ordering used to collapse search results.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Pattern is the anchored regular expression a well-formed version string
// matches. It accepts exactly what Parse accepts: both drivers use it to
// agree on which stored versions qualify for latest-version selection.
const Pattern = `^[0-9]+\.[0-9]+\.[0-9]+$`

// Version is a parsed MAJOR.MINOR.PATCH resource version. Ordering is
// numeric per component, most significant first, never lexicographic on
// the string form.
type Version struct {
	major int
	minor int
	patch int
}

// Parse validates and parses a version string. Exactly three dot-separated
// base-10 components are required, digits only: signs, spaces, and empty
// components are errors.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("version %q must have exactly 3 components", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("version %q component %q is not an unsigned integer", s, p)
		}
		nums[i] = int(n)
	}
	return Version{major: nums[0], minor: nums[1], patch: nums[2]}, nil
}

// MustParse calls Parse and panics on error. For tests and fixtures.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Major returns the major component.
func (v Version) Major() int { return v.major }

// Minor returns the minor component.
func (v Version) Minor() int { return v.minor }

// Patch returns the patch component.
func (v Version) Patch() int { return v.patch }

// Compare orders versions numerically: -1 if v < o, 0 if equal, +1 if v > o.
func (v Version) Compare(o Version) int {
	if c := cmp(v.major, o.major); c != 0 {
		return c
	}
	if c := cmp(v.minor, o.minor); c != 0 {
		return c
	}
	return cmp(v.patch, o.patch)
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// String renders the canonical dotted form. Leading zeros from the input
// are not preserved.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
