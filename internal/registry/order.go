package registry

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Ordering decides which key Latest returns and the order of Keys.
type Ordering int

const (
	// NaturalOrder compares strings lexicographically and ints numerically.
	NaturalOrder Ordering = iota
	// SemverOrder compares keys as semantic versions. Keys that do not parse
	// sort below every version.
	SemverOrder
)

func (o Ordering) String() string {
	switch o {
	case SemverOrder:
		return "semver"
	default:
		return "natural"
	}
}

// ParseOrdering parses "natural" or "semver". An empty string is natural.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(s) {
	case "", "natural":
		return NaturalOrder, nil
	case "semver":
		return SemverOrder, nil
	default:
		return NaturalOrder, fmt.Errorf("%w: unknown ordering %q", ErrInvalidConfig, s)
	}
}

// DuplicatePolicy decides what happens when two units produce the same key.
type DuplicatePolicy int

const (
	// Overwrite lets the unit scanned last own the key.
	Overwrite DuplicatePolicy = iota
	// KeepFirst ignores later candidates for a key that is already indexed.
	KeepFirst
)

func (p DuplicatePolicy) String() string {
	if p == KeepFirst {
		return "keep_first"
	}
	return "overwrite"
}

// ParseDuplicatePolicy parses "overwrite" or "keep_first". An empty string is
// Overwrite.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(s) {
	case "", "overwrite":
		return Overwrite, nil
	case "keep_first":
		return KeepFirst, nil
	default:
		return Overwrite, fmt.Errorf("%w: unknown duplicate policy %q", ErrInvalidConfig, s)
	}
}

func compareKeys[K Key](o Ordering, a, b K) int {
	if o == SemverOrder {
		if c := CompareVersions(fmt.Sprint(a), fmt.Sprint(b)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}

// CompareVersions compares two version strings using semver, tolerating a
// leading "v". A string that does not parse is lower than one that does; two
// unparseable strings compare equal.
func CompareVersions(a, b string) int {
	av, aerr := parseSemver(a)
	bv, berr := parseSemver(b)
	switch {
	case aerr == nil && berr == nil:
		return av.Compare(bv)
	case aerr == nil:
		return 1
	case berr == nil:
		return -1
	default:
		return 0
	}
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
