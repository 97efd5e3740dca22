// Package ident generates and parses hierarchy node identifiers.
//
// A node identifier is a level prefix followed by a 1-based sibling number,
// e.g. "A1", "B3" or "AA2". The letters encode tree depth: roots are level
// "A", their children level "B" and so on. Past "Z" the prefix continues in
// bijective base-26 ("Z" → "AA" → "AB" … "AZ" → "BA" … "ZZ" → "AAA"), so
// every depth has a unique, strictly ordered prefix.
//
// Sibling numbers are only unique within one sibling set. They are assigned
// as max(existing)+1 and never recycled, so a gap left by a removed shape
// stays a gap.
package ident

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidID is returned by [Parse] when the input is not a well-formed
// node identifier (uppercase level letters followed by a positive number).
var ErrInvalidID = errors.New("invalid node identifier")

// RootLevel is the level prefix assigned to root nodes.
const RootLevel = "A"

var idRe = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// ID is a node identifier such as "B2".
type ID string

// Format builds an identifier from a level prefix and a sibling number.
func Format(level string, number int) ID {
	return ID(level + strconv.Itoa(number))
}

// Parse splits an identifier into its level prefix and sibling number.
// Returns ErrInvalidID if the input does not match the level+number shape
// or the number is not positive.
func Parse(id ID) (level string, number int, err error) {
	m := idRe.FindStringSubmatch(string(id))
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return m[1], n, nil
}

// Valid reports whether id parses as a node identifier.
func Valid(id ID) bool {
	_, _, err := Parse(id)
	return err == nil
}

// Level returns the level prefix of id, or "" if id is malformed.
func Level(id ID) string {
	level, _, err := Parse(id)
	if err != nil {
		return ""
	}
	return level
}

// NextLevel returns the level prefix one depth below the given one.
// Single letters increment ("A" → "B"), and "Z" overflows in bijective
// base-26 ("Z" → "AA", "AZ" → "BA", "ZZ" → "AAA"). The empty prefix maps
// to the root level.
func NextLevel(level string) string {
	if level == "" {
		return RootLevel
	}
	letters := []byte(level)
	for i := len(letters) - 1; i >= 0; i-- {
		if letters[i] < 'Z' {
			letters[i]++
			return string(letters)
		}
		letters[i] = 'A'
	}
	// Every position was 'Z': grow by one digit.
	return "A" + string(letters)
}

// Depth returns the numeric depth encoded by a level prefix, interpreting
// the letters as a bijective base-26 number: "A"=1, "Z"=26, "AA"=27.
// Returns 0 for an empty or malformed prefix. Deeper levels always compare
// greater, which is what [github.com/matzehuels/canopy/pkg/tree] relies on
// when deciding parent/child roles while linking nodes.
func Depth(level string) int {
	d := 0
	for i := 0; i < len(level); i++ {
		c := level[i]
		if c < 'A' || c > 'Z' {
			return 0
		}
		d = d*26 + int(c-'A') + 1
	}
	return d
}

// NextSiblingNumber returns the number to assign to the next sibling at the
// given level: one past the highest number already in use, or 1 when no
// sibling at that level exists. Identifiers at other levels (and anything
// malformed) are ignored.
//
// Numbers are never recycled. If "B1", "B3" exist the next sibling is "B4",
// not "B2" - the gap stays.
func NextSiblingNumber(level string, existing []ID) int {
	maxN := 0
	for _, id := range existing {
		s := string(id)
		if !strings.HasPrefix(s, level) {
			continue
		}
		n, err := strconv.Atoi(s[len(level):])
		if err != nil || n < 1 {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return maxN + 1
}

// NextRootNumber returns the smallest positive number not used by any of
// the given root identifiers. Unlike sibling numbering this fills gaps, so
// initializing a new root never collides with existing roots but keeps the
// sequence dense.
func NextRootNumber(existing []ID) int {
	used := make(map[int]bool, len(existing))
	for _, id := range existing {
		level, n, err := Parse(id)
		if err != nil || level != RootLevel {
			continue
		}
		used[n] = true
	}
	for n := 1; ; n++ {
		if !used[n] {
			return n
		}
	}
}
