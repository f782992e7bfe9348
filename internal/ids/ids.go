// Package ids computes the human-readable sequential identifiers used
// across the schema: a fixed lowercase prefix plus a zero-padded number,
// e.g. b0001, hh0001, p0001.
//
// The next number is derived by scanning every existing identifier for the
// owning table, so the table itself stays the source of truth. Callers must
// run the scan and the insert it numbers inside one transaction holding a
// write lock on the table; a rollback may leave a gap but can never leak a
// duplicate.
package ids

import "fmt"

// Width is the number of digits every identifier carries.
const Width = 4

// NextNumber returns max+1 over the numeric part of the existing
// identifiers, or 1 when none match the prefix. Malformed rows are skipped.
func NextNumber(prefix string, existing []string) int {
	max := 0
	for _, id := range existing {
		n, ok := parse(prefix, id)
		if !ok {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// Format renders prefix + zero-padded n, e.g. Format("hh", 12) == "hh0012".
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, Width, n)
}

func parse(prefix, id string) (int, bool) {
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return 0, false
	}
	n := 0
	for _, c := range id[len(prefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
