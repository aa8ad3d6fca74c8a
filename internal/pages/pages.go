// Package pages estimates page counts from the textual range spec
// customers type into the order form ("1,3,5-7").
package pages

import (
	"strconv"
	"strings"
)

// Count returns the number of distinct pages referenced by spec, a
// comma-separated list of single pages and inclusive start-end ranges.
// The result feeds a price estimate, not the ledger, so the parser is
// lenient: malformed tokens and reversed ranges are skipped rather
// than reported.
func Count(spec string) int {
	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if start, end, ok := strings.Cut(token, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				continue
			}
			hi, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil || hi < lo {
				continue
			}
			for p := lo; p <= hi; p++ {
				seen[p] = struct{}{}
			}
			continue
		}
		p, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		seen[p] = struct{}{}
	}
	return len(seen)
}
