// Package hits selects significant tblout hits and turns them into range
// queries for the sequence store.
package hits

import (
	"fmt"

	"nhmmerx/internal/tblout"
)

// DefaultThreshold is the e-value cut-off used when none is configured.
const DefaultThreshold = 1e-5

// Keep reports whether h passes the e-value threshold. A hit exactly at the
// threshold is kept.
func Keep(h tblout.Hit, threshold float64) bool {
	return h.EValue <= threshold
}

// RangeQuery names a subsequence of one target: Range is "from..to".
type RangeQuery struct {
	Target string
	Range  string
}

func (q RangeQuery) String() string { return q.Target + ":" + q.Range }

// NewRangeQuery formats the alignment coordinates of h. Coordinates are not
// validated or reordered, so minus-strand hits stay "hi..lo".
func NewRangeQuery(h tblout.Hit) RangeQuery {
	return RangeQuery{
		Target: h.TargetName,
		Range:  fmt.Sprintf("%d..%d", h.AliFrom, h.AliTo),
	}
}
