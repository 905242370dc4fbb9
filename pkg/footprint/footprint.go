// Package footprint aggregates technical-record volume by product family
// and attaches it to spine rows as a risk signal.
//
// The technical estate names things in its own vocabulary, so the join to
// the spine is best-effort: a family either lines up with a join key or it
// doesn't. Volume for a key is credited exactly once, to the first row
// carrying that key, which keeps the total attached volume equal to the
// total computed volume for keys present in the spine.
package footprint

import (
	"github.com/auditgrid/shadowmap/pkg/normalize"
	"github.com/auditgrid/shadowmap/pkg/records"
	"github.com/auditgrid/shadowmap/pkg/spine"
)

// Aggregate maps a product family to its summed record volume.
type Aggregate map[string]int64

// Compute groups technical records by normalized family and sums their
// volume. Records whose identifier normalizes to the empty family are
// excluded; they have no name to join on.
func Compute(recs []records.TechnicalRecord, p normalize.Policy) Aggregate {
	agg := make(Aggregate)
	for _, rec := range recs {
		family := normalize.Family(rec.Identifier, p)
		if family == "" {
			continue
		}
		agg[family] += rec.Volume
	}
	return agg
}

// Total returns the volume summed across all families.
func (a Aggregate) Total() int64 {
	var total int64
	for _, v := range a {
		total += v
	}
	return total
}

// Attach writes aggregate volume onto spine rows in place. Each key is
// credited once: the first row carrying key k receives agg[k], later rows
// with the same key receive zero. Rows with empty or unknown keys receive
// zero. Attach runs after classification and never touches Outcome.
func Attach(rows []spine.Row, agg Aggregate) {
	credited := make(map[string]bool, len(agg))
	for i := range rows {
		key := rows[i].Key
		if key == "" || credited[key] {
			rows[i].AssociatedVolume = 0
			continue
		}
		rows[i].AssociatedVolume = agg[key]
		credited[key] = true
	}
}
