package spine

// OutcomeCount is one line of the reconciliation overview: an outcome and
// how many spine rows carry it.
type OutcomeCount struct {
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Count   int     `json:"count" yaml:"count"`
}

// Tally counts rows per outcome in fixed order: MATCHED, TICKET_ONLY,
// REGISTRY_ONLY. Outcomes with zero rows are still listed.
func Tally(rows []Row) []OutcomeCount {
	counts := make(map[Outcome]int, 3)
	for _, r := range rows {
		counts[r.Outcome]++
	}
	return []OutcomeCount{
		{Outcome: OutcomeMatched, Count: counts[OutcomeMatched]},
		{Outcome: OutcomeTicketOnly, Count: counts[OutcomeTicketOnly]},
		{Outcome: OutcomeRegistryOnly, Count: counts[OutcomeRegistryOnly]},
	}
}
