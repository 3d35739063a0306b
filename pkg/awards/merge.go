package awards

// Merge combines two chunk summaries into a fresh one, leaving both
// inputs untouched. Every unique-value set is combined by set union,
// and per-band grid sets are unioned before anyone counts them; counts
// are never added across chunks. Total QSO counts do add, since chunks
// partition the collection.
//
// Merge is associative and commutative: merging summaries in any order
// or grouping yields an identical result, which is what makes the
// parallel aggregator's fan-in order irrelevant.
func Merge(a, b *Summary) *Summary {
	if a == nil {
		a = NewSummary()
	}
	if b == nil {
		b = NewSummary()
	}

	out := NewSummary()
	out.TotalQSOs = a.TotalQSOs + b.TotalQSOs

	out.Countries.Union(a.Countries)
	out.Countries.Union(b.Countries)
	out.Grids.Union(a.Grids)
	out.Grids.Union(b.Grids)
	out.Calls.Union(a.Calls)
	out.Calls.Union(b.Calls)
	out.Bands.Union(a.Bands)
	out.Bands.Union(b.Bands)
	out.Modes.Union(a.Modes)
	out.Modes.Union(b.Modes)

	for _, src := range []*Summary{a, b} {
		for band, grids := range src.GridsPerBand {
			set, ok := out.GridsPerBand[band]
			if !ok {
				set = make(Set, len(grids))
				out.GridsPerBand[band] = set
			}
			set.Union(grids)
		}
	}

	return out
}

// MergeAll folds any number of chunk summaries into one.
func MergeAll(summaries []*Summary) *Summary {
	out := NewSummary()
	for _, s := range summaries {
		out = Merge(out, s)
	}
	return out
}
