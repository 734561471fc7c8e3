package pipeline

// View is the full filter → sort → aggregate recipe for one page.
//
// Portfolio aggregates run over the collection as loaded; Results aggregates
// run over the filtered subset. The two diverge as soon as a filter is
// active, so pages pick explicitly which stat cards read from which.
type View[T any] struct {
	Criteria  []Criterion[T]
	Sort      []SortKey[T]
	Portfolio []Aggregate[T]
	Results   []Aggregate[T]
}

// Result is what a page renders.
type Result[T any] struct {
	Rows          []T
	Total         int // records before filtering
	Matched       int // records after filtering
	FiltersActive bool
	Portfolio     Stats
	Results       Stats
}

// Empty reports whether filtering left nothing to show.
func (r Result[T]) Empty() bool { return r.Matched == 0 }

// Run applies the view to records.
func (v View[T]) Run(records []T) Result[T] {
	filtered := Filter(records, v.Criteria...)
	return Result[T]{
		Rows:          Sort(filtered, v.Sort...),
		Total:         len(records),
		Matched:       len(filtered),
		FiltersActive: AnyActive(v.Criteria...),
		Portfolio:     Compute(records, v.Portfolio...),
		Results:       Compute(filtered, v.Results...),
	}
}
