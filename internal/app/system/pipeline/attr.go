// Package pipeline filters, sorts and summarises in-memory record
// collections for Rent360 list, dashboard and report pages.
//
// A page builds a View out of typed attribute accessors and calls Run on the
// role-scoped records it loaded from the store:
//
//	view := pipeline.View[models.Property]{
//	    Criteria:  []pipeline.Criterion[models.Property]{pipeline.Selected(propStatus, q.Status)},
//	    Sort:      []pipeline.SortKey[models.Property]{pipeline.ByNumber(propPrice).Direction(q.Dir)},
//	    Portfolio: []pipeline.Aggregate[models.Property]{pipeline.Count("total", nil)},
//	}
//	res := view.Run(properties)
//
// Nothing in this package performs I/O, keeps state between calls, or
// mutates the slices it is given.
package pipeline

import "time"

// All is the select-box value meaning "no constraint on this attribute".
const All = "all"

// Number is the set of attribute types that sum, average and range-filter.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Attr names a record attribute and reads it. The boolean reports whether
// the record carries a value; criteria treat an absent value as a mismatch.
type Attr[T, V any] struct {
	Name string
	Get  func(T) (V, bool)
}

// Field builds an Attr for an attribute every record has.
func Field[T, V any](name string, get func(T) V) Attr[T, V] {
	return Attr[T, V]{
		Name: name,
		Get:  func(rec T) (V, bool) { return get(rec), true },
	}
}

// Optional builds an Attr from an accessor that reports presence itself.
func Optional[T, V any](name string, get func(T) (V, bool)) Attr[T, V] {
	return Attr[T, V]{Name: name, Get: get}
}

// Date builds a time attribute from a nullable timestamp. Nil and zero
// times are absent.
func Date[T any](name string, get func(T) *time.Time) Attr[T, time.Time] {
	return Attr[T, time.Time]{
		Name: name,
		Get: func(rec T) (time.Time, bool) {
			t := get(rec)
			if t == nil || t.IsZero() {
				return time.Time{}, false
			}
			return *t, true
		},
	}
}

// Bound returns a pointer to v, for the optional ends of Between.
func Bound[N any](v N) *N { return &v }
