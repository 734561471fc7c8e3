package pipeline

import "math"

// Stats maps aggregate names to values. Formatting (currency, percent sign,
// locale) is left to the caller.
type Stats map[string]float64

// Get returns the named value, or 0 when it was not computed.
func (s Stats) Get(name string) float64 { return s[name] }

// Int returns the named value rounded to the nearest integer.
func (s Stats) Int(name string) int { return int(math.Round(s[name])) }

// Aggregate is a named reduction over a record collection.
type Aggregate[T any] struct {
	Name   string
	reduce func([]T) float64
}

// Value runs the reduction on records.
func (a Aggregate[T]) Value(records []T) float64 {
	if a.reduce == nil {
		return 0
	}
	return finite(a.reduce(records))
}

// Compute runs every spec over records.
func Compute[T any](records []T, specs ...Aggregate[T]) Stats {
	out := make(Stats, len(specs))
	for _, s := range specs {
		out[s.Name] = s.Value(records)
	}
	return out
}

// Count counts the records matching pred. A nil pred counts every record.
func Count[T any](name string, pred func(T) bool) Aggregate[T] {
	return Aggregate[T]{Name: name, reduce: func(records []T) float64 {
		return float64(countWhere(records, pred))
	}}
}

// Percentage is the share of records matching pred, times 100. An empty
// collection yields 0.
func Percentage[T any](name string, pred func(T) bool) Aggregate[T] {
	return Aggregate[T]{Name: name, reduce: func(records []T) float64 {
		return SafeDiv(float64(countWhere(records, pred)), float64(len(records))) * 100
	}}
}

// Sum adds attr over the records matching every where predicate. Records
// without the attribute contribute nothing.
func Sum[T any, N Number](name string, attr Attr[T, N], where ...func(T) bool) Aggregate[T] {
	return Aggregate[T]{Name: name, reduce: func(records []T) float64 {
		total, _ := sumPresent(records, attr, where)
		return total
	}}
}

// Mean averages attr over the records that carry it and match every where
// predicate. With nothing to average it yields 0.
func Mean[T any, N Number](name string, attr Attr[T, N], where ...func(T) bool) Aggregate[T] {
	return Aggregate[T]{Name: name, reduce: func(records []T) float64 {
		total, n := sumPresent(records, attr, where)
		return SafeDiv(total, float64(n))
	}}
}

// Min is the smallest present value of attr, or 0.
func Min[T any, N Number](name string, attr Attr[T, N]) Aggregate[T] {
	return extreme(name, attr, func(v, cur float64) bool { return v < cur })
}

// Max is the largest present value of attr, or 0.
func Max[T any, N Number](name string, attr Attr[T, N]) Aggregate[T] {
	return extreme(name, attr, func(v, cur float64) bool { return v > cur })
}

func extreme[T any, N Number](name string, attr Attr[T, N], better func(v, cur float64) bool) Aggregate[T] {
	return Aggregate[T]{Name: name, reduce: func(records []T) float64 {
		var cur float64
		found := false
		for _, rec := range records {
			v, ok := attr.Get(rec)
			if !ok {
				continue
			}
			if f := float64(v); !found || better(f, cur) {
				cur = f
				found = true
			}
		}
		return cur
	}}
}

// SafeDiv divides a by b, returning 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return finite(a / b)
}

func countWhere[T any](records []T, pred func(T) bool) int {
	if pred == nil {
		return len(records)
	}
	n := 0
	for _, rec := range records {
		if pred(rec) {
			n++
		}
	}
	return n
}

func sumPresent[T any, N Number](records []T, attr Attr[T, N], where []func(T) bool) (float64, int) {
	keep := And(where...)
	var total float64
	n := 0
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		v, ok := attr.Get(rec)
		if !ok {
			continue
		}
		total += float64(v)
		n++
	}
	return total, n
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
