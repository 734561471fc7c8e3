package pipeline

import (
	"cmp"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Criterion is one user-selected constraint. An inactive criterion (empty
// query, "all" selection, unbounded range) is skipped entirely.
type Criterion[T any] interface {
	Active() bool
	Match(rec T) bool
}

// Filter returns the records that satisfy every active criterion, in input
// order. The result is always a new slice.
func Filter[T any](records []T, criteria ...Criterion[T]) []T {
	active := activeOnly(criteria)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, active) {
			out = append(out, rec)
		}
	}
	return out
}

// AnyActive reports whether at least one criterion constrains the result.
func AnyActive[T any](criteria ...Criterion[T]) bool {
	return len(activeOnly(criteria)) > 0
}

func activeOnly[T any](criteria []Criterion[T]) []Criterion[T] {
	active := make([]Criterion[T], 0, len(criteria))
	for _, c := range criteria {
		if c != nil && c.Active() {
			active = append(active, c)
		}
	}
	return active
}

func matchesAll[T any](rec T, criteria []Criterion[T]) bool {
	for _, c := range criteria {
		if !c.Match(rec) {
			return false
		}
	}
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Text search                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

type textCriterion[T any] struct {
	needle string
	fields []Attr[T, string]
}

// Text matches records where query appears, case-insensitively, anywhere in
// at least one of fields. The query is used as given; callers trim it if
// they want trimming.
func Text[T any](query string, fields ...Attr[T, string]) Criterion[T] {
	return textCriterion[T]{needle: fold(query), fields: fields}
}

func (c textCriterion[T]) Active() bool { return c.needle != "" && len(c.fields) > 0 }

func (c textCriterion[T]) Match(rec T) bool {
	for _, f := range c.fields {
		v, ok := f.Get(rec)
		if ok && strings.Contains(fold(v), c.needle) {
			return true
		}
	}
	return false
}

// fold applies Unicode case folding. A Caser is stateful, so each call gets
// its own.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Set membership                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type setCriterion[T any, V comparable] struct {
	attr    Attr[T, V]
	allowed map[V]struct{}
}

// OneOf matches records whose attribute value is in allowed. No allowed
// values means no constraint.
func OneOf[T any, V comparable](attr Attr[T, V], allowed ...V) Criterion[T] {
	set := make(map[V]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return setCriterion[T, V]{attr: attr, allowed: set}
}

// Selected is OneOf for select-box values: blank entries are ignored, a
// selection containing All disables the constraint, and selections match
// values case-insensitively, so ?status=Late finds "late".
func Selected[T any](attr Attr[T, string], selections ...string) Criterion[T] {
	keep := make([]string, 0, len(selections))
	for _, s := range selections {
		if strings.EqualFold(s, All) {
			return OneOf(attr)
		}
		if s != "" {
			keep = append(keep, fold(s))
		}
	}
	folded := Optional(attr.Name, func(rec T) (string, bool) {
		v, ok := attr.Get(rec)
		return fold(v), ok
	})
	return OneOf(folded, keep...)
}

func (c setCriterion[T, V]) Active() bool { return len(c.allowed) > 0 }

func (c setCriterion[T, V]) Match(rec T) bool {
	v, ok := c.attr.Get(rec)
	if !ok {
		return false
	}
	_, hit := c.allowed[v]
	return hit
}

/*─────────────────────────────────────────────────────────────────────────────*
| Ranges                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type rangeCriterion[T any, N cmp.Ordered] struct {
	attr   Attr[T, N]
	lo, hi *N
}

// Between matches records whose attribute lies in [lo, hi]. Either bound may
// be nil; with both nil the criterion is inactive.
func Between[T any, N cmp.Ordered](attr Attr[T, N], lo, hi *N) Criterion[T] {
	return rangeCriterion[T, N]{attr: attr, lo: lo, hi: hi}
}

func (c rangeCriterion[T, N]) Active() bool { return c.lo != nil || c.hi != nil }

func (c rangeCriterion[T, N]) Match(rec T) bool {
	v, ok := c.attr.Get(rec)
	if !ok {
		return false
	}
	if c.lo != nil && v < *c.lo {
		return false
	}
	if c.hi != nil && v > *c.hi {
		return false
	}
	return true
}

type dateCriterion[T any] struct {
	attr     Attr[T, time.Time]
	from, to time.Time
}

// DateBetween matches records whose date lies in [from, to]. A zero bound is
// open.
func DateBetween[T any](attr Attr[T, time.Time], from, to time.Time) Criterion[T] {
	return dateCriterion[T]{attr: attr, from: from, to: to}
}

func (c dateCriterion[T]) Active() bool { return !c.from.IsZero() || !c.to.IsZero() }

func (c dateCriterion[T]) Match(rec T) bool {
	v, ok := c.attr.Get(rec)
	if !ok {
		return false
	}
	if !c.from.IsZero() && v.Before(c.from) {
		return false
	}
	if !c.to.IsZero() && v.After(c.to) {
		return false
	}
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Predicates                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type predCriterion[T any] struct {
	pred func(T) bool
}

// Where wraps an arbitrary predicate. A nil predicate is inactive.
func Where[T any](pred func(T) bool) Criterion[T] {
	return predCriterion[T]{pred: pred}
}

func (c predCriterion[T]) Active() bool     { return c.pred != nil }
func (c predCriterion[T]) Match(rec T) bool { return c.pred(rec) }

// When returns c if on is true and an inactive criterion otherwise. It keeps
// toggle-button filters readable at the call site.
func When[T any](on bool, c Criterion[T]) Criterion[T] {
	if !on {
		return predCriterion[T]{}
	}
	return c
}

// StaleSince reports records whose date attribute is more than threshold
// before now. Records without the date are never stale, and a non-positive
// threshold turns the check off.
func StaleSince[T any](attr Attr[T, time.Time], now time.Time, threshold time.Duration) func(T) bool {
	return func(rec T) bool {
		if threshold <= 0 {
			return false
		}
		v, ok := attr.Get(rec)
		return ok && now.Sub(v) > threshold
	}
}

// And combines predicates; nil entries are ignored.
func And[T any](preds ...func(T) bool) func(T) bool {
	return func(rec T) bool {
		for _, p := range preds {
			if p != nil && !p(rec) {
				return false
			}
		}
		return true
	}
}
