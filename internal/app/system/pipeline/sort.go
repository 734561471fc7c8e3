package pipeline

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection maps a "dir" query value to a Direction. Anything other than
// "desc" is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// compareFunc compares two records on one attribute and reports which of
// them carry the attribute.
type compareFunc[T any] func(a, b T) (c int, aok, bok bool)

// SortKey orders records by one attribute. Keys are built from Attr values,
// so a key can only name an attribute the record type actually has.
type SortKey[T any] struct {
	Name string
	Dir  Direction

	// prepare returns a comparator for one Sort call. String keys build a
	// fresh collator here because collators are not safe for concurrent use.
	prepare func() compareFunc[T]
}

// Direction returns a copy of k sorted in dir.
func (k SortKey[T]) Direction(dir Direction) SortKey[T] {
	k.Dir = dir
	return k
}

// Descending returns a copy of k sorted high-to-low.
func (k SortKey[T]) Descending() SortKey[T] { return k.Direction(Desc) }

func orderedKey[T any, V cmp.Ordered](attr Attr[T, V]) SortKey[T] {
	return SortKey[T]{
		Name: attr.Name,
		prepare: func() compareFunc[T] {
			return func(a, b T) (int, bool, bool) {
				av, aok := attr.Get(a)
				bv, bok := attr.Get(b)
				return cmp.Compare(av, bv), aok, bok
			}
		},
	}
}

// ByNumber orders numerically.
func ByNumber[T any, N Number](attr Attr[T, N]) SortKey[T] {
	return orderedKey(attr)
}

// ByString orders strings with the collation rules of locale, ignoring case.
func ByString[T any](attr Attr[T, string], locale language.Tag) SortKey[T] {
	return SortKey[T]{
		Name: attr.Name,
		prepare: func() compareFunc[T] {
			col := collate.New(locale, collate.IgnoreCase)
			return func(a, b T) (int, bool, bool) {
				av, aok := attr.Get(a)
				bv, bok := attr.Get(b)
				return col.CompareString(av, bv), aok, bok
			}
		},
	}
}

// ByTime orders chronologically.
func ByTime[T any](attr Attr[T, time.Time]) SortKey[T] {
	return SortKey[T]{
		Name: attr.Name,
		prepare: func() compareFunc[T] {
			return func(a, b T) (int, bool, bool) {
				av, aok := attr.Get(a)
				bv, bok := attr.Get(b)
				return av.Compare(bv), aok, bok
			}
		},
	}
}

// ByRank orders an enumeration by an explicit rank table, e.g. priority
// severity. Values missing from ranks sort as absent.
func ByRank[T any](attr Attr[T, string], ranks map[string]int) SortKey[T] {
	ranked := Optional(attr.Name, func(rec T) (int, bool) {
		v, ok := attr.Get(rec)
		if !ok {
			return 0, false
		}
		r, known := ranks[v]
		return r, known
	})
	return orderedKey(ranked)
}

// Sort returns a stably sorted copy of records. Later keys break ties of
// earlier ones and remaining ties keep input order. Records missing a key's
// attribute go after the records that have it, whatever the direction.
func Sort[T any](records []T, keys ...SortKey[T]) []T {
	out := make([]T, len(records))
	copy(out, records)
	if len(keys) == 0 || len(out) < 2 {
		return out
	}

	cmps := make([]compareFunc[T], 0, len(keys))
	dirs := make([]Direction, 0, len(keys))
	for _, k := range keys {
		if k.prepare == nil {
			continue
		}
		cmps = append(cmps, k.prepare())
		dirs = append(dirs, k.Dir)
	}

	slices.SortStableFunc(out, func(a, b T) int {
		for i, compare := range cmps {
			c, aok, bok := compare(a, b)
			switch {
			case !aok && !bok:
				continue
			case !aok:
				return 1
			case !bok:
				return -1
			}
			if c == 0 {
				continue
			}
			if dirs[i] == Desc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}
