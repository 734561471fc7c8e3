// Package listviews binds the generic pipeline to each Rent360 record type.
//
// Every list page, its JSON twin, the CSV reports and the offline CLI build
// their views here, so a filter or stat card means the same thing on every
// surface. A binding is a Query (the filter panel's state) plus a function
// turning it into a pipeline.View.
package listviews

import (
	"slices"
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"golang.org/x/text/language"
)

// Options carries the per-request context a view needs beyond the Query.
type Options struct {
	Locale language.Tag // collation for string sort keys
	Now    time.Time    // reference instant for attention flags

	// Attention thresholds. Zero or negative disables the flag.
	MaintenanceAttention time.Duration
	TicketAttention      time.Duration
	PaymentAttention     time.Duration
}

// DefaultOptions returns Spanish collation, the current time and the
// default attention thresholds.
func DefaultOptions() Options {
	return Options{
		Locale:               language.Spanish,
		Now:                  time.Now(),
		MaintenanceAttention: 72 * time.Hour,
		TicketAttention:      48 * time.Hour,
		PaymentAttention:     30 * 24 * time.Hour,
	}
}

// Common holds the controls every list page has.
type Common struct {
	Search string // free text; used as typed, never trimmed
	Sort   string // sort field name; unknown names fall back to the default
	Dir    pipeline.Direction
	Page   int
}

// sortDefault is an entity's order when the query names no known field.
type sortDefault struct {
	name string
	dir  pipeline.Direction
}

// resolve returns the field and direction c actually sorts by. A blank or
// unknown field selects the default field in its default direction, so the
// requested direction only applies to a field the caller really chose.
func (d sortDefault) resolve(c Common, fields []string) (string, pipeline.Direction) {
	if c.Sort != "" && slices.Contains(fields, c.Sort) {
		return c.Sort, c.Dir
	}
	return d.name, d.dir
}

// sortBy looks up a resolved field in keys and applies dir.
func sortBy[T any](keys map[string]pipeline.SortKey[T], name string, dir pipeline.Direction) []pipeline.SortKey[T] {
	return []pipeline.SortKey[T]{keys[name].Direction(dir)}
}

// sortFields lists the keys of a sort table in a stable order for pickers.
func sortFields[T any](order []string, keys map[string]pipeline.SortKey[T]) []string {
	out := make([]string, 0, len(order))
	for _, name := range order {
		if _, ok := keys[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func days(d time.Duration) float64  { return d.Hours() / 24 }
func hours(d time.Duration) float64 { return d.Hours() }
