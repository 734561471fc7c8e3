package listviews

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rent360/rent360/internal/app/system/normalize"
	"github.com/rent360/rent360/internal/app/system/pipeline"
)

// DateLayout is the layout of date inputs in filter panels.
const DateLayout = "2006-01-02"

// Query string parsing. Malformed values are ignored rather than rejected:
// a bad bound leaves that side of the range open.

func commonFrom(v url.Values) Common {
	page, _ := strconv.Atoi(v.Get("page"))
	if page < 1 {
		page = 1
	}
	return Common{
		Search: v.Get("q"),
		Sort:   strings.TrimSpace(v.Get("sort")),
		Dir:    pipeline.ParseDirection(v.Get("dir")),
		Page:   page,
	}
}

func floatParam(v url.Values, key string) *float64 {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func intParam(v url.Values, key string) *int {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// dateParam parses a day. end moves the instant to the last nanosecond of
// that day so a "to" bound includes it.
func dateParam(v url.Values, key string, end bool) time.Time {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return time.Time{}
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	if end {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return d
}

func listParam(v url.Values, key string) []string {
	return normalize.Selections(v[key])
}

func intListParam(v url.Values, key string) []int {
	var out []int
	for _, s := range listParam(v, key) {
		if n, err := strconv.Atoi(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func flagParam(v url.Values, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(v.Get(key)))
	return b
}

// PropertyQueryFrom reads a PropertyQuery from query parameters.
func PropertyQueryFrom(v url.Values) PropertyQuery {
	return PropertyQuery{
		Common:      commonFrom(v),
		Status:      listParam(v, "status"),
		Type:        listParam(v, "type"),
		City:        listParam(v, "city"),
		MinPrice:    floatParam(v, "min_price"),
		MaxPrice:    floatParam(v, "max_price"),
		MinBedrooms: intParam(v, "min_bedrooms"),
		MaxBedrooms: intParam(v, "max_bedrooms"),
	}
}

// TenantQueryFrom reads a TenantQuery from query parameters.
func TenantQueryFrom(v url.Values) TenantQuery {
	return TenantQuery{
		Common:        commonFrom(v),
		PaymentStatus: listParam(v, "payment_status"),
		MinRent:       floatParam(v, "min_rent"),
		MaxRent:       floatParam(v, "max_rent"),
	}
}

// ContractQueryFrom reads a ContractQuery from query parameters.
func ContractQueryFrom(v url.Values) ContractQuery {
	return ContractQuery{
		Common:    commonFrom(v),
		Status:    listParam(v, "status"),
		MinRent:   floatParam(v, "min_rent"),
		MaxRent:   floatParam(v, "max_rent"),
		StartFrom: dateParam(v, "start_from", false),
		StartTo:   dateParam(v, "start_to", true),
	}
}

// PaymentQueryFrom reads a PaymentQuery from query parameters.
func PaymentQueryFrom(v url.Values) PaymentQuery {
	return PaymentQuery{
		Common:         commonFrom(v),
		Status:         listParam(v, "status"),
		Method:         listParam(v, "method"),
		MinAmount:      floatParam(v, "min_amount"),
		MaxAmount:      floatParam(v, "max_amount"),
		DueFrom:        dateParam(v, "due_from", false),
		DueTo:          dateParam(v, "due_to", true),
		NeedsAttention: flagParam(v, "attention"),
	}
}

// MaintenanceQueryFrom reads a MaintenanceQuery from query parameters.
func MaintenanceQueryFrom(v url.Values) MaintenanceQuery {
	return MaintenanceQuery{
		Common:         commonFrom(v),
		Status:         listParam(v, "status"),
		Priority:       listParam(v, "priority"),
		Category:       listParam(v, "category"),
		MinCost:        floatParam(v, "min_cost"),
		MaxCost:        floatParam(v, "max_cost"),
		CreatedFrom:    dateParam(v, "from", false),
		CreatedTo:      dateParam(v, "to", true),
		NeedsAttention: flagParam(v, "attention"),
	}
}

// RatingQueryFrom reads a RatingQuery from query parameters.
func RatingQueryFrom(v url.Values) RatingQuery {
	return RatingQuery{
		Common:       commonFrom(v),
		Score:        intListParam(v, "score"),
		ReviewerRole: listParam(v, "reviewer_role"),
		MinScore:     intParam(v, "min_score"),
		MaxScore:     intParam(v, "max_score"),
	}
}

// TicketQueryFrom reads a TicketQuery from query parameters.
func TicketQueryFrom(v url.Values) TicketQuery {
	return TicketQuery{
		Common:         commonFrom(v),
		Status:         listParam(v, "status"),
		Priority:       listParam(v, "priority"),
		Category:       listParam(v, "category"),
		CreatedFrom:    dateParam(v, "from", false),
		CreatedTo:      dateParam(v, "to", true),
		NeedsAttention: flagParam(v, "attention"),
	}
}
