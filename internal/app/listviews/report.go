package listviews

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
)

// Entities lists the names reports accept, in menu order.
var Entities = []string{"properties", "tenants", "contracts", "payments", "maintenance", "ratings", "tickets"}

// ErrUnknownEntity is returned for a report name not in Entities.
var ErrUnknownEntity = errors.New("unknown entity")

// Dataset holds loaded records by entity. A nil slice reports as empty.
type Dataset struct {
	Properties  []models.Property
	Tenants     []models.Tenant
	Contracts   []models.Contract
	Payments    []models.Payment
	Maintenance []models.MaintenanceRequest
	Ratings     []models.Rating
	Tickets     []models.SupportTicket
}

// Report is a list view flattened to strings for CSV and terminal output.
// Text cells that a spreadsheet would evaluate are prefixed with a quote.
// Stats are computed over the filtered rows.
type Report struct {
	Entity   string
	Header   []string
	Rows     [][]string
	Total    int
	Matched  int
	Filtered bool
	Stats    pipeline.Stats
}

func flatten[T any](entity string, res pipeline.Result[T], header []string, row func(T) []string) Report {
	rows := make([][]string, 0, len(res.Rows))
	for _, rec := range res.Rows {
		rows = append(rows, row(rec))
	}
	return Report{
		Entity:   entity,
		Header:   header,
		Rows:     rows,
		Total:    res.Total,
		Matched:  res.Matched,
		Filtered: res.FiltersActive,
		Stats:    res.Results,
	}
}

// BuildReport runs entity's view over d with the filters in q.
func BuildReport(d Dataset, entity string, q url.Values, o Options) (Report, error) {
	switch entity {
	case "properties":
		res := PropertyView(PropertyQueryFrom(q), o).Run(d.Properties)
		return flatten(entity, res,
			[]string{"title", "city", "address", "type", "status", "price", "bedrooms", "bathrooms", "area_m2", "owner", "broker"},
			func(p models.Property) []string {
				return []string{cell(p.Title), cell(p.City), cell(p.Address), cell(p.Type), cell(p.Status), money(p.Price),
					strconv.Itoa(p.Bedrooms), strconv.Itoa(p.Bathrooms), num(p.AreaM2), cell(p.OwnerName), cell(p.BrokerName)}
			}), nil

	case "tenants":
		res := TenantView(TenantQueryFrom(q), o).Run(d.Tenants)
		return flatten(entity, res,
			[]string{"name", "email", "phone", "property", "payment_status", "monthly_rent", "lease_start", "lease_end", "last_payment", "rating"},
			func(t models.Tenant) []string {
				rating := ""
				if t.Rating != nil {
					rating = num(*t.Rating)
				}
				return []string{cell(t.Name), cell(t.Email), cell(t.Phone), cell(t.PropertyTitle), cell(t.PaymentStatus), money(t.MonthlyRent),
					day(t.LeaseStart), dayPtr(t.LeaseEnd), dayPtr(t.LastPaymentAt), rating}
			}), nil

	case "contracts":
		res := ContractView(ContractQueryFrom(q), o).Run(d.Contracts)
		return flatten(entity, res,
			[]string{"number", "property", "tenant", "owner", "status", "monthly_rent", "deposit", "start", "end", "signed"},
			func(c models.Contract) []string {
				return []string{cell(c.Number), cell(c.PropertyTitle), cell(c.TenantName), cell(c.OwnerName), cell(c.Status), money(c.MonthlyRent),
					money(c.Deposit), day(c.StartDate), day(c.EndDate), dayPtr(c.SignedAt)}
			}), nil

	case "payments":
		res := PaymentView(PaymentQueryFrom(q), o).Run(d.Payments)
		attention := PaymentAttention(o)
		return flatten(entity, res,
			[]string{"reference", "tenant", "property", "amount", "status", "method", "due", "paid", "needs_attention"},
			func(p models.Payment) []string {
				return []string{cell(p.Reference), cell(p.TenantName), cell(p.PropertyTitle), money(p.Amount), cell(p.Status), cell(p.Method),
					day(p.DueDate), dayPtr(p.PaidAt), strconv.FormatBool(attention(p))}
			}), nil

	case "maintenance":
		res := MaintenanceView(MaintenanceQueryFrom(q), o).Run(d.Maintenance)
		attention := MaintenanceAttention(o)
		return flatten(entity, res,
			[]string{"reference", "title", "property", "category", "priority", "status", "requested_by", "runner", "estimated_cost", "actual_cost", "created", "resolved", "needs_attention"},
			func(m models.MaintenanceRequest) []string {
				actual := ""
				if m.ActualCost != nil {
					actual = money(*m.ActualCost)
				}
				return []string{cell(m.Reference), cell(m.Title), cell(m.PropertyTitle), cell(m.Category), cell(m.Priority), cell(m.Status), cell(m.RequestedBy),
					cell(m.RunnerName), money(m.EstimatedCost), actual, day(m.CreatedAt), dayPtr(m.ResolvedAt), strconv.FormatBool(attention(m))}
			}), nil

	case "ratings":
		res := RatingView(RatingQueryFrom(q), o).Run(d.Ratings)
		return flatten(entity, res,
			[]string{"property", "reviewer", "reviewer_role", "score", "created"},
			func(r models.Rating) []string {
				return []string{cell(r.PropertyTitle), cell(r.ReviewerName), cell(r.ReviewerRole), strconv.Itoa(r.Score), day(r.CreatedAt)}
			}), nil

	case "tickets":
		res := TicketView(TicketQueryFrom(q), o).Run(d.Tickets)
		attention := TicketAttention(o)
		return flatten(entity, res,
			[]string{"reference", "subject", "requester", "requester_role", "category", "priority", "status", "created", "resolved", "needs_attention"},
			func(t models.SupportTicket) []string {
				return []string{cell(t.Reference), cell(t.Subject), cell(t.Requester), cell(t.RequesterRole), cell(t.Category), cell(t.Priority), cell(t.Status),
					day(t.CreatedAt), dayPtr(t.ResolvedAt), strconv.FormatBool(attention(t))}
			}), nil
	}
	return Report{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
}

// cell keeps a spreadsheet from reading free text as a formula.
func cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func num(v float64) string   { return strconv.FormatFloat(v, 'f', -1, 64) }

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func dayPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return day(*t)
}
