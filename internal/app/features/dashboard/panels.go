// internal/app/features/dashboard/panels.go
package dashboard

import (
	"context"

	"github.com/rent360/rent360/internal/app/features/shared/listing"
	"github.com/rent360/rent360/internal/app/listviews"
	contractstore "github.com/rent360/rent360/internal/app/store/contracts"
	maintenancestore "github.com/rent360/rent360/internal/app/store/maintenance"
	paymentstore "github.com/rent360/rent360/internal/app/store/payments"
	propertystore "github.com/rent360/rent360/internal/app/store/properties"
	ratingstore "github.com/rent360/rent360/internal/app/store/ratings"
	tenantstore "github.com/rent360/rent360/internal/app/store/tenants"
	ticketstore "github.com/rent360/rent360/internal/app/store/tickets"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/rent360/rent360/internal/app/system/pipeline"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// panel is one entity's block of stat cards on a dashboard.
type panel struct {
	Entity string         `json:"entity"`
	Title  string         `json:"title"`
	Href   string         `json:"href"`
	Stats  pipeline.Stats `json:"stats"`
	Cards  []listing.Card `json:"-"`
}

type panelSpec struct {
	entity  string
	roles   []string
	compute func(ctx context.Context, s authz.Scope, o listviews.Options) (panel, error)
}

// newSpec builds a panel from the entity's portfolio aggregates, the same
// ones its list page shows before any filter.
func newSpec[T any](entity, title string, roles []string, list listing.Lister[T],
	aggregates func(listviews.Options) []pipeline.Aggregate[T], cards func(pipeline.Stats) []listing.Card) panelSpec {
	return panelSpec{
		entity: entity,
		roles:  roles,
		compute: func(ctx context.Context, s authz.Scope, o listviews.Options) (panel, error) {
			records, err := list(ctx, s)
			if err != nil {
				return panel{}, err
			}
			stats := pipeline.Compute(records, aggregates(o)...)
			return panel{Entity: entity, Title: title, Href: "/" + entity, Stats: stats, Cards: cards(stats)}, nil
		},
	}
}

func visiblePanels(specs []panelSpec, role string) []panelSpec {
	var out []panelSpec
	for _, sp := range specs {
		for _, r := range sp.roles {
			if r == role {
				out = append(out, sp)
				break
			}
		}
	}
	return out
}

func newPanels(db *mongo.Database) []panelSpec {
	var (
		managers  = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker}
		financial = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant}
		field     = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner}
		everyone  = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner, models.RoleSupport}
	)

	return []panelSpec{
		newSpec("properties", "Properties", managers, propertystore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.Property] {
				return listviews.PropertyView(listviews.PropertyQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Properties", Value: format.Count(s.Int(listviews.PropertyTotal))},
					{Label: "Occupancy", Value: format.Percent(s.Get(listviews.PropertyOccupancyRate))},
					{Label: "Portfolio value", Value: format.Currency(s.Get(listviews.PropertyPortfolioValue)), Hint: "monthly asking rent"},
				}
			}),
		newSpec("tenants", "Tenants", managers, tenantstore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.Tenant] {
				return listviews.TenantView(listviews.TenantQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Tenants", Value: format.Count(s.Int(listviews.TenantTotal))},
					{Label: "On time", Value: format.Percent(s.Get(listviews.TenantOnTimeRate))},
					{Label: "Overdue", Value: format.Count(s.Int(listviews.TenantOverdue))},
				}
			}),
		newSpec("contracts", "Contracts", financial, contractstore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.Contract] {
				return listviews.ContractView(listviews.ContractQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Active", Value: format.Count(s.Int(listviews.ContractActive))},
					{Label: "Active rent", Value: format.Currency(s.Get(listviews.ContractActiveRent))},
					{Label: "Completion rate", Value: format.Percent(s.Get(listviews.ContractCompletionRate))},
				}
			}),
		newSpec("payments", "Payments", financial, paymentstore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.Payment] {
				return listviews.PaymentView(listviews.PaymentQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Collected", Value: format.Currency(s.Get(listviews.PaymentCollected))},
					{Label: "Pending", Value: format.Currency(s.Get(listviews.PaymentPendingAmount))},
					{Label: "Needs attention", Value: format.Count(s.Int(listviews.PaymentNeedsAttention))},
				}
			}),
		newSpec("maintenance", "Maintenance", field, maintenancestore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.MaintenanceRequest] {
				return listviews.MaintenanceView(listviews.MaintenanceQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Open", Value: format.Count(s.Int(listviews.MaintenanceOpen))},
					{Label: "Urgent", Value: format.Count(s.Int(listviews.MaintenanceUrgent))},
					{Label: "Needs attention", Value: format.Count(s.Int(listviews.MaintenanceNeedsAttention))},
				}
			}),
		newSpec("ratings", "Ratings", field, ratingstore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.Rating] {
				return listviews.RatingView(listviews.RatingQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Reviews", Value: format.Count(s.Int(listviews.RatingCount))},
					{Label: "Average", Value: format.Decimal(s.Get(listviews.RatingAverage))},
					{Label: "Positive", Value: format.Percent(s.Get(listviews.RatingPositiveRate))},
				}
			}),
		newSpec("tickets", "Support", everyone, ticketstore.New(db).List,
			func(o listviews.Options) []pipeline.Aggregate[models.SupportTicket] {
				return listviews.TicketView(listviews.TicketQuery{}, o).Portfolio
			},
			func(s pipeline.Stats) []listing.Card {
				return []listing.Card{
					{Label: "Open", Value: format.Count(s.Int(listviews.TicketOpen))},
					{Label: "Resolved", Value: format.Percent(s.Get(listviews.TicketResolvedRate))},
					{Label: "Needs attention", Value: format.Count(s.Int(listviews.TicketNeedsAttention))},
				}
			}),
	}
}
