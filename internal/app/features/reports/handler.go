// internal/app/features/reports/handler.go
package reports

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
	"github.com/rent360/rent360/internal/domain/models"
)

// Handler owns the CSV exports and the page that links to them.
type Handler struct {
	listing.Deps
	sources map[string]source
}

// source loads one entity into a Dataset for a caller allowed to export it.
type source struct {
	label string
	roles []string // nil means every signed-in role
	load  func(ctx context.Context, s authz.Scope, d *listviews.Dataset) error
}

func (src source) allows(role string) bool {
	if src.roles == nil {
		return true
	}
	for _, r := range src.roles {
		if r == role {
			return true
		}
	}
	return false
}

// NewHandler constructs a reports Handler.
func NewHandler(d listing.Deps) *Handler {
	var (
		managers  = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker}
		financial = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant}
		field     = []string{models.RoleAdmin, models.RoleOwner, models.RoleBroker, models.RoleTenant, models.RoleRunner}
	)

	properties := propertystore.New(d.DB)
	tenants := tenantstore.New(d.DB)
	contracts := contractstore.New(d.DB)
	payments := paymentstore.New(d.DB)
	maintenance := maintenancestore.New(d.DB)
	ratings := ratingstore.New(d.DB)
	tickets := ticketstore.New(d.DB)

	return &Handler{Deps: d, sources: map[string]source{
		"properties": {"Properties", managers, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Properties, err = properties.List(ctx, s)
			return err
		}},
		"tenants": {"Tenants", managers, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Tenants, err = tenants.List(ctx, s)
			return err
		}},
		"contracts": {"Contracts", financial, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Contracts, err = contracts.List(ctx, s)
			return err
		}},
		"payments": {"Payments", financial, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Payments, err = payments.List(ctx, s)
			return err
		}},
		"maintenance": {"Maintenance", field, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Maintenance, err = maintenance.List(ctx, s)
			return err
		}},
		"ratings": {"Ratings", field, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Ratings, err = ratings.List(ctx, s)
			return err
		}},
		"tickets": {"Support tickets", nil, func(ctx context.Context, s authz.Scope, ds *listviews.Dataset) (err error) {
			ds.Tickets, err = tickets.List(ctx, s)
			return err
		}},
	}}
}
