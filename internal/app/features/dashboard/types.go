// internal/app/features/dashboard/types.go
package dashboard

import (
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	metricsstore "github.com/rent360/rent360/internal/app/store/metrics"
	"github.com/rent360/rent360/internal/app/system/format"
	"github.com/rent360/rent360/internal/app/system/viewdata"
	"github.com/rent360/rent360/internal/domain/models"
)

type pageData struct {
	viewdata.BaseVM
	Platform []listing.Card
	Panels   []panel
}

func dashboardTitle(role string) string {
	switch role {
	case models.RoleAdmin:
		return "Admin dashboard"
	case models.RoleOwner:
		return "Owner dashboard"
	case models.RoleBroker:
		return "Broker dashboard"
	case models.RoleTenant:
		return "My rental"
	case models.RoleRunner:
		return "My jobs"
	case models.RoleSupport:
		return "Support desk"
	}
	return "Dashboard"
}

func platformCards(c *metricsstore.Counts) []listing.Card {
	if c == nil {
		return nil
	}
	n := func(v int64) string { return format.Count(int(v)) }
	return []listing.Card{
		{Label: "Owners", Value: n(c.Owners)},
		{Label: "Brokers", Value: n(c.Brokers)},
		{Label: "Tenants", Value: n(c.Tenants)},
		{Label: "Runners", Value: n(c.Runners)},
		{Label: "Properties", Value: n(c.Properties)},
		{Label: "Contracts", Value: n(c.Contracts)},
		{Label: "Open tickets", Value: n(c.OpenTickets)},
	}
}
