// Package seed loads the embedded demo portfolio.
//
// The YAML names records by key and dates by day offsets, so the same file
// yields a current-looking portfolio whenever it is loaded. Load resolves
// every reference up front; Apply writes the result into empty collections.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rent360/rent360/internal/app/listviews"
	maintenancestore "github.com/rent360/rent360/internal/app/store/maintenance"
	ticketstore "github.com/rent360/rent360/internal/app/store/tickets"
	"github.com/rent360/rent360/internal/app/system/normalize"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// ErrUnknownRef is wrapped by Parse when a record names a key that was not
// declared.
var ErrUnknownRef = errors.New("unknown reference")

// Data is a fully resolved portfolio. Users carry no password hash; Apply
// sets it from Password.
type Data struct {
	Password    string
	Users       []models.User
	Properties  []models.Property
	Tenants     []models.Tenant
	Contracts   []models.Contract
	Payments    []models.Payment
	Maintenance []models.MaintenanceRequest
	Ratings     []models.Rating
	Tickets     []models.SupportTicket
}

// Dataset returns the records in the shape the list views consume.
func (d *Data) Dataset() listviews.Dataset {
	return listviews.Dataset{
		Properties:  d.Properties,
		Tenants:     d.Tenants,
		Contracts:   d.Contracts,
		Payments:    d.Payments,
		Maintenance: d.Maintenance,
		Ratings:     d.Ratings,
		Tickets:     d.Tickets,
	}
}

// Load parses the embedded demo file relative to now.
func Load(now time.Time) (*Data, error) {
	return Parse(demoYAML, now)
}

/*─────────────────────────────────────────────────────────────────────────────*
| File shape                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type file struct {
	Password    string           `yaml:"password"`
	Users       []userDoc        `yaml:"users"`
	Properties  []propertyDoc    `yaml:"properties"`
	Tenants     []tenantDoc      `yaml:"tenants"`
	Contracts   []contractDoc    `yaml:"contracts"`
	Payments    []paymentDoc     `yaml:"payments"`
	Maintenance []maintenanceDoc `yaml:"maintenance"`
	Ratings     []ratingDoc      `yaml:"ratings"`
	Tickets     []ticketDoc      `yaml:"tickets"`
}

type userDoc struct {
	Key    string `yaml:"key"`
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Phone  string `yaml:"phone"`
	Role   string `yaml:"role"`
	Status string `yaml:"status"`
	Google bool   `yaml:"google"` // no password; Google sign-in only
}

type propertyDoc struct {
	Key         string  `yaml:"key"`
	Title       string  `yaml:"title"`
	Address     string  `yaml:"address"`
	City        string  `yaml:"city"`
	Type        string  `yaml:"type"`
	Status      string  `yaml:"status"`
	Price       float64 `yaml:"price"`
	Bedrooms    int     `yaml:"bedrooms"`
	Bathrooms   int     `yaml:"bathrooms"`
	AreaM2      float64 `yaml:"area_m2"`
	Owner       string  `yaml:"owner"`
	Broker      string  `yaml:"broker"`
	CreatedDays int     `yaml:"created_days"`
}

type tenantDoc struct {
	Key             string   `yaml:"key"`
	User            string   `yaml:"user"`
	Name            string   `yaml:"name"`
	Email           string   `yaml:"email"`
	Phone           string   `yaml:"phone"`
	Property        string   `yaml:"property"`
	PaymentStatus   string   `yaml:"payment_status"`
	MonthlyRent     float64  `yaml:"monthly_rent"`
	LeaseStartDays  int      `yaml:"lease_start_days"`
	LeaseEndDays    *int     `yaml:"lease_end_days"`
	LastPaymentDays *int     `yaml:"last_payment_days"`
	Rating          *float64 `yaml:"rating"`
}

type contractDoc struct {
	Key         string  `yaml:"key"`
	Number      string  `yaml:"number"`
	Property    string  `yaml:"property"`
	Tenant      string  `yaml:"tenant"`
	Status      string  `yaml:"status"`
	MonthlyRent float64 `yaml:"monthly_rent"`
	Deposit     float64 `yaml:"deposit"`
	StartDays   int     `yaml:"start_days"`
	EndDays     int     `yaml:"end_days"`
	SignedDays  *int    `yaml:"signed_days"`
}

type paymentDoc struct {
	Reference string  `yaml:"reference"`
	Contract  string  `yaml:"contract"`
	Amount    float64 `yaml:"amount"`
	Status    string  `yaml:"status"`
	Method    string  `yaml:"method"`
	DueDays   int     `yaml:"due_days"`
	PaidDays  *int    `yaml:"paid_days"`
}

type maintenanceDoc struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Property      string   `yaml:"property"`
	RequestedBy   string   `yaml:"requested_by"`
	Runner        string   `yaml:"runner"`
	Category      string   `yaml:"category"`
	Priority      string   `yaml:"priority"`
	Status        string   `yaml:"status"`
	EstimatedCost float64  `yaml:"estimated_cost"`
	ActualCost    *float64 `yaml:"actual_cost"`
	CreatedDays   int      `yaml:"created_days"`
	ResolvedDays  *int     `yaml:"resolved_days"`
}

type ratingDoc struct {
	Property    string `yaml:"property"`
	Reviewer    string `yaml:"reviewer"`
	Subject     string `yaml:"subject"`
	Score       int    `yaml:"score"`
	Comment     string `yaml:"comment"`
	CreatedDays int    `yaml:"created_days"`
}

type ticketDoc struct {
	Subject      string `yaml:"subject"`
	Body         string `yaml:"body"`
	Requester    string `yaml:"requester"`
	Assignee     string `yaml:"assignee"`
	Category     string `yaml:"category"`
	Priority     string `yaml:"priority"`
	Status       string `yaml:"status"`
	CreatedDays  int    `yaml:"created_days"`
	ResolvedDays *int   `yaml:"resolved_days"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| Resolution                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// Parse decodes raw and resolves every key. Unknown YAML fields are an
// error, as is a duplicate or unknown key.
func Parse(raw []byte, now time.Time) (*Data, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode demo data: %w", err)
	}

	r := &resolver{
		today:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		users:      make(map[string]models.User),
		properties: make(map[string]models.Property),
		contracts:  make(map[string]models.Contract),
	}
	d := &Data{Password: f.Password}

	steps := []func(*file, *Data) error{
		r.resolveUsers,
		r.resolveProperties,
		r.resolveTenants,
		r.resolveContracts,
		r.resolvePayments,
		r.resolveMaintenance,
		r.resolveRatings,
		r.resolveTickets,
	}
	for _, step := range steps {
		if err := step(&f, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type resolver struct {
	today      time.Time
	users      map[string]models.User
	properties map[string]models.Property
	contracts  map[string]models.Contract
}

func (r *resolver) day(offset int) time.Time { return r.today.AddDate(0, 0, offset) }

func (r *resolver) dayPtr(offset *int) *time.Time {
	if offset == nil {
		return nil
	}
	t := r.day(*offset)
	return &t
}

func (r *resolver) user(section string, i int, key string) (models.User, error) {
	u, ok := r.users[key]
	if !ok {
		return models.User{}, fmt.Errorf("%s[%d]: user %q: %w", section, i, key, ErrUnknownRef)
	}
	return u, nil
}

// optionalUser resolves key when set.
func (r *resolver) optionalUser(section string, i int, key string) (*models.User, error) {
	if key == "" {
		return nil, nil
	}
	u, err := r.user(section, i, key)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *resolver) property(section string, i int, key string) (models.Property, error) {
	p, ok := r.properties[key]
	if !ok {
		return models.Property{}, fmt.Errorf("%s[%d]: property %q: %w", section, i, key, ErrUnknownRef)
	}
	return p, nil
}

func (r *resolver) resolveUsers(f *file, d *Data) error {
	for i, doc := range f.Users {
		if doc.Key == "" {
			return fmt.Errorf("users[%d]: key is required", i)
		}
		if _, dup := r.users[doc.Key]; dup {
			return fmt.Errorf("users[%d]: duplicate key %q", i, doc.Key)
		}
		role := normalize.Role(doc.Role)
		if !models.IsValidRole(role) {
			return fmt.Errorf("users[%d]: unknown role %q", i, doc.Role)
		}
		status := normalize.Status(doc.Status)
		if status == "" {
			status = models.UserActive
		}
		method := models.AuthPassword
		if doc.Google {
			method = models.AuthGoogle
		}

		name := normalize.Name(doc.Name)
		email := normalize.Email(doc.Email)
		created := r.day(-400)
		u := models.User{
			ID:         primitive.NewObjectID(),
			FullName:   name,
			FullNameCI: text.Fold(name),
			Email:      email,
			EmailCI:    text.Fold(email),
			Phone:      doc.Phone,
			Role:       role,
			Status:     status,
			AuthMethod: method,
			CreatedAt:  created,
			UpdatedAt:  created,
		}
		r.users[doc.Key] = u
		d.Users = append(d.Users, u)
	}
	return nil
}

func (r *resolver) resolveProperties(f *file, d *Data) error {
	for i, doc := range f.Properties {
		if doc.Key == "" {
			return fmt.Errorf("properties[%d]: key is required", i)
		}
		if _, dup := r.properties[doc.Key]; dup {
			return fmt.Errorf("properties[%d]: duplicate key %q", i, doc.Key)
		}
		owner, err := r.user("properties", i, doc.Owner)
		if err != nil {
			return err
		}
		broker, err := r.optionalUser("properties", i, doc.Broker)
		if err != nil {
			return err
		}

		created := r.day(doc.CreatedDays)
		p := models.Property{
			ID:        primitive.NewObjectID(),
			Title:     doc.Title,
			TitleCI:   text.Fold(doc.Title),
			Address:   doc.Address,
			City:      doc.City,
			Type:      doc.Type,
			Status:    doc.Status,
			Price:     doc.Price,
			Bedrooms:  doc.Bedrooms,
			Bathrooms: doc.Bathrooms,
			AreaM2:    doc.AreaM2,
			OwnerID:   owner.ID,
			OwnerName: owner.FullName,
			CreatedAt: created,
			UpdatedAt: created,
		}
		if broker != nil {
			p.BrokerID = &broker.ID
			p.BrokerName = broker.FullName
		}
		r.properties[doc.Key] = p
		d.Properties = append(d.Properties, p)
	}
	return nil
}

// resolveTenants builds the owner-side renter records. A linked user supplies the
// contact details unless the record overrides them.
func (r *resolver) resolveTenants(f *file, d *Data) error {
	seen := make(map[string]bool)
	for i, doc := range f.Tenants {
		if doc.Key != "" {
			if seen[doc.Key] {
				return fmt.Errorf("tenants[%d]: duplicate key %q", i, doc.Key)
			}
			seen[doc.Key] = true
		}
		p, err := r.property("tenants", i, doc.Property)
		if err != nil {
			return err
		}
		linked, err := r.optionalUser("tenants", i, doc.User)
		if err != nil {
			return err
		}

		t := models.Tenant{
			ID:            primitive.NewObjectID(),
			Name:          doc.Name,
			Email:         doc.Email,
			Phone:         doc.Phone,
			PropertyID:    p.ID,
			PropertyTitle: p.Title,
			OwnerID:       p.OwnerID,
			BrokerID:      p.BrokerID,
			PaymentStatus: doc.PaymentStatus,
			MonthlyRent:   doc.MonthlyRent,
			LeaseStart:    r.day(doc.LeaseStartDays),
			LeaseEnd:      r.dayPtr(doc.LeaseEndDays),
			LastPaymentAt: r.dayPtr(doc.LastPaymentDays),
			Rating:        doc.Rating,
		}
		if linked != nil {
			t.UserID = &linked.ID
			if t.Name == "" {
				t.Name = linked.FullName
			}
			if t.Email == "" {
				t.Email = linked.Email
			}
			if t.Phone == "" {
				t.Phone = linked.Phone
			}
		}
		if t.Name == "" {
			return fmt.Errorf("tenants[%d]: name is required without a user", i)
		}
		t.NameCI = text.Fold(t.Name)
		t.CreatedAt = t.LeaseStart
		t.UpdatedAt = t.LeaseStart
		d.Tenants = append(d.Tenants, t)
	}
	return nil
}

func (r *resolver) resolveContracts(f *file, d *Data) error {
	for i, doc := range f.Contracts {
		if doc.Key == "" {
			return fmt.Errorf("contracts[%d]: key is required", i)
		}
		if _, dup := r.contracts[doc.Key]; dup {
			return fmt.Errorf("contracts[%d]: duplicate key %q", i, doc.Key)
		}
		p, err := r.property("contracts", i, doc.Property)
		if err != nil {
			return err
		}
		tenant, err := r.user("contracts", i, doc.Tenant)
		if err != nil {
			return err
		}
		if tenant.Role != models.RoleTenant {
			return fmt.Errorf("contracts[%d]: user %q is a %s, not a tenant", i, doc.Tenant, tenant.Role)
		}

		created := r.day(doc.StartDays)
		if doc.SignedDays != nil {
			created = r.day(*doc.SignedDays)
		}
		c := models.Contract{
			ID:            primitive.NewObjectID(),
			Number:        doc.Number,
			PropertyID:    p.ID,
			PropertyTitle: p.Title,
			TenantID:      tenant.ID,
			TenantName:    tenant.FullName,
			OwnerID:       p.OwnerID,
			OwnerName:     p.OwnerName,
			BrokerID:      p.BrokerID,
			Status:        doc.Status,
			MonthlyRent:   doc.MonthlyRent,
			Deposit:       doc.Deposit,
			StartDate:     r.day(doc.StartDays),
			EndDate:       r.day(doc.EndDays),
			SignedAt:      r.dayPtr(doc.SignedDays),
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		r.contracts[doc.Key] = c
		d.Contracts = append(d.Contracts, c)
	}
	return nil
}

func (r *resolver) resolvePayments(f *file, d *Data) error {
	for i, doc := range f.Payments {
		c, ok := r.contracts[doc.Contract]
		if !ok {
			return fmt.Errorf("payments[%d]: contract %q: %w", i, doc.Contract, ErrUnknownRef)
		}
		d.Payments = append(d.Payments, models.Payment{
			ID:            primitive.NewObjectID(),
			Reference:     doc.Reference,
			ContractID:    c.ID,
			PropertyTitle: c.PropertyTitle,
			TenantID:      c.TenantID,
			TenantName:    c.TenantName,
			OwnerID:       c.OwnerID,
			BrokerID:      c.BrokerID,
			Amount:        doc.Amount,
			Status:        doc.Status,
			Method:        doc.Method,
			DueDate:       r.day(doc.DueDays),
			PaidAt:        r.dayPtr(doc.PaidDays),
			CreatedAt:     r.day(doc.DueDays - 30),
		})
	}
	return nil
}

func (r *resolver) resolveMaintenance(f *file, d *Data) error {
	for i, doc := range f.Maintenance {
		p, err := r.property("maintenance", i, doc.Property)
		if err != nil {
			return err
		}
		requester, err := r.user("maintenance", i, doc.RequestedBy)
		if err != nil {
			return err
		}
		runner, err := r.optionalUser("maintenance", i, doc.Runner)
		if err != nil {
			return err
		}

		created := r.day(doc.CreatedDays)
		m := models.MaintenanceRequest{
			ID:            primitive.NewObjectID(),
			Reference:     maintenancestore.NewReference(),
			Title:         doc.Title,
			Description:   doc.Description,
			PropertyID:    p.ID,
			PropertyTitle: p.Title,
			OwnerID:       p.OwnerID,
			BrokerID:      p.BrokerID,
			RequestedByID: requester.ID,
			RequestedBy:   requester.FullName,
			Category:      doc.Category,
			Priority:      doc.Priority,
			Status:        doc.Status,
			EstimatedCost: doc.EstimatedCost,
			ActualCost:    doc.ActualCost,
			CreatedAt:     created,
			UpdatedAt:     created,
			ResolvedAt:    r.dayPtr(doc.ResolvedDays),
		}
		if runner != nil {
			m.RunnerID = &runner.ID
			m.RunnerName = runner.FullName
		}
		if m.ResolvedAt != nil {
			m.UpdatedAt = *m.ResolvedAt
		}
		d.Maintenance = append(d.Maintenance, m)
	}
	return nil
}

func (r *resolver) resolveRatings(f *file, d *Data) error {
	for i, doc := range f.Ratings {
		p, err := r.property("ratings", i, doc.Property)
		if err != nil {
			return err
		}
		reviewer, err := r.user("ratings", i, doc.Reviewer)
		if err != nil {
			return err
		}
		subject, err := r.optionalUser("ratings", i, doc.Subject)
		if err != nil {
			return err
		}
		if doc.Score < 1 || doc.Score > 5 {
			return fmt.Errorf("ratings[%d]: score %d outside 1-5", i, doc.Score)
		}

		rt := models.Rating{
			ID:            primitive.NewObjectID(),
			PropertyID:    p.ID,
			PropertyTitle: p.Title,
			OwnerID:       p.OwnerID,
			ReviewerID:    reviewer.ID,
			ReviewerName:  reviewer.FullName,
			ReviewerRole:  reviewer.Role,
			Score:         doc.Score,
			Comment:       strings.TrimSpace(doc.Comment),
			CreatedAt:     r.day(doc.CreatedDays),
		}
		if subject != nil {
			rt.SubjectID = &subject.ID
		}
		d.Ratings = append(d.Ratings, rt)
	}
	return nil
}

func (r *resolver) resolveTickets(f *file, d *Data) error {
	for i, doc := range f.Tickets {
		requester, err := r.user("tickets", i, doc.Requester)
		if err != nil {
			return err
		}
		assignee, err := r.optionalUser("tickets", i, doc.Assignee)
		if err != nil {
			return err
		}

		created := r.day(doc.CreatedDays)
		t := models.SupportTicket{
			ID:            primitive.NewObjectID(),
			Reference:     ticketstore.NewReference(),
			Subject:       doc.Subject,
			Body:          doc.Body,
			RequesterID:   requester.ID,
			Requester:     requester.FullName,
			RequesterRole: requester.Role,
			Category:      doc.Category,
			Priority:      doc.Priority,
			Status:        doc.Status,
			CreatedAt:     created,
			UpdatedAt:     created,
			ResolvedAt:    r.dayPtr(doc.ResolvedDays),
		}
		if assignee != nil {
			t.AssigneeID = &assignee.ID
		}
		if t.ResolvedAt != nil {
			t.UpdatedAt = *t.ResolvedAt
		}
		d.Tickets = append(d.Tickets, t)
	}
	return nil
}
