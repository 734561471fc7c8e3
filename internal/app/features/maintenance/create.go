// internal/app/features/maintenance/create.go
package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	maintenancestore "github.com/rent360/rent360/internal/app/store/maintenance"
	"github.com/rent360/rent360/internal/app/store/scoped"
	"github.com/rent360/rent360/internal/app/system/authz"
	"github.com/rent360/rent360/internal/app/system/formutil"
	"github.com/rent360/rent360/internal/app/system/htmlsanitize"
	"github.com/rent360/rent360/internal/app/system/timeouts"
	"github.com/rent360/rent360/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxBody = 64 << 10

var (
	errBadProperty = errors.New("choose a property you manage or rent")
	errBadCost     = errors.New("estimated cost must be a non-negative number")
)

// createInput is the intake payload, shared by the JSON endpoint and the form.
type createInput struct {
	PropertyID    string  `json:"property_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Priority      string  `json:"priority"`
	EstimatedCost float64 `json:"estimated_cost"`
}

func inputFromForm(r *http.Request) (createInput, error) {
	in := createInput{
		PropertyID:  r.PostFormValue("property_id"),
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		Priority:    r.PostFormValue("priority"),
	}
	if raw := strings.TrimSpace(r.PostFormValue("estimated_cost")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, errBadCost
		}
		in.EstimatedCost = v
	}
	return in, nil
}

func isInputError(err error) bool {
	return errors.Is(err, errBadProperty) || errors.Is(err, errBadCost) || maintenancestore.IsValidationError(err)
}

// property resolves the property a request is opened on. Tenants have no
// property scope of their own, so an active lease stands in for it.
func (h *Handler) property(ctx context.Context, s authz.Scope, rawID string) (models.Property, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(rawID))
	if err != nil {
		return models.Property{}, errBadProperty
	}
	if s.Role == models.RoleTenant {
		leases, err := h.contracts.Where(ctx, s, bson.M{"property_id": id, "status": models.ContractActive})
		if err != nil {
			return models.Property{}, err
		}
		if len(leases) == 0 {
			return models.Property{}, errBadProperty
		}
		s = authz.AdminScope
	}
	p, err := h.properties.GetByID(ctx, s, id)
	if errors.Is(err, scoped.ErrNotFound) {
		return models.Property{}, errBadProperty
	}
	return p, err
}

func (h *Handler) create(ctx context.Context, s authz.Scope, in createInput) (models.MaintenanceRequest, error) {
	if in.EstimatedCost < 0 {
		return models.MaintenanceRequest{}, errBadCost
	}
	p, err := h.property(ctx, s, in.PropertyID)
	if err != nil {
		return models.MaintenanceRequest{}, err
	}
	requester, err := h.users.GetByID(ctx, s.UserID)
	if err != nil {
		return models.MaintenanceRequest{}, err
	}

	return h.store.Create(ctx, p, *requester, models.MaintenanceRequest{
		Title:         in.Title,
		Description:   htmlsanitize.ForStorage(in.Description),
		Category:      strings.ToLower(strings.TrimSpace(in.Category)),
		Priority:      strings.ToLower(strings.TrimSpace(in.Priority)),
		EstimatedCost: in.EstimatedCost,
	})
}

// CreateAPI handles POST /api/v1/maintenance with a JSON body.
func (h *Handler) CreateAPI(w http.ResponseWriter, r *http.Request) {
	scope, ok := authz.ScopeFor(r)
	if !ok || !authz.CanRequestMaintenance(r) {
		h.ErrLog.LogForbidden(w, r, "maintenance intake denied", "You cannot open maintenance requests.", "/maintenance")
		return
	}

	var in createInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode maintenance request", err, "Request body must be a JSON object.", "/maintenance")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.create(ctx, scope, in)
	if isInputError(err) {
		h.ErrLog.LogBadRequest(w, r, "invalid maintenance request", err, err.Error(), "/maintenance")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create maintenance request failed", err, "A database error occurred.", "/maintenance")
		return
	}

	h.Log.Info("maintenance request opened",
		zap.String("reference", m.Reference),
		zap.String("property_id", m.PropertyID.Hex()),
		zap.String("priority", m.Priority))
	listing.WriteJSONStatus(w, http.StatusCreated, m)
}

// ServeNew renders GET /maintenance/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderNew(w, r, createInput{Priority: models.PriorityMedium}, "")
}

// HandleNew handles POST /maintenance/new.
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	scope, ok := authz.ScopeFor(r)
	if !ok || !authz.CanRequestMaintenance(r) {
		h.ErrLog.LogForbidden(w, r, "maintenance intake denied", "You cannot open maintenance requests.", "/maintenance")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse maintenance form", err, "The form could not be read.", "/maintenance")
		return
	}

	in, err := inputFromForm(r)
	if err != nil {
		h.renderNew(w, r, in, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.create(ctx, scope, in); err != nil {
		if isInputError(err) {
			h.renderNew(w, r, in, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "create maintenance request failed", err, "A database error occurred.", "/maintenance")
		return
	}
	http.Redirect(w, r, "/maintenance", http.StatusSeeOther)
}

func (h *Handler) renderNew(w http.ResponseWriter, r *http.Request, in createInput, errMsg string) {
	scope, ok := authz.ScopeFor(r)
	if !ok {
		h.ErrLog.LogForbidden(w, r, "maintenance form without session", "Please sign in to continue.", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts, err := h.propertyOptions(ctx, scope, in.PropertyID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load properties for maintenance form", err, "A database error occurred.", "/maintenance")
		return
	}

	data := newData{
		Properties:  opts,
		Categories:  listing.NewSelect("category", models.MaintenanceCategories, []string{in.Category}).Choices,
		Priorities:  listing.NewSelect("priority", models.Priorities, []string{in.Priority}).Choices,
		Title:       in.Title,
		Description: in.Description,
	}
	if in.EstimatedCost > 0 {
		data.Cost = strconv.FormatFloat(in.EstimatedCost, 'f', -1, 64)
	}
	formutil.SetBase(&data.Base, r, "New maintenance request", "/maintenance")
	if errMsg != "" {
		data.SetError(errMsg)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	templates.Render(w, r, "maintenance_new", data)
}

// propertyOptions lists the properties the caller may open a request on.
func (h *Handler) propertyOptions(ctx context.Context, s authz.Scope, selected string) ([]propertyOption, error) {
	var out []propertyOption
	if s.Role == models.RoleTenant {
		leases, err := h.contracts.Where(ctx, s, bson.M{"status": models.ContractActive})
		if err != nil {
			return nil, err
		}
		seen := make(map[primitive.ObjectID]bool, len(leases))
		for _, c := range leases {
			if seen[c.PropertyID] {
				continue
			}
			seen[c.PropertyID] = true
			out = append(out, propertyOption{ID: c.PropertyID.Hex(), Title: c.PropertyTitle, Selected: c.PropertyID.Hex() == selected})
		}
		return out, nil
	}

	props, err := h.properties.List(ctx, s)
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		out = append(out, propertyOption{ID: p.ID.Hex(), Title: p.Title, Selected: p.ID.Hex() == selected})
	}
	return out, nil
}
