package api

import (
	"context"
	"net/http"

	"github.com/okian/crm/internal/domain/model"
)

// LookupDependencies defines the storage operations on the reference
// vocabularies. Only genders can be created.
type LookupDependencies interface {
	ListGenders(ctx context.Context) ([]model.Gender, error)
	GetGender(ctx context.Context, id int64) (model.Gender, error)
	CreateGender(ctx context.Context, in model.GenderIn) (model.Gender, error)
	ListContactTypes(ctx context.Context) ([]model.ContactType, error)
	ListOrigins(ctx context.Context) ([]model.Origin, error)
	ListStatuses(ctx context.Context) ([]model.Status, error)
}

// LookupsHandler serves the lookup tables.
type LookupsHandler struct {
	responder
	deps LookupDependencies
}

// NewLookupsHandler creates a new lookups handler.
func NewLookupsHandler(deps LookupDependencies, rs responder) *LookupsHandler {
	return &LookupsHandler{responder: rs, deps: deps}
}

func (h *LookupsHandler) list(w http.ResponseWriter, r *http.Request, op, entity string, fn func(context.Context) ([]model.Lookup, error)) {
	rows, err := fn(r.Context())
	if err != nil {
		h.fail(w, r, storeError(op, entity, err))
		return
	}
	h.ok(w, rows)
}

// HandleListGenders handles GET /genders/ requests.
func (h *LookupsHandler) HandleListGenders(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.list_genders", "Gender", h.deps.ListGenders)
}

// HandleListContactTypes handles GET /contact_types/ requests.
func (h *LookupsHandler) HandleListContactTypes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.list_contact_types", "Contact type", h.deps.ListContactTypes)
}

// HandleListOrigins handles GET /origins/ requests.
func (h *LookupsHandler) HandleListOrigins(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.list_origins", "Origin", h.deps.ListOrigins)
}

// HandleListStatuses handles GET /status/ requests.
func (h *LookupsHandler) HandleListStatuses(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.list_statuses", "Status", h.deps.ListStatuses)
}

// HandleGetGender handles GET /gender/?id= requests.
func (h *LookupsHandler) HandleGetGender(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_gender"
	id, err := queryInt(r, "id")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	gender, err := h.deps.GetGender(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(op, "Gender", err))
		return
	}
	h.ok(w, gender)
}

// HandleCreateGender handles POST /gender/ requests.
func (h *LookupsHandler) HandleCreateGender(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_gender"
	var in model.GenderIn
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	gender, err := h.deps.CreateGender(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Gender", err))
		return
	}
	h.ok(w, gender)
}
