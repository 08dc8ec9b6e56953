package api

import (
	"context"
	"net/http"

	"github.com/okian/crm/internal/domain/model"
)

// ContactDependencies defines the storage operations on contacts.
type ContactDependencies interface {
	ListContacts(ctx context.Context) ([]model.Contact, error)
	GetContact(ctx context.Context, id int64) (model.Contact, error)
	CreateContact(ctx context.Context, in model.ContactIn) (model.Contact, error)
	UpdateContact(ctx context.Context, c model.Contact) (model.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

// ContactsHandler handles contact requests.
type ContactsHandler struct {
	responder
	deps ContactDependencies
}

// NewContactsHandler creates a new contacts handler.
func NewContactsHandler(deps ContactDependencies, rs responder) *ContactsHandler {
	return &ContactsHandler{responder: rs, deps: deps}
}

// HandleList handles GET /contacts/ requests.
func (h *ContactsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_contacts"
	contacts, err := h.deps.ListContacts(r.Context())
	if err != nil {
		h.fail(w, r, storeError(op, "Contact", err))
		return
	}
	h.ok(w, contacts)
}

// HandleGet handles GET /contact/?contact_id= requests. A missing or
// unusable id is reported as not found.
func (h *ContactsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_contact"
	id, err := queryInt(r, "contact_id")
	if err != nil || id == 0 {
		h.fail(w, r, notFound(op, "Contact"))
		return
	}
	contact, err := h.deps.GetContact(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(op, "Contact", err))
		return
	}
	h.ok(w, contact)
}

// HandleCreate handles POST /contacts/ requests.
func (h *ContactsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_contact"
	var in model.ContactIn
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	contact, err := h.deps.CreateContact(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Contact", err))
		return
	}
	h.ok(w, contact)
}

// HandleUpdate handles PUT /contacts/ requests.
func (h *ContactsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_contact"
	var in model.Contact
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	contact, err := h.deps.UpdateContact(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Contact", err))
		return
	}
	h.ok(w, contact)
}

// HandleDelete handles DELETE /contacts/{contact_id} requests.
func (h *ContactsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_contact"
	id, err := pathInt(r, "contact_id")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.DeleteContact(r.Context(), id); err != nil {
		h.fail(w, r, storeError(op, "Contact", err))
		return
	}
	h.ok(w, model.Message{Message: "Contact deleted"})
}
