package api

import (
	"context"
	"net/http"

	"github.com/okian/crm/internal/domain/model"
)

// UserDependencies defines the read operations on users.
type UserDependencies interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
}

// UsersHandler handles user requests.
type UsersHandler struct {
	responder
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies, rs responder) *UsersHandler {
	return &UsersHandler{responder: rs, deps: deps}
}

// HandleList handles GET /users/ requests.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_users"
	users, err := h.deps.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, storeError(op, "User", err))
		return
	}
	h.ok(w, users)
}

// HandleGet handles GET /user/?user_id= requests.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_user"
	id, err := queryInt(r, "user_id")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	user, err := h.deps.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(op, "User", err))
		return
	}
	h.ok(w, user)
}
