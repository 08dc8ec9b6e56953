package api

import (
	"context"
	"net/http"

	"github.com/okian/crm/internal/domain/model"
)

// CommentDependencies defines the storage operations on comments.
type CommentDependencies interface {
	ListComments(ctx context.Context, contactID int64) ([]model.Comment, error)
	GetComment(ctx context.Context, id int64) (model.Comment, error)
	CreateComment(ctx context.Context, in model.CommentIn) (model.Comment, error)
	UpdateComment(ctx context.Context, c model.Comment) (model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// CommentsHandler handles comment requests.
type CommentsHandler struct {
	responder
	deps CommentDependencies
}

// NewCommentsHandler creates a new comments handler.
func NewCommentsHandler(deps CommentDependencies, rs responder) *CommentsHandler {
	return &CommentsHandler{responder: rs, deps: deps}
}

// HandleList handles GET /comments/?contact_id= requests.
func (h *CommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_comments"
	contactID, err := queryInt(r, "contact_id")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	comments, err := h.deps.ListComments(r.Context(), contactID)
	if err != nil {
		h.fail(w, r, storeError(op, "Comment", err))
		return
	}
	h.ok(w, comments)
}

// HandleGet handles GET /comment/?id_comment= requests.
func (h *CommentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_comment"
	id, err := queryInt(r, "id_comment")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	comment, err := h.deps.GetComment(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(op, "Comment", err))
		return
	}
	h.ok(w, comment)
}

// HandleCreate handles POST /comments/ requests.
func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_comment"
	var in model.CommentIn
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	comment, err := h.deps.CreateComment(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Comment", err))
		return
	}
	h.ok(w, comment)
}

// HandleUpdate handles PUT /comments/ requests. Only the text is written.
func (h *CommentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_comment"
	var in model.Comment
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	comment, err := h.deps.UpdateComment(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Comment", err))
		return
	}
	h.ok(w, comment)
}

// HandleDelete handles DELETE /comments/{id_comment} requests.
func (h *CommentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_comment"
	id, err := pathInt(r, "id_comment")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.DeleteComment(r.Context(), id); err != nil {
		h.fail(w, r, storeError(op, "Comment", err))
		return
	}
	h.ok(w, model.Message{Message: "Comment deleted"})
}
