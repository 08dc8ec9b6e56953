package api

import (
	"context"
	"net/http"

	"github.com/okian/crm/internal/domain/model"
)

// TaskDependencies defines the storage operations on tasks.
type TaskDependencies interface {
	ListTasks(ctx context.Context, contactID int64) ([]model.TaskSummary, error)
	GetTask(ctx context.Context, id int64) (model.TaskDetail, error)
	CreateTask(ctx context.Context, in model.TaskIn) (model.Task, error)
	UpdateTask(ctx context.Context, t model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// TasksHandler handles task requests.
type TasksHandler struct {
	responder
	deps TaskDependencies
}

// NewTasksHandler creates a new tasks handler.
func NewTasksHandler(deps TaskDependencies, rs responder) *TasksHandler {
	return &TasksHandler{responder: rs, deps: deps}
}

// HandleList handles GET /tasks/?id_contact= requests.
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_tasks"
	contactID, err := queryInt(r, "id_contact")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	tasks, err := h.deps.ListTasks(r.Context(), contactID)
	if err != nil {
		h.fail(w, r, storeError(op, "Task", err))
		return
	}
	h.ok(w, tasks)
}

// HandleGet handles GET /task/?id_task= requests.
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_task"
	id, err := queryInt(r, "id_task")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	task, err := h.deps.GetTask(r.Context(), id)
	if err != nil {
		h.fail(w, r, storeError(op, "Task", err))
		return
	}
	h.ok(w, task)
}

// HandleCreate handles POST /tasks/ requests.
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_task"
	var in model.TaskIn
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	task, err := h.deps.CreateTask(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Task", err))
		return
	}
	h.ok(w, task)
}

// HandleUpdate handles PUT /tasks/ requests. Status and id_contact are
// accepted but not written.
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_task"
	var in model.Task
	if err := decode(op, w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	task, err := h.deps.UpdateTask(r.Context(), in)
	if err != nil {
		h.fail(w, r, storeError(op, "Task", err))
		return
	}
	h.ok(w, task)
}

// HandleDelete handles DELETE /tasks/{task_id} requests.
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_task"
	id, err := pathInt(r, "task_id")
	if err != nil {
		h.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.DeleteTask(r.Context(), id); err != nil {
		h.fail(w, r, storeError(op, "Task", err))
		return
	}
	h.ok(w, model.Message{Message: "Task deleted"})
}
