package model

import "time"

// TaskIn is the create shape for a task.
type TaskIn struct {
	Title     string   `json:"title" validate:"required"`
	IDUser    *int64   `json:"id_user" validate:"required,gte=0"`
	DateEnd   DateTime `json:"date_end" validate:"required"`
	Status    *int64   `json:"status" validate:"required,gte=0"`
	IDContact *int64   `json:"id_contact" validate:"required,gte=0"`
}

// Task is the stored task as returned by create and update. As an update
// shape only Title, IDUser and DateEnd are written.
type Task struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	TaskIn
}

// WithID returns the stored form of in.
func (in TaskIn) WithID(id int64) Task {
	return Task{ID: id, TaskIn: in}
}

// TaskSummary is one row of the per-contact task list: the task joined with
// the name of the user it is assigned to.
type TaskSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	DateEnd   time.Time `json:"date_end"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDetail is a single task joined with its user, including the user id.
type TaskDetail struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	IDUser    int64     `json:"id_user"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	DateEnd   time.Time `json:"date_end"`
	CreatedAt time.Time `json:"created_at"`
}
