package repository

import (
	"context"

	"github.com/okian/crm/internal/domain/model"
)

// Store provides read/write access to the CRM tables. Every method runs a
// single statement with ctx.
//
// Get methods return ErrNotFound when no row matches. Create and update of
// contacts return ErrConflict when the mail is taken. Update and delete
// never report missing rows.
type Store interface {
	ListContacts(ctx context.Context) ([]model.Contact, error)
	GetContact(ctx context.Context, id int64) (model.Contact, error)
	CreateContact(ctx context.Context, in model.ContactIn) (model.Contact, error)
	UpdateContact(ctx context.Context, c model.Contact) (model.Contact, error)
	DeleteContact(ctx context.Context, id int64) error

	ListComments(ctx context.Context, contactID int64) ([]model.Comment, error)
	GetComment(ctx context.Context, id int64) (model.Comment, error)
	CreateComment(ctx context.Context, in model.CommentIn) (model.Comment, error)
	// UpdateComment writes only the text; the contact reference is immutable.
	UpdateComment(ctx context.Context, c model.Comment) (model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	// ListTasks returns the tasks of a contact joined with their user. Tasks
	// whose user does not exist are left out.
	ListTasks(ctx context.Context, contactID int64) ([]model.TaskSummary, error)
	GetTask(ctx context.Context, id int64) (model.TaskDetail, error)
	CreateTask(ctx context.Context, in model.TaskIn) (model.Task, error)
	// UpdateTask writes title, id_user and date_end only.
	UpdateTask(ctx context.Context, t model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ListGenders(ctx context.Context) ([]model.Gender, error)
	GetGender(ctx context.Context, id int64) (model.Gender, error)
	CreateGender(ctx context.Context, in model.GenderIn) (model.Gender, error)
	ListContactTypes(ctx context.Context) ([]model.ContactType, error)
	ListOrigins(ctx context.Context) ([]model.Origin, error)
	ListStatuses(ctx context.Context) ([]model.Status, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)

	// Ping checks that the database answers.
	Ping(ctx context.Context) error
	// Close releases the connection pool.
	Close() error
}
