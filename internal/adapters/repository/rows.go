package repository

import (
	"time"

	"github.com/okian/crm/internal/domain/model"
)

// Table rows. Column names are spelled out so the schema does not depend on
// gorm's naming strategy. No foreign key constraints are declared: integer
// references are stored as given.

// UserRow is a row of the users table.
type UserRow struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Firstname string `gorm:"column:firstname"`
	Lastname  string `gorm:"column:lastname"`
	Mail      string `gorm:"column:mail;size:191;uniqueIndex"`
	Password  string `gorm:"column:password"`
}

func (UserRow) TableName() string { return "users" }

// ContactRow is a row of the contacts table.
type ContactRow struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Firstname   string    `gorm:"column:firstname"`
	Lastname    string    `gorm:"column:lastname"`
	Mail        string    `gorm:"column:mail;size:191;uniqueIndex"`
	Phone       string    `gorm:"column:phone"`
	Birthday    time.Time `gorm:"column:birthday"`
	Address     string    `gorm:"column:address"`
	ContactType int64     `gorm:"column:contact_type"`
	Origin      int64     `gorm:"column:origin"`
	Gender      int64     `gorm:"column:gender"`
}

func (ContactRow) TableName() string { return "contacts" }

// TaskRow is a row of the tasks table. CreatedAt is filled by gorm on insert.
type TaskRow struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title"`
	IDUser    int64     `gorm:"column:id_user;index"`
	DateEnd   time.Time `gorm:"column:date_end"`
	Status    int64     `gorm:"column:status"`
	IDContact int64     `gorm:"column:id_contact;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TaskRow) TableName() string { return "tasks" }

// CommentRow is a row of the comments table.
type CommentRow struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	IDContact *int64  `gorm:"column:id_contact;index"`
	Comment   *string `gorm:"column:comment"`
}

func (CommentRow) TableName() string { return "comments" }

// LookupRow is shared by the four vocabulary tables.
type LookupRow struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Description string `gorm:"column:description"`
}

// ContactTypeRow is a row of contact_types.
type ContactTypeRow struct{ LookupRow }

func (ContactTypeRow) TableName() string { return "contact_types" }

// GenderRow is a row of gender.
type GenderRow struct{ LookupRow }

func (GenderRow) TableName() string { return "gender" }

// OriginRow is a row of origins.
type OriginRow struct{ LookupRow }

func (OriginRow) TableName() string { return "origins" }

// StatusRow is a row of status.
type StatusRow struct{ LookupRow }

func (StatusRow) TableName() string { return "status" }

// Table names of the lookup vocabularies.
const (
	TableContactTypes = "contact_types"
	TableGender       = "gender"
	TableOrigins      = "origins"
	TableStatus       = "status"
)

// allRows lists every table created at startup.
func allRows() []any {
	return []any{
		&UserRow{},
		&ContactRow{},
		&TaskRow{},
		&CommentRow{},
		&ContactTypeRow{},
		&GenderRow{},
		&OriginRow{},
		&StatusRow{},
	}
}

// taskJoinRow receives the tasks ⨝ users projection.
type taskJoinRow struct {
	ID        int64     `gorm:"column:id"`
	Title     string    `gorm:"column:title"`
	IDUser    int64     `gorm:"column:id_user"`
	Firstname string    `gorm:"column:firstname"`
	Lastname  string    `gorm:"column:lastname"`
	DateEnd   time.Time `gorm:"column:date_end"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Mapping functions. Each direction is spelled out per entity.

// deref reads a validated reference. Input shapes reject absent references
// before they reach the store, so nil only comes from direct callers.
func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func userFromRow(r UserRow) model.User {
	return model.User{
		ID:        r.ID,
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Mail:      r.Mail,
		Password:  r.Password,
	}
}

func contactFromRow(r ContactRow) model.Contact {
	return model.ContactIn{
		Firstname:   r.Firstname,
		Lastname:    r.Lastname,
		Mail:        r.Mail,
		Phone:       r.Phone,
		Birthday:    model.DateOf(r.Birthday),
		Address:     r.Address,
		ContactType: model.Ref(r.ContactType),
		Origin:      model.Ref(r.Origin),
		Gender:      model.Ref(r.Gender),
	}.WithID(r.ID)
}

func contactToRow(in model.ContactIn) ContactRow {
	return ContactRow{
		Firstname:   in.Firstname,
		Lastname:    in.Lastname,
		Mail:        in.Mail,
		Phone:       in.Phone,
		Birthday:    in.Birthday.In(time.UTC),
		Address:     in.Address,
		ContactType: deref(in.ContactType),
		Origin:      deref(in.Origin),
		Gender:      deref(in.Gender),
	}
}

// contactColumns is the full overwrite set used by updates.
func contactColumns(in model.ContactIn) map[string]any {
	return map[string]any{
		"firstname":    in.Firstname,
		"lastname":     in.Lastname,
		"mail":         in.Mail,
		"phone":        in.Phone,
		"birthday":     in.Birthday.In(time.UTC),
		"address":      in.Address,
		"contact_type": deref(in.ContactType),
		"origin":       deref(in.Origin),
		"gender":       deref(in.Gender),
	}
}

func commentFromRow(r CommentRow) model.Comment {
	return model.CommentIn{IDContact: r.IDContact, Comment: r.Comment}.WithID(r.ID)
}

func commentToRow(in model.CommentIn) CommentRow {
	return CommentRow{IDContact: in.IDContact, Comment: in.Comment}
}

func taskToRow(in model.TaskIn) TaskRow {
	return TaskRow{
		Title:     in.Title,
		IDUser:    deref(in.IDUser),
		DateEnd:   in.DateEnd.UTC(),
		Status:    deref(in.Status),
		IDContact: deref(in.IDContact),
	}
}

// taskColumns is the update set: status and id_contact are not writable.
func taskColumns(t model.Task) map[string]any {
	return map[string]any{
		"title":    t.Title,
		"id_user":  deref(t.IDUser),
		"date_end": t.DateEnd.UTC(),
	}
}

func taskSummaryFromRow(r taskJoinRow) model.TaskSummary {
	return model.TaskSummary{
		ID:        r.ID,
		Title:     r.Title,
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		DateEnd:   r.DateEnd,
		CreatedAt: r.CreatedAt,
	}
}

func taskDetailFromRow(r taskJoinRow) model.TaskDetail {
	return model.TaskDetail{
		ID:        r.ID,
		Title:     r.Title,
		IDUser:    r.IDUser,
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		DateEnd:   r.DateEnd,
		CreatedAt: r.CreatedAt,
	}
}

func (r LookupRow) lookup() model.Lookup {
	return model.Lookup{ID: r.ID, Description: r.Description}
}
