package model

import "cloud.google.com/go/civil"

// ContactIn is the create shape for a contact.
//
// contact_type, origin and gender reference lookup rows by id but are not
// checked against them. They must be present; 0 is accepted.
type ContactIn struct {
	Firstname   string     `json:"firstname" validate:"required"`
	Lastname    string     `json:"lastname" validate:"required"`
	Mail        string     `json:"mail" validate:"required"`
	Phone       string     `json:"phone" validate:"required"`
	Birthday    civil.Date `json:"birthday" validate:"required"`
	Address     string     `json:"address" validate:"required"`
	ContactType *int64     `json:"contact_type" validate:"required,gte=0"`
	Origin      *int64     `json:"origin" validate:"required,gte=0"`
	Gender      *int64     `json:"gender" validate:"required,gte=0"`
}

// Contact is the stored contact. It doubles as the update shape.
type Contact struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	ContactIn
}

// WithID returns the stored form of in.
func (in ContactIn) WithID(id int64) Contact {
	return Contact{ID: id, ContactIn: in}
}
