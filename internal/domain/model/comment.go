package model

// CommentIn is the create shape for a comment. Both fields are optional.
type CommentIn struct {
	IDContact *int64  `json:"id_contact"`
	Comment   *string `json:"comment"`
}

// Comment is the stored comment. As an update shape only Comment is written;
// IDContact is echoed back but never changes.
type Comment struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	CommentIn
}

// WithID returns the stored form of in.
func (in CommentIn) WithID(id int64) Comment {
	return Comment{ID: id, CommentIn: in}
}
