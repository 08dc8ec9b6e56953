package model

// Lookup is a row of a static reference vocabulary.
type Lookup struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// LookupIn is the create shape for a lookup row.
type LookupIn struct {
	Description string `json:"description" validate:"required"`
}

// Named vocabularies. They share one shape.
type (
	ContactType = Lookup
	Gender      = Lookup
	Origin      = Lookup
	Status      = Lookup
	GenderIn    = LookupIn
)

// Message is the confirmation body returned by delete endpoints.
type Message struct {
	Message string `json:"message"`
}
