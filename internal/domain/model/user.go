package model

// User is a CRM operator. The password column is stored but never
// serialized.
type User struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Mail      string `json:"mail"`
	Password  string `json:"-"`
}
