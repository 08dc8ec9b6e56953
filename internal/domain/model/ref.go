package model

// Ref returns a pointer to n. Integer references in input shapes are
// pointers so that an absent field can be told apart from 0.
func Ref(n int64) *int64 {
	return &n
}
