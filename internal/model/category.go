package model

// Category groups tasks by area on the backend side.
type Category struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}
