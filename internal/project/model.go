package project

// Project represents a row in the projects table.
type Project struct {
	ID          int64
	Title       string
	Description string
}

// UpdateFields holds the columns overwritten by Update.
type UpdateFields struct {
	Title       string
	Description string
}
