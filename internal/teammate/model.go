package teammate

// Teammate represents a row in the teammates table.
type Teammate struct {
	ID       int64
	Name     string
	Function string
}
