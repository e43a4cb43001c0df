package domain

// FilterState narrows the task list. An empty field means no constraint.
type FilterState struct {
	Year   string `json:"year"`
	Month  string `json:"month"`
	Status string `json:"status"`
	Tag    string `json:"tag"`
}

// IsEmpty reports whether no dimension is constrained.
func (f FilterState) IsEmpty() bool {
	return f == FilterState{}
}
