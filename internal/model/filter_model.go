package model

// ApplicationFilter narrows the dashboard list.
type ApplicationFilter struct {
	Status ApplicationStatus
	Search string
	Page   int
	Limit  int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalized fills in paging defaults.
func (f ApplicationFilter) Normalized() ApplicationFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

// Offset is the zero-based index of the first row on the page.
func (f ApplicationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ApplicationStats is the dashboard summary.
type ApplicationStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Reviewing int64 `json:"reviewing"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Recent    int64 `json:"recent"`
}
