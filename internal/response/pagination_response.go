package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of pageSize rows out of total.
// From and To are 1-based row numbers; both are 0 on an empty page.
func NewPagination(page, pageSize int, total int64) *Pagination {
	p := &Pagination{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize <= 0 {
		return p
	}
	p.TotalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	p.HasMore = int64(page) < p.TotalPages
	offset := (page - 1) * pageSize
	if int64(offset) < total {
		p.From = offset + 1
		p.To = offset + pageSize
		if int64(p.To) > total {
			p.To = int(total)
		}
	}
	return p
}
