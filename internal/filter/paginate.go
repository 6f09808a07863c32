package filter

// Page describes the slice returned by Paginate.
type Page struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Count int `json:"count"`
}

// Paginate returns the 1-based page of items. Out-of-range pages are empty.
func Paginate[T any](items []T, page, size int) ([]T, Page) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], Page{Page: page, Size: size, Count: total}
}
