package httpapi

// BackendPagination list metadata returned with every paged list.
type BackendPagination struct {
	Size      int    `json:"size"`
	Page      int    `json:"page"`
	Count     int    `json:"count"`
	Sort      string `json:"sort"`
	Direction int    `json:"direction"`
}

// ListResult paged list payload.
type ListResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination BackendPagination `json:"pagination"`
}

type selectionRequest struct {
	IDs []int `json:"ids"`
}

type selectionResponse struct {
	IDs   []int `json:"ids"`
	Count int   `json:"count"`
}

type submitRequest struct {
	IDs []int `json:"ids"`
}
