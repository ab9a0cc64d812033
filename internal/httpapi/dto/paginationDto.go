package dto

// Page is the offset/limit collection envelope.
type Page[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

func NewPage[T any](results []T, count int64) *Page[T] {
	if results == nil {
		results = []T{}
	}
	return &Page[T]{Count: count, Results: results}
}
