// Package resource models the envelopes the panel wraps every payload
// in: single objects carry their fields under "attributes", lists carry
// objects under "data" with pagination under "meta".
package resource

import "encoding/json"

// Object is a single typed resource.
type Object[T any] struct {
	Object     string `json:"object"`
	Attributes T      `json:"attributes"`
	// Meta is present on a few responses, such as API key creation.
	Meta json.RawMessage `json:"meta,omitempty"`
}

// List is a page of resources.
type List[T any] struct {
	Object string      `json:"object"`
	Data   []Object[T] `json:"data"`
	Meta   Meta        `json:"meta"`
}

// Items returns the attributes of every object on the page.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}

	items := make([]T, len(l.Data))
	for i, o := range l.Data {
		items[i] = o.Attributes
	}

	return items
}

// Meta holds list metadata. Pagination is absent on unpaginated lists.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page a [List] holds.
type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`

	// Links is an object of page URLs, or an empty array on some versions.
	Links json.RawMessage `json:"links,omitempty"`
}

// SignedURL is returned by calls that hand out a one-time URL.
type SignedURL struct {
	URL string `json:"url"`
}
