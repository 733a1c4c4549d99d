package tour

// InsertRequest is the payload for creating a tour.
type InsertRequest struct {
	Category string  `json:"category" validate:"required,min=2,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// Response is the read projection of a tour.
type Response struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ToResponse maps a tour entity onto its read projection.
func ToResponse(t *Tour) *Response {
	return &Response{
		ID:       t.ID,
		Category: t.Category,
		Price:    t.Price,
	}
}
