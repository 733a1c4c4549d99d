package tour

import "time"

// Tour is a bookable tour category with its price. Both fields are unique:
// category as a business rule, price as a data-integrity rule inherited
// from the product catalogue.
type Tour struct {
	ID        int64     `db:"id"`
	Category  string    `db:"category"`
	Price     float64   `db:"price"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
