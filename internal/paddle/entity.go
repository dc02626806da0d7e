package paddle

import (
	"time"
)

// Paddle is a reusable equipment template. Players copy its values at
// selection time; only the propagation service pushes later edits out.
type Paddle struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Brand        string    `db:"brand"`
	Model        string    `db:"model"`
	Shape        string    `db:"shape"`
	Thickness    string    `db:"thickness"`
	HandleLength string    `db:"handle_length"`
	Length       string    `db:"length"`
	Width        string    `db:"width"`
	Core         string    `db:"core"`
	Color        string    `db:"color"`
	Weight       string    `db:"weight"`
	Image        string    `db:"image"`
	Description  string    `db:"description"`
	PriceLink    string    `db:"price_link"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

func (p *Paddle) IsActive() bool {
	return p.Status == StatusActive
}
