package player

import (
	"time"
)

// Player holds its own copy of the selected paddle's fields. Edits to
// a paddle template reach these columns only through the propagation
// pass in the paddle service.
type Player struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	Image              string    `db:"image"`
	Age                string    `db:"age"`
	Height             string    `db:"height"`
	Sponsor            string    `db:"sponsor"`
	Shoes              string    `db:"shoes"`
	Paddle             string    `db:"paddle"`
	PaddleBrand        string    `db:"paddle_brand"`
	PaddleModel        string    `db:"paddle_model"`
	PaddleShape        string    `db:"paddle_shape"`
	PaddleThickness    string    `db:"paddle_thickness"`
	PaddleHandleLength string    `db:"paddle_handle_length"`
	PaddleLength       string    `db:"paddle_length"`
	PaddleWidth        string    `db:"paddle_width"`
	PaddleCore         string    `db:"paddle_core"`
	PaddleImage        string    `db:"paddle_image"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
