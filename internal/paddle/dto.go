package paddle

import (
	"time"
)

type CreatePaddleRequest struct {
	Name         string `json:"name"  validate:"required,min=1,max=200"`
	Brand        string `json:"brand" validate:"required,min=1,max=100"`
	Model        string `json:"model"`
	Shape        string `json:"shape"`
	Thickness    string `json:"thickness"`
	HandleLength string `json:"handleLength"`
	Length       string `json:"length"`
	Width        string `json:"width"`
	Core         string `json:"core"`
	Color        string `json:"color"`
	Weight       string `json:"weight"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	PriceLink    string `json:"priceLink"`
}

// UpdatePaddleRequest fields left empty keep their current value, on
// the paddle itself and on every propagated player record.
type UpdatePaddleRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Shape        string `json:"shape"`
	Thickness    string `json:"thickness"`
	HandleLength string `json:"handleLength"`
	Length       string `json:"length"`
	Width        string `json:"width"`
	Core         string `json:"core"`
	Color        string `json:"color"`
	Weight       string `json:"weight"`
	Image        string `json:"image"`
	Description  string `json:"description"`
	PriceLink    string `json:"priceLink"`
}

type PaddleResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Shape        string    `json:"shape"`
	Thickness    string    `json:"thickness"`
	HandleLength string    `json:"handleLength"`
	Length       string    `json:"length"`
	Width        string    `json:"width"`
	Core         string    `json:"core"`
	Color        string    `json:"color"`
	Weight       string    `json:"weight"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	PriceLink    string    `json:"priceLink"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UpdatePaddleResult struct {
	Paddle          PaddleResponse `json:"paddle"`
	AffectedPlayers int            `json:"affectedPlayers"`
}

func ToPaddleResponse(p *Paddle) PaddleResponse {
	return PaddleResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Model:        p.Model,
		Shape:        p.Shape,
		Thickness:    p.Thickness,
		HandleLength: p.HandleLength,
		Length:       p.Length,
		Width:        p.Width,
		Core:         p.Core,
		Color:        p.Color,
		Weight:       p.Weight,
		Image:        p.Image,
		Description:  p.Description,
		PriceLink:    p.PriceLink,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToPaddleResponseList(paddles []Paddle) []PaddleResponse {
	responses := make([]PaddleResponse, 0, len(paddles))
	for _, p := range paddles {
		responses = append(responses, ToPaddleResponse(&p))
	}
	return responses
}
