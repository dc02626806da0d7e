package player

import (
	"time"
)

type CreatePlayerRequest struct {
	Name               string `json:"name"   validate:"required,min=1,max=200"`
	Image              string `json:"image"  validate:"required"`
	Age                string `json:"age"`
	Height             string `json:"height"`
	Sponsor            string `json:"sponsor"`
	Shoes              string `json:"shoes"`
	Paddle             string `json:"paddle" validate:"required,min=1,max=200"`
	PaddleBrand        string `json:"paddleBrand"`
	PaddleModel        string `json:"paddleModel"`
	PaddleShape        string `json:"paddleShape"`
	PaddleThickness    string `json:"paddleThickness"`
	PaddleHandleLength string `json:"paddleHandleLength"`
	PaddleLength       string `json:"paddleLength"`
	PaddleWidth        string `json:"paddleWidth"`
	PaddleCore         string `json:"paddleCore"`
	PaddleImage        string `json:"paddleImage"`
}

// UpdatePlayerRequest replaces empty fields with the stored values,
// same coalesce rule as paddle updates.
type UpdatePlayerRequest struct {
	Name               string `json:"name"`
	Image              string `json:"image"`
	Age                string `json:"age"`
	Height             string `json:"height"`
	Sponsor            string `json:"sponsor"`
	Shoes              string `json:"shoes"`
	Paddle             string `json:"paddle"`
	PaddleBrand        string `json:"paddleBrand"`
	PaddleModel        string `json:"paddleModel"`
	PaddleShape        string `json:"paddleShape"`
	PaddleThickness    string `json:"paddleThickness"`
	PaddleHandleLength string `json:"paddleHandleLength"`
	PaddleLength       string `json:"paddleLength"`
	PaddleWidth        string `json:"paddleWidth"`
	PaddleCore         string `json:"paddleCore"`
	PaddleImage        string `json:"paddleImage"`
}

type PlayerResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Image              string    `json:"image"`
	Age                string    `json:"age"`
	Height             string    `json:"height"`
	Sponsor            string    `json:"sponsor"`
	Shoes              string    `json:"shoes"`
	Paddle             string    `json:"paddle"`
	PaddleBrand        string    `json:"paddleBrand"`
	PaddleModel        string    `json:"paddleModel"`
	PaddleShape        string    `json:"paddleShape"`
	PaddleThickness    string    `json:"paddleThickness"`
	PaddleHandleLength string    `json:"paddleHandleLength"`
	PaddleLength       string    `json:"paddleLength"`
	PaddleWidth        string    `json:"paddleWidth"`
	PaddleCore         string    `json:"paddleCore"`
	PaddleImage        string    `json:"paddleImage"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func ToPlayerResponse(p *Player) PlayerResponse {
	return PlayerResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Image:              p.Image,
		Age:                p.Age,
		Height:             p.Height,
		Sponsor:            p.Sponsor,
		Shoes:              p.Shoes,
		Paddle:             p.Paddle,
		PaddleBrand:        p.PaddleBrand,
		PaddleModel:        p.PaddleModel,
		PaddleShape:        p.PaddleShape,
		PaddleThickness:    p.PaddleThickness,
		PaddleHandleLength: p.PaddleHandleLength,
		PaddleLength:       p.PaddleLength,
		PaddleWidth:        p.PaddleWidth,
		PaddleCore:         p.PaddleCore,
		PaddleImage:        p.PaddleImage,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func ToPlayerResponseList(players []Player) []PlayerResponse {
	responses := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		responses = append(responses, ToPlayerResponse(&p))
	}
	return responses
}
