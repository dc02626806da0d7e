package paddle

import (
	"context"
)

// Equipment is the slice of a player record that mirrors a paddle
// template.
type Equipment struct {
	Name         string
	Brand        string
	Model        string
	Shape        string
	Thickness    string
	HandleLength string
	Length       string
	Width        string
	Core         string
	Image        string
}

// PlayerEquipment is a matched player's id plus its current equipment
// values, as returned by the player package.
type PlayerEquipment struct {
	PlayerID  string
	Equipment Equipment
}

// PlayerSync is implemented by the player service. Matching is done by
// the denormalized paddle name (plus shape and thickness when the
// template recorded them), never by id, since players hold copies
// rather than references.
type PlayerSync interface {
	ListByEquipment(
		ctx context.Context,
		paddleName, shape, thickness string,
	) ([]PlayerEquipment, error)
	UpdateEquipment(
		ctx context.Context,
		playerID string,
		eq Equipment,
	) error
}

// mergeEquipment overwrites current values with submitted ones, but
// only where a new value was actually provided. An empty incoming
// field never blanks out a player's existing value.
func mergeEquipment(current Equipment, req UpdatePaddleRequest) Equipment {
	merged := current

	if req.Name != "" {
		merged.Name = req.Name
	}
	if req.Brand != "" {
		merged.Brand = req.Brand
	}
	if req.Model != "" {
		merged.Model = req.Model
	}
	if req.Shape != "" {
		merged.Shape = req.Shape
	}
	if req.Thickness != "" {
		merged.Thickness = req.Thickness
	}
	if req.HandleLength != "" {
		merged.HandleLength = req.HandleLength
	}
	if req.Length != "" {
		merged.Length = req.Length
	}
	if req.Width != "" {
		merged.Width = req.Width
	}
	if req.Core != "" {
		merged.Core = req.Core
	}
	if req.Image != "" {
		merged.Image = req.Image
	}

	return merged
}
