package engine

import "github.com/pixil98/go-inventory/internal/game"

type WeightState string

const (
	WeightNormal     WeightState = "normal"
	WeightHeavy      WeightState = "heavy"
	WeightOverweight WeightState = "overweight"

	heavyThreshold = 0.9
)

// WeightStatus summarises how loaded down a player is. MovementPenalty is a
// speed multiplier for the host to apply; the engine does not enforce it.
type WeightStatus struct {
	Carried         float64     `json:"carried"`
	Max             float64     `json:"max"`
	Available       float64     `json:"available"`
	Percent         float64     `json:"percent"`
	State           WeightState `json:"status"`
	MovementPenalty float64     `json:"movement_penalty"`
}

func (e *Engine) WeightStatus(c *game.Character) WeightStatus {
	carried := e.TotalWeight(c)
	ratio := carried / e.limits.MaxWeight

	s := WeightStatus{
		Carried:         carried,
		Max:             e.limits.MaxWeight,
		Available:       max(e.limits.MaxWeight-carried, 0),
		Percent:         min(ratio*100, 100),
		State:           WeightNormal,
		MovementPenalty: 1,
	}

	switch {
	case carried > e.limits.MaxWeight:
		s.State = WeightOverweight
		s.MovementPenalty = e.limits.OverweightPenalty
	case ratio >= heavyThreshold:
		s.State = WeightHeavy
	}

	return s
}
