package choose

import "hipstertrail/internal/domain/trail"

type Request struct {
	Player trail.PlayerState `json:"player"`
	Choice trail.Choice      `json:"choice"`
}

type Response struct {
	Player trail.PlayerState `json:"player"`
	Status trail.GameStatus  `json:"status"`
}
