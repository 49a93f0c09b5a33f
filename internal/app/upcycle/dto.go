package upcycle

import "hipstertrail/internal/domain/trail"

// Request carries the three items to upcycle. Player is optional; when
// present its inventory is updated and returned.
type Request struct {
	Player *trail.PlayerState `json:"player,omitempty"`
	Items  []trail.LootItem   `json:"items"`
}

type Response struct {
	Item       trail.LootItem     `json:"item"`
	DataSource trail.DataSource   `json:"data_source"`
	Player     *trail.PlayerState `json:"player,omitempty"`
}
