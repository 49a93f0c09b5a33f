package turn

import "hipstertrail/internal/domain/trail"

type Request struct {
	Player trail.PlayerState `json:"player"`
}

type Response struct {
	Scenario    trail.Scenario              `json:"scenario"`
	Choices     []trail.Choice              `json:"choices"`
	DataSources map[string]trail.DataSource `json:"data_sources"`
}
