package character

import "hipstertrail/internal/domain/trail"

type Feature string

const (
	FeatureName      Feature = "name"
	FeatureBio       Feature = "bio"
	FeatureAvatar    Feature = "avatar"
	FeatureLoot      Feature = "loot"
	FeatureTransport Feature = "transport"
)

type Request struct {
	Feature Feature           `json:"-"`
	Player  trail.PlayerState `json:"player"`
}

// Response holds a string for every feature except loot, which returns a
// trail.LootItem.
type Response struct {
	Value      any              `json:"value"`
	DataSource trail.DataSource `json:"data_source"`
}
