package ports

import "hipstertrail/internal/domain/trail"

type GenerationMetrics interface {
	RecordGeneration(feature string, source trail.DataSource)
	RecordTierFailure(feature, backend string)
	RecordTurn(ok bool)
}
