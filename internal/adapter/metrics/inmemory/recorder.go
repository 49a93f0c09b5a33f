package inmemory

import (
	"sync"

	"hipstertrail/internal/domain/trail"
)

type Snapshot struct {
	TurnTotal   uint64                       `json:"turn_total"`
	TurnSuccess uint64                       `json:"turn_success"`
	TurnFailure uint64                       `json:"turn_failure"`
	Generations map[string]map[string]uint64 `json:"generations"`
	TierFailure map[string]uint64            `json:"tier_failures"`
	Hardcoded   uint64                       `json:"hardcoded_total"`
}

type Recorder struct {
	mu          sync.Mutex
	turnOK      uint64
	turnFailed  uint64
	generations map[string]map[string]uint64
	tierFailure map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		generations: map[string]map[string]uint64{},
		tierFailure: map[string]uint64{},
	}
}

func (r *Recorder) RecordGeneration(feature string, source trail.DataSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bySource, ok := r.generations[feature]
	if !ok {
		bySource = map[string]uint64{}
		r.generations[feature] = bySource
	}
	bySource[string(source)]++
}

// RecordTierFailure counts failures keyed "feature/backend".
func (r *Recorder) RecordTierFailure(feature, backend string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tierFailure[feature+"/"+backend]++
}

func (r *Recorder) RecordTurn(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.turnOK++
		return
	}
	r.turnFailed++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnSuccess: r.turnOK,
		TurnFailure: r.turnFailed,
		TurnTotal:   r.turnOK + r.turnFailed,
		Generations: make(map[string]map[string]uint64, len(r.generations)),
		TierFailure: make(map[string]uint64, len(r.tierFailure)),
	}
	for feature, bySource := range r.generations {
		cp := make(map[string]uint64, len(bySource))
		for k, v := range bySource {
			cp[k] = v
		}
		out.Generations[feature] = cp
		out.Hardcoded += bySource[string(trail.SourceHardcoded)]
	}
	for k, v := range r.tierFailure {
		out.TierFailure[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
