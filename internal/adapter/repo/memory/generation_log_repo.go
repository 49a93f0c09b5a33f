package memory

import (
	"context"
	"slices"

	"hipstertrail/internal/app/ports"
)

// GenerationLogRepo serves the generation audit when no database is
// configured.
type GenerationLogRepo struct {
	store *Store
	tx    ports.TxManager
}

func NewGenerationLogRepo(store *Store) GenerationLogRepo {
	return GenerationLogRepo{store: store, tx: NewTxManager(store)}
}

func (r GenerationLogRepo) Save(ctx context.Context, record ports.GenerationRecord) error {
	return r.tx.RunInTx(ctx, func(context.Context) error {
		s := r.store
		record.Attempts = slices.Clone(record.Attempts)
		s.generations = append(s.generations, record)
		if over := len(s.generations) - s.capacity; over > 0 {
			s.generations = slices.Delete(s.generations, 0, over)
		}
		return nil
	})
}

// ListRecent returns the newest records first. An empty feature lists all.
func (r GenerationLogRepo) ListRecent(ctx context.Context, feature string, limit int) ([]ports.GenerationRecord, error) {
	if inTx(ctx) {
		return r.listLocked(feature, limit)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(feature, limit)
}

func (r GenerationLogRepo) listLocked(feature string, limit int) ([]ports.GenerationRecord, error) {
	gens := r.store.generations
	out := []ports.GenerationRecord{}
	for i := len(gens) - 1; i >= 0; i-- {
		if feature != "" && gens[i].Feature != feature {
			continue
		}
		rec := gens[i]
		rec.Attempts = slices.Clone(rec.Attempts)
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
