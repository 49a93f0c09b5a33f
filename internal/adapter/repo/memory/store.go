package memory

import (
	"sync"

	"hipstertrail/internal/app/ports"
)

const DefaultCapacity = 500

// Store keeps the newest generation records in memory, oldest evicted first.
type Store struct {
	mu          sync.RWMutex
	capacity    int
	generations []ports.GenerationRecord
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}
