package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"flowergame/internal/flower"
)

type memoryRun struct {
	info  RunInfo
	turns map[int]flower.Snapshot
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	order  []string
	runs   map[string]*memoryRun
	active string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*memoryRun)}
}

func (s *MemoryStore) Init(_ context.Context) error { return nil }

func (s *MemoryStore) BeginRun(_ context.Context, run RunInfo) (RunInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if _, ok := s.runs[run.ID]; ok {
		return RunInfo{}, fmt.Errorf("run %s already exists", run.ID)
	}
	s.runs[run.ID] = &memoryRun{info: run, turns: make(map[int]flower.Snapshot)}
	s.order = append(s.order, run.ID)
	s.active = run.ID
	return run, nil
}

func (s *MemoryStore) WriteSnapshot(_ context.Context, snap flower.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[s.active]
	if !ok {
		return ErrNoRun
	}
	if _, dup := run.turns[snap.Turn]; dup {
		return fmt.Errorf("%w %d", ErrDuplicateTurn, snap.Turn)
	}
	run.turns[snap.Turn] = cloneSnapshot(snap)
	return nil
}

func (s *MemoryStore) Runs(_ context.Context) ([]RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunInfo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.runs[id].info)
	}
	return out, nil
}

// LoadSnapshots returns every snapshot of runID, or of the latest run when
// runID is empty.
func (s *MemoryStore) LoadSnapshots(_ context.Context, runID string) (map[int]flower.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if runID == "" {
		if len(s.order) == 0 {
			return nil, fmt.Errorf("latest run: %w", ErrNotFound)
		}
		runID = s.order[len(s.order)-1]
	}
	run, ok := s.runs[runID]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	out := make(map[int]flower.Snapshot, len(run.turns))
	for turn, snap := range run.turns {
		out[turn] = cloneSnapshot(snap)
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
