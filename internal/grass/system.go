package grass

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"
)

// System owns every Grass entity in a scene and applies their pending
// changes once per tick. Entities share no state, so dirty ones are updated
// in parallel; each entity still publishes its own map in one swap.
type System struct {
	mu       sync.RWMutex
	nextID   EntityID
	entities map[EntityID]*Grass

	pool worker.DynamicWorkerPool
	log  *zap.Logger
}

// NewSystem creates a system that updates at most workers entities at once.
// workers <= 0 uses one less than the CPU count.
func NewSystem(workers int, log *zap.Logger) *System {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		nextID:   1,
		entities: make(map[EntityID]*Grass),
		pool:     worker.NewDynamicWorkerPool(workers, 1024, 1*time.Second),
		log:      log,
	}
}

// Close destroys every entity and stops the worker pool. The system must not be used afterwards.
func (s *System) Close() {
	s.mu.Lock()
	for id, g := range s.entities {
		g.Destroy()
		delete(s.entities, id)
	}
	s.mu.Unlock()
	s.pool.Stop()
}

// Spawn attaches grass to node and returns its id. The entity is generated on the next Tick.
func (s *System) Spawn(node EntityID, mesh Mesh, tf Transform, settings Settings) (EntityID, *Grass) {
	if settings.Logger == nil {
		settings.Logger = s.log
	}
	g := New(node, mesh, tf, settings)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.entities[id] = g
	s.mu.Unlock()

	s.log.Debug("grass spawned", zap.Uint64("id", uint64(id)), zap.Uint64("node", uint64(node)))
	return id, g
}

// Get returns the entity with the given id.
func (s *System) Get(id EntityID) (*Grass, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.entities[id]
	return g, ok
}

// Remove destroys and forgets an entity. It reports whether the id existed.
func (s *System) Remove(id EntityID) bool {
	s.mu.Lock()
	g, ok := s.entities[id]
	delete(s.entities, id)
	s.mu.Unlock()

	if ok {
		g.Destroy()
		s.log.Debug("grass removed", zap.Uint64("id", uint64(id)))
	}
	return ok
}

// Len returns the number of live entities.
func (s *System) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// IDs returns the live entity ids in ascending order.
func (s *System) IDs() []EntityID {
	s.mu.RLock()
	ids := make([]EntityID, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Tick updates every dirty entity and blocks until all are done.
// It returns how many entities regenerated their chunk map.
func (s *System) Tick() int {
	s.mu.RLock()
	dirty := make([]*Grass, 0, len(s.entities))
	for _, g := range s.entities {
		if g.Dirty() {
			dirty = append(dirty, g)
		}
	}
	s.mu.RUnlock()

	switch len(dirty) {
	case 0:
		return 0
	case 1:
		if regenerated, _ := dirty[0].Update(); regenerated {
			return 1
		}
		return 0
	}

	// The pool has no per-batch barrier, so a WaitGroup marks the end of the tick.
	var wg sync.WaitGroup
	var regenerated atomic.Int32
	for i, g := range dirty {
		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if r, _ := g.Update(); r {
					regenerated.Add(1)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	n := int(regenerated.Load())
	s.log.Debug("grass tick", zap.Int("dirty", len(dirty)), zap.Int("regenerated", n))
	return n
}
