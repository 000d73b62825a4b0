package repository

import (
	"sync"

	"github.com/google/uuid"
)

// IDGetter reads the identifier of an entity. An empty string means the
// entity has not been assigned an identifier yet.
type IDGetter[T any] func(entity T) string

// IDSetter returns a copy of the entity stamped with the given identifier.
type IDSetter[T any] func(entity T, id string) T

// InMemory is a generic CRUD repository over a concurrent in-memory map.
// Callers supply an identifier accessor and mutator so the repository can
// manage entities of any type without knowing their shape.
//
// Individual operations are atomic per key; there are no multi-key
// transactional guarantees. Missing keys yield absent results, never errors.
type InMemory[T any] struct {
	storage  map[string]T
	idGetter IDGetter[T]
	idSetter IDSetter[T]
	mtx      sync.RWMutex
}

// NewInMemory returns an empty repository using the given identifier
// accessor and mutator.
func NewInMemory[T any](idGetter IDGetter[T], idSetter IDSetter[T]) *InMemory[T] {
	return &InMemory[T]{
		storage:  make(map[string]T),
		idGetter: idGetter,
		idSetter: idSetter,
	}
}

// Save stores the entity. If the entity has no identifier yet a new unique
// one is generated and applied before storage. The stored (possibly updated)
// entity is returned. Saving an entity with an existing identifier
// overwrites the previous value at that key.
func (r *InMemory[T]) Save(entity T) T {
	id := r.idGetter(entity)
	if id == "" {
		id = uuid.NewString()
		entity = r.idSetter(entity, id)
	}
	r.mtx.Lock()
	r.storage[id] = entity
	r.mtx.Unlock()
	return entity
}

// SaveAll saves every entity in order and returns the stored entities in the
// same order.
func (r *InMemory[T]) SaveAll(entities []T) []T {
	saved := make([]T, 0, len(entities))
	for _, entity := range entities {
		saved = append(saved, r.Save(entity))
	}
	return saved
}

// FindByID returns the entity stored under the given identifier.
func (r *InMemory[T]) FindByID(id string) (T, bool) {
	r.mtx.RLock()
	entity, ok := r.storage[id]
	r.mtx.RUnlock()
	return entity, ok
}

// ExistsByID reports whether an entity is stored under the given identifier.
func (r *InMemory[T]) ExistsByID(id string) bool {
	r.mtx.RLock()
	_, ok := r.storage[id]
	r.mtx.RUnlock()
	return ok
}

// FindAll returns all stored entities in unspecified order.
func (r *InMemory[T]) FindAll() []T {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entities := make([]T, 0, len(r.storage))
	for _, entity := range r.storage {
		entities = append(entities, entity)
	}
	return entities
}

// FindAllByID returns the entities stored under the given identifiers,
// silently omitting identifiers with no stored entity.
func (r *InMemory[T]) FindAllByID(ids []string) []T {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entities := make([]T, 0, len(ids))
	for _, id := range ids {
		if entity, ok := r.storage[id]; ok {
			entities = append(entities, entity)
		}
	}
	return entities
}

// Count returns the number of stored entities.
func (r *InMemory[T]) Count() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.storage)
}

// DeleteByID removes the entity stored under the given identifier, if any.
func (r *InMemory[T]) DeleteByID(id string) {
	r.mtx.Lock()
	delete(r.storage, id)
	r.mtx.Unlock()
}

// Delete removes the given entity, resolved via its identifier.
// A no-op when the entity has no identifier.
func (r *InMemory[T]) Delete(entity T) {
	if id := r.idGetter(entity); id != "" {
		r.DeleteByID(id)
	}
}

// DeleteAllByID removes the entities stored under the given identifiers.
func (r *InMemory[T]) DeleteAllByID(ids []string) {
	r.mtx.Lock()
	for _, id := range ids {
		delete(r.storage, id)
	}
	r.mtx.Unlock()
}

// DeleteAllOf removes the given entities, each resolved via its identifier.
func (r *InMemory[T]) DeleteAllOf(entities []T) {
	for _, entity := range entities {
		r.Delete(entity)
	}
}

// DeleteAll removes every stored entity.
func (r *InMemory[T]) DeleteAll() {
	r.mtx.Lock()
	r.storage = make(map[string]T)
	r.mtx.Unlock()
}
