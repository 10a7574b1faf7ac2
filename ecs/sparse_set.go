package ecs

// storage is the type-erased view of a component store the world needs for
// entity teardown.
type storage interface {
	remove(id entityID) bool
	has(id entityID) bool
	len() int
}

// sparseSet stores one component type densely, indexed by entity slot.
type sparseSet[T any] struct {
	dense  []entityID
	values []*T
	sparse []int32
}

func (s *sparseSet[T]) index(id entityID) (int, bool) {
	if int(id) >= len(s.sparse) {
		return 0, false
	}
	i := s.sparse[id]
	if i < 0 || int(i) >= len(s.dense) || s.dense[i] != id {
		return 0, false
	}
	return int(i), true
}

func (s *sparseSet[T]) has(id entityID) bool {
	_, ok := s.index(id)
	return ok
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	i, ok := s.index(id)
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

func (s *sparseSet[T]) set(id entityID, v *T) {
	if i, ok := s.index(id); ok {
		s.values[i] = v
		return
	}
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.sparse[id] = int32(len(s.dense))
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
}

func (s *sparseSet[T]) remove(id entityID) bool {
	i, ok := s.index(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[i] = moved
	s.values[i] = s.values[last]
	s.sparse[moved] = int32(i)

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}
