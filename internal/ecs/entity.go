package ecs

// EntityID identifies one entity in a World. IDs are never reused within a World.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
// Grids use it to mark cells that hold no entity.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
type Component interface {
	Type() ComponentType
}
