// internal/types/types.go
package types

// EntityID identifies an entity in the ECS. Zero is never issued.
type EntityID uint64
