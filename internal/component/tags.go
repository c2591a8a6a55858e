package component

import "underground-miner/internal/ecs"

const CTagExpedition ecs.ComponentType = 8

// TagExpedition marks an entity that lives only for the current expedition.
// Every entity carrying it is destroyed when the expedition ends.
type TagExpedition struct{}

func (TagExpedition) Type() ecs.ComponentType { return CTagExpedition }
