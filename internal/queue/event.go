// Package queue defines message payloads exchanged over the message broker.
package queue

// HallplanQueue is the durable queue carrying HallplanGeneratedEvent.
const HallplanQueue = "hallplan.generated"

// SessionSummary describes one session of a generated plan.
type SessionSummary struct {
    Date     string `json:"date"`
    SlotNo   uint8  `json:"slot_no"`
    Students int    `json:"students"`
    Rooms    int    `json:"rooms"`
    Seats    int    `json:"seats"`
}

// HallplanGeneratedEvent is published after a seating plan is generated.
// Persisted is false when the attendance store rejected the plan; StoreError
// then carries the reason.
type HallplanGeneratedEvent struct {
    PlanID      string           `json:"plan_id"`
    BuildingID  uint32           `json:"building_id"`
    Sessions    []SessionSummary `json:"sessions"`
    Assignments int              `json:"assignments"`
    Persisted   bool             `json:"persisted"`
    StoreError  string           `json:"store_error,omitempty"`
    GeneratedAt string           `json:"generated_at"`
}
