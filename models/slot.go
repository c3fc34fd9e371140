package models

import "time"

// SlotStatus is the swap-relevant state of a slot.
type SlotStatus string

const (
	// SlotStatusAvailable means the slot is plainly booked and not up for swapping.
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	// SlotStatusOffered means the owner has marked the slot swappable.
	SlotStatusOffered SlotStatus = "OFFERED"
	// SlotStatusLocked means the slot is held by a pending swap negotiation.
	// Only the swap engine may move a slot into or out of this state.
	SlotStatusLocked SlotStatus = "LOCKED"
)

// Slot represents a time slot owned by exactly one user.
type Slot struct {
	ID        string     `bson:"id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	StartTime time.Time  `bson:"startTime" json:"startTime"`
	EndTime   time.Time  `bson:"endTime" json:"endTime"`
	OwnerID   string     `bson:"ownerId" json:"ownerId"`
	Status    SlotStatus `bson:"status" json:"status"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// SlotStateChange describes one state-guarded update inside a conditional
// multi-record write. The update only applies if the slot's current status
// equals ExpectedState; otherwise the whole batch fails.
type SlotStateChange struct {
	SlotID        string
	ExpectedState SlotStatus
	NewState      SlotStatus
	NewOwnerID    string // empty leaves ownership unchanged
}

// CreateSlotRequest defines the payload for creating a slot.
type CreateSlotRequest struct {
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// UpdateSlotRequest defines the payload for editing slot details.
// Zero-value fields are left unchanged.
type UpdateSlotRequest struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
