package models

import "time"

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

// SwapRequest is the negotiation record between two slot owners. It is
// created PENDING, transitions exactly once to ACCEPTED or REJECTED, and is
// immutable afterwards.
type SwapRequest struct {
	ID                string     `bson:"id" json:"id"`
	ProposerID        string     `bson:"proposerId" json:"proposerId"`
	ProposerSlotID    string     `bson:"proposerSlotId" json:"proposerSlotId"`
	CounterpartID     string     `bson:"counterpartId" json:"counterpartId"`
	CounterpartSlotID string     `bson:"counterpartSlotId" json:"counterpartSlotId"`
	Status            SwapStatus `bson:"status" json:"status"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// SwapRequestView is a swap request hydrated with the public details of the
// two slots and the other party, for listing endpoints.
type SwapRequestView struct {
	SwapRequest
	Proposer        *UserSummary `json:"proposer,omitempty"`
	Counterpart     *UserSummary `json:"counterpart,omitempty"`
	ProposerSlot    *Slot        `json:"proposerSlot,omitempty"`
	CounterpartSlot *Slot        `json:"counterpartSlot,omitempty"`
}

// ProposeSwapRequest defines the payload for proposing a swap.
type ProposeSwapRequest struct {
	MySlotID    string `json:"mySlotId" binding:"required"`
	TheirSlotID string `json:"theirSlotId" binding:"required"`
}

// ResolveSwapRequest defines the payload for accepting or rejecting a
// pending swap request.
type ResolveSwapRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}
