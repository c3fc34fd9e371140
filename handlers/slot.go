package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotswapper/models"
	"slotswapper/services/slot"
	"slotswapper/utils"
)

// SlotHandler exposes slot management endpoints.
type SlotHandler struct {
	Svc slot.SlotService
}

// NewSlotHandler constructs a SlotHandler.
func NewSlotHandler(svc slot.SlotService) *SlotHandler {
	return &SlotHandler{Svc: svc}
}

// CreateSlotHandler creates a slot owned by the caller.
func (h *SlotHandler) CreateSlotHandler(c *gin.Context) {
	var input models.CreateSlotRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMySlotsHandler returns the caller's slots, ordered by start time.
func (h *SlotHandler) ListMySlotsHandler(c *gin.Context) {
	slots, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

// ListMyOfferedSlotsHandler returns the caller's slots marked swappable.
func (h *SlotHandler) ListMyOfferedSlotsHandler(c *gin.Context) {
	slots, err := h.Svc.ListMineOffered(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

// GetSlotHandler returns one of the caller's slots by id.
func (h *SlotHandler) GetSlotHandler(c *gin.Context) {
	found, err := h.Svc.GetByID(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// UpdateSlotHandler edits a slot's details.
func (h *SlotHandler) UpdateSlotHandler(c *gin.Context) {
	var input models.UpdateSlotRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.UpdateDetails(c.Request.Context(), c.GetString("userID"), c.Param("id"), input)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateSlotStatusHandler toggles a slot between AVAILABLE and OFFERED.
func (h *SlotHandler) UpdateSlotStatusHandler(c *gin.Context) {
	var input struct {
		Status models.SlotStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.ToggleStatus(c.Request.Context(), c.GetString("userID"), c.Param("id"), input.Status)
	if err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSlotHandler removes a slot that is not locked by a negotiation.
func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondSlotError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot deleted"})
}
