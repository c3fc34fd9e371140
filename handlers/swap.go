package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotswapper/models"
	"slotswapper/services/swap"
	"slotswapper/utils"
)

// SwapHandler exposes the negotiation endpoints.
type SwapHandler struct {
	Svc swap.SwapService
}

// NewSwapHandler constructs a SwapHandler.
func NewSwapHandler(svc swap.SwapService) *SwapHandler {
	return &SwapHandler{Svc: svc}
}

// ListSwappableSlotsHandler returns offered slots owned by other users.
func (h *SwapHandler) ListSwappableSlotsHandler(c *gin.Context) {
	slots, err := h.Svc.ListSwappable(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondSwapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

// ProposeSwapHandler creates a swap request and locks both slots.
func (h *SwapHandler) ProposeSwapHandler(c *gin.Context) {
	var input models.ProposeSwapRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := h.Svc.Propose(c.Request.Context(), c.GetString("userID"), input.MySlotID, input.TheirSlotID)
	if err != nil {
		respondSwapError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ResolveSwapHandler accepts or rejects a pending swap request.
func (h *SwapHandler) ResolveSwapHandler(c *gin.Context) {
	var input models.ResolveSwapRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	req, err := h.Svc.Resolve(c.Request.Context(), c.GetString("userID"), c.Param("id"), *input.Accept)
	if err != nil {
		respondSwapError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListIncomingSwapsHandler returns pending requests awaiting the caller.
func (h *SwapHandler) ListIncomingSwapsHandler(c *gin.Context) {
	views, err := h.Svc.ListIncoming(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondSwapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": views, "count": len(views)})
}

// ListOutgoingSwapsHandler returns every request the caller has proposed.
func (h *SwapHandler) ListOutgoingSwapsHandler(c *gin.Context) {
	views, err := h.Svc.ListOutgoing(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondSwapError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": views, "count": len(views)})
}
