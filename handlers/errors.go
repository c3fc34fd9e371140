package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"slotswapper/services/slot"
	"slotswapper/services/swap"
	"slotswapper/utils"
)

// respondSwapError maps the swap engine's error taxonomy onto HTTP status
// codes: validation failures 400, authorization 403, missing entities 404,
// lost races 409, store failures 503.
func respondSwapError(c *gin.Context, err error) {
	var swapErr *swap.SwapError
	if !errors.As(err, &swapErr) {
		utils.JSONError(c, http.StatusInternalServerError, "swap operation failed", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch swapErr.Code {
	case swap.CodeInvalidState, swap.CodeSelfSwap:
		status = http.StatusBadRequest
	case swap.CodeForbidden:
		status = http.StatusForbidden
	case swap.CodeNotFound:
		status = http.StatusNotFound
	case swap.CodeAlreadyResolved, swap.CodeConflict:
		status = http.StatusConflict
	case swap.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}
	utils.JSONError(c, status, swapErr.Message, "")
}

// respondSlotError maps slot service failures onto HTTP status codes.
func respondSlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, slot.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "slot not found", "")
	case errors.Is(err, slot.ErrLocked):
		utils.JSONError(c, http.StatusBadRequest, "slot is locked by a pending swap", "")
	case errors.Is(err, slot.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "slot operation failed", err.Error())
	}
}
