package timeslot

import (
	"net/http"

	"github.com/XCypherusX/tbs-api/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a time slot
// @Tags         admin,timeslots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body timeslot.TimeSlotRequest true "Slot window"
// @Success      201 {object} timeslot.TimeSlot
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/timeslots [post]
func (h *Handler) CreateTimeSlot(c *gin.Context) {
	var req TimeSlotRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	slot, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// @Summary      List time slots
// @Tags         timeslots
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} timeslot.TimeSlot
// @Router       /timeslots [get]
func (h *Handler) ListTimeSlots(c *gin.Context) {
	slots, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// @Summary      Update a time slot
// @Tags         admin,timeslots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slotID path int true "Time slot ID"
// @Param        request body timeslot.TimeSlotRequest true "Slot window"
// @Success      200 {object} timeslot.TimeSlot
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/timeslots/{slotID} [put]
func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	id, ok := api.PathID(c, "slotID")
	if !ok {
		return
	}

	var req TimeSlotRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	slot, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// @Summary      Delete a time slot
// @Tags         admin,timeslots
// @Produce      json
// @Security     BearerAuth
// @Param        slotID path int true "Time slot ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/timeslots/{slotID} [delete]
func (h *Handler) DeleteTimeSlot(c *gin.Context) {
	id, ok := api.PathID(c, "slotID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Time slot deleted successfully"})
}
