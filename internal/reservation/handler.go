package reservation

import (
	"net/http"

	"github.com/XCypherusX/tbs-api/internal/api"
	"github.com/XCypherusX/tbs-api/internal/auth"

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

// @Summary      Reserve a ground for a time slot
// @Description  Fails with 409 when the pair already has an active reservation.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body reservation.CreateReservationRequest true "Ground and slot"
// @Success      201 {object} reservation.Reservation
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	res, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// @Summary      Cancel a reservation
// @Description  Cancelling an already cancelled reservation returns it unchanged.
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Success      200 {object} reservation.Reservation
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{id}/cancel [post]
func (h *Handler) CancelReservation(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}

	id, ok := api.PathID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Success      200 {object} reservation.Reservation
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{id} [get]
func (h *Handler) GetReservation(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}

	id, ok := api.PathID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Update a reservation
// @Tags         admin,reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Param        request body reservation.UpdateReservationRequest true "Fields to change"
// @Success      200 {object} reservation.Reservation
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/reservations/{id} [put]
func (h *Handler) UpdateReservation(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}

	id, ok := api.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	res, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
