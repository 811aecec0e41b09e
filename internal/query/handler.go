package query

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

// @Summary      List my reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool false "Filter by active state"
// @Success      200 {array} query.ReservationDetails
// @Router       /reservations [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}
	active, ok := api.OptionalBool(c, "active")
	if !ok {
		return
	}

	rows, err := h.service.ReservationsByUser(c.Request.Context(), caller, caller.UserID, active)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary      List a user's reservations
// @Tags         admin,reservations
// @Produce      json
// @Security     BearerAuth
// @Param        userID path int true "User ID"
// @Param        active query bool false "Filter by active state"
// @Success      200 {array} query.ReservationDetails
// @Router       /admin/users/{userID}/reservations [get]
func (h *Handler) ListUserReservations(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}
	userID, ok := api.PathID(c, "userID")
	if !ok {
		return
	}
	active, ok := api.OptionalBool(c, "active")
	if !ok {
		return
	}

	rows, err := h.service.ReservationsByUser(c.Request.Context(), caller, userID, active)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary      List reservations on a ground
// @Tags         admin,reservations
// @Produce      json
// @Security     BearerAuth
// @Param        groundID path int true "Ground ID"
// @Param        active query bool false "Filter by active state"
// @Success      200 {array} query.ReservationDetails
// @Router       /admin/grounds/{groundID}/reservations [get]
func (h *Handler) ListGroundReservations(c *gin.Context) {
	groundID, ok := api.PathID(c, "groundID")
	if !ok {
		return
	}
	active, ok := api.OptionalBool(c, "active")
	if !ok {
		return
	}

	rows, err := h.service.ReservationsByGround(c.Request.Context(), groundID, active)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary      List my wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        available query bool false "Filter by availability"
// @Success      200 {array} query.WishlistDetails
// @Router       /wishlist [get]
func (h *Handler) ListMyWishlist(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}
	available, ok := api.OptionalBool(c, "available")
	if !ok {
		return
	}

	rows, err := h.service.WishlistByUser(c.Request.Context(), caller, caller.UserID, available)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary      Slot availability for a ground
// @Tags         grounds
// @Produce      json
// @Security     BearerAuth
// @Param        groundID path int true "Ground ID"
// @Success      200 {object} query.GroundAvailability
// @Failure      404 {object} api.ErrorResponse
// @Router       /grounds/{groundID}/availability [get]
func (h *Handler) GroundAvailability(c *gin.Context) {
	groundID, ok := api.PathID(c, "groundID")
	if !ok {
		return
	}

	availability, err := h.service.GroundAvailability(c.Request.Context(), groundID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}
