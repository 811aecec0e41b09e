package wishlist

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

// @Summary      Watch a reservation
// @Description  Adds a wishlist entry that flips to available when the reservation's pair is freed.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body wishlist.CreateEntryRequest true "Ground and reservation"
// @Success      201 {object} wishlist.Entry
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /wishlist [post]
func (h *Handler) CreateEntry(c *gin.Context) {
	caller, ok := auth.MustCaller(c)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// @Summary      Resync wishlist availability
// @Description  Re-derives availability for every entry watching the reservation's pair.
// @Tags         admin,wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Success      200 {object} wishlist.SyncResult
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/wishlist/reservations/{id}/sync [post]
func (h *Handler) SyncReservation(c *gin.Context) {
	id, ok := api.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Resync(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
