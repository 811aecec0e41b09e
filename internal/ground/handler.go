package ground

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

// @Summary      Create a ground
// @Description  Admin-only: create a new bookable ground
// @Tags         admin,grounds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ground.CreateGroundRequest true "Ground payload"
// @Success      201 {object} ground.Ground
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/grounds [post]
func (h *Handler) CreateGround(c *gin.Context) {
	var req CreateGroundRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	g, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, g)
}

// @Summary      List grounds
// @Tags         grounds
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ground.Ground
// @Router       /grounds [get]
func (h *Handler) ListGrounds(c *gin.Context) {
	grounds, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grounds)
}

// @Summary      Get a ground
// @Tags         grounds
// @Produce      json
// @Security     BearerAuth
// @Param        groundID path int true "Ground ID"
// @Success      200 {object} ground.Ground
// @Failure      404 {object} api.ErrorResponse
// @Router       /grounds/{groundID} [get]
func (h *Handler) GetGround(c *gin.Context) {
	id, ok := api.PathID(c, "groundID")
	if !ok {
		return
	}

	g, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

// @Summary      Update a ground
// @Tags         admin,grounds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        groundID path int true "Ground ID"
// @Param        request body ground.UpdateGroundRequest true "Fields to change"
// @Success      200 {object} ground.Ground
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/grounds/{groundID} [put]
func (h *Handler) UpdateGround(c *gin.Context) {
	id, ok := api.PathID(c, "groundID")
	if !ok {
		return
	}

	var req UpdateGroundRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	g, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}

// @Summary      Delete a ground
// @Description  Fails with 409 while any reservation or wishlist entry references the ground.
// @Tags         admin,grounds
// @Produce      json
// @Security     BearerAuth
// @Param        groundID path int true "Ground ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/grounds/{groundID} [delete]
func (h *Handler) DeleteGround(c *gin.Context) {
	id, ok := api.PathID(c, "groundID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Ground deleted successfully"})
}
