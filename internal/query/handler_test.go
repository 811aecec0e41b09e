package query

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/XCypherusX/tbs-api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(repo, groundStub{}))

	r := gin.New()
	r.Use(auth.AuthMiddleware("secret"))
	r.GET("/reservations", h.ListMyReservations)
	r.GET("/wishlist", h.ListMyWishlist)
	r.GET("/grounds/:groundID/availability", h.GroundAvailability)
	return r
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	token, _ := auth.GenerateAccessToken(member.UserID, "jo@example.com", member.Role, "secret")
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_ListMyReservationsFilter(t *testing.T) {
	repo := new(MockRepository)
	router := setupRouter(repo)

	repo.On("ReservationsByUser", mock.Anything, 7, mock.MatchedBy(func(active *bool) bool {
		return active != nil && !*active
	})).Return([]ReservationDetails{{ReservationID: 3}}, nil)

	w := get(router, "/reservations?active=false")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reservation_id":3`)

	w = get(router, "/reservations?active=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListMyWishlist(t *testing.T) {
	repo := new(MockRepository)
	router := setupRouter(repo)

	repo.On("WishlistByUser", mock.Anything, 7, mock.MatchedBy(func(available *bool) bool {
		return available != nil && *available
	})).Return([]WishlistDetails{}, nil)

	w := get(router, "/wishlist?available=true")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_GroundAvailabilityNotFound(t *testing.T) {
	repo := new(MockRepository)
	router := setupRouter(repo)

	w := get(router, "/grounds/2/availability")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
