package timeslot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(repo, inlineTx{}))

	r := gin.New()
	r.GET("/timeslots", h.ListTimeSlots)
	r.POST("/admin/timeslots", h.CreateTimeSlot)
	r.DELETE("/admin/timeslots/:slotID", h.DeleteTimeSlot)
	return r
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateTimeSlot(t *testing.T) {
	repo := new(MockRepository)
	router := setupRouter(repo)

	repo.On("StartExists", mock.Anything, slotStart, 0).Return(false, nil)
	repo.On("Create", mock.Anything, slotStart, slotEnd).
		Return(&TimeSlot{ID: 3, StartTime: slotStart, EndTime: slotEnd}, nil)

	w := postJSON(router, "/admin/timeslots", validRequest())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CreateTimeSlotErrors(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		code int
		kind string
	}{
		{"missing end", map[string]string{"start_time": "2026-11-02T18:00:00Z"}, http.StatusBadRequest, ""},
		{"bad format", map[string]string{"start_time": "noon", "end_time": "2026-11-02T19:00:00Z"}, http.StatusBadRequest, "invalid_input"},
		{"inverted", map[string]string{"start_time": "2026-11-02T19:00:00Z", "end_time": "2026-11-02T18:00:00Z"}, http.StatusBadRequest, "invalid_range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			router := setupRouter(repo)

			w := postJSON(router, "/admin/timeslots", tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.kind != "" {
				assert.Contains(t, w.Body.String(), tt.kind)
			}
		})
	}
}

func TestHandler_DeleteTimeSlotInUse(t *testing.T) {
	repo := new(MockRepository)
	router := setupRouter(repo)

	repo.On("GetForUpdate", mock.Anything, 1).Return(&TimeSlot{ID: 1}, nil)
	repo.On("IsReferenced", mock.Anything, 1).Return(true, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/timeslots/1", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "time_slot_in_use")
}
