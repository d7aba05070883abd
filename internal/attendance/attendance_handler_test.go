package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	attendanceerrors "github.com/maikolguerrero/payroll-system-server/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn func(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	getAllFn func(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error)
}

func (f *fakeService) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) GetAll(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error) {
	return f.getAllFn(ctx, req)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created", func(t *testing.T) {
		h := NewHandler(&fakeService{
			createFn: func(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
				return AttendanceResponse{ID: "a-1", HoursWorked: 8}, nil
			},
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"8f7c1c8e-2c58-4d1a-9a41-3f0b1d2b7c11","date":"2024-01-08","entry_time":"08:00","exit_time":"16:00"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
	})

	t.Run("missing field", func(t *testing.T) {
		h := NewHandler(&fakeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"date":"2024-01-08"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service validation error", func(t *testing.T) {
		h := NewHandler(&fakeService{
			createFn: func(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
				return AttendanceResponse{}, attendanceerrors.ErrExitBeforeEntry
			},
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"8f7c1c8e-2c58-4d1a-9a41-3f0b1d2b7c11","date":"2024-01-08","entry_time":"18:00","exit_time":"16:00"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestHandler_GetAll_Paginates(t *testing.T) {
	h := NewHandler(&fakeService{
		getAllFn: func(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error) {
			return []AttendanceResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances?page=2&page_size=2", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var rows []AttendanceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0].ID)
}
