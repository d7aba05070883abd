package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct{}

func (stubService) Reload(ctx context.Context) error { return nil }

func (stubService) Enforce(rvals ...interface{}) (bool, error) {
	return rvals[1] == "payroll" && rvals[2] == "read", nil
}

func (stubService) Permissions() []PermissionResponse {
	return []PermissionResponse{{Role: RoleViewer, Resource: "payroll", Action: "read"}}
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(stubService{}).Enforce)

	post := func(body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(EnforceRequest{Role: RoleViewer, Resource: "payroll", Action: "read"})
	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Data.Allowed)

	w = post(map[string]string{"role": RoleViewer})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
