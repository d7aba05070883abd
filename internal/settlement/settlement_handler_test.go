package settlement

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	settlementerrors "github.com/maikolguerrero/payroll-system-server/internal/settlement/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	exportFn func(ctx context.Context, req ExportRequest) (ExportResponse, error)
	getAllFn func(ctx context.Context) ([]FileResponse, error)
	openFn   func(ctx context.Context, fileName string) (io.ReadCloser, error)
}

func (f *fakeService) Export(ctx context.Context, req ExportRequest) (ExportResponse, error) {
	return f.exportFn(ctx, req)
}

func (f *fakeService) GetAll(ctx context.Context) ([]FileResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeService) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	return f.openFn(ctx, fileName)
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/settlements", h.Export)
	r.GET("/settlements", h.GetAll)
	r.GET("/settlements/:file_name/download", h.Download)
	return r
}

func TestHandler_Export(t *testing.T) {
	const bankID = "8a6e0804-2bd0-4672-b79d-d97027f9071a"

	t.Run("created", func(t *testing.T) {
		var got ExportRequest
		h := NewHandler(&fakeService{exportFn: func(ctx context.Context, req ExportRequest) (ExportResponse, error) {
			got = req
			return ExportResponse{FileName: "0102_20240201.txt", PayrollCount: 2}, nil
		}})
		body := `{"bank_id":"` + bankID + `","start_date":"2024-01-01","end_date":"2024-01-31"}`
		req := httptest.NewRequest(http.MethodPost, "/settlements", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, bankID, got.BankID)
		assert.Contains(t, w.Body.String(), "0102_20240201.txt")
	})

	t.Run("missing bank", func(t *testing.T) {
		h := NewHandler(&fakeService{})
		req := httptest.NewRequest(http.MethodPost, "/settlements", strings.NewReader(`{"start_date":"2024-01-01","end_date":"2024-01-31"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nothing to settle", func(t *testing.T) {
		h := NewHandler(&fakeService{exportFn: func(ctx context.Context, req ExportRequest) (ExportResponse, error) {
			return ExportResponse{}, settlementerrors.ErrNoPayrollsToSettle
		}})
		body := `{"bank_id":"` + bankID + `","start_date":"2024-01-01","end_date":"2024-01-31"}`
		req := httptest.NewRequest(http.MethodPost, "/settlements", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var env struct {
			Ok    bool `json:"ok"`
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, settlementerrors.ErrNoPayrollsToSettle.Code, env.Error.Code)
	})
}

func TestHandler_Download(t *testing.T) {
	h := NewHandler(&fakeService{openFn: func(ctx context.Context, name string) (io.ReadCloser, error) {
		if name != "0102_20240201.txt" {
			return nil, settlementerrors.ErrSettlementNotFound
		}
		return io.NopCloser(strings.NewReader("0102;20240201\n")), nil
	}})
	r := newTestRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settlements/0102_20240201.txt/download", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0102;20240201\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "0102_20240201.txt")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settlements/other.txt/download", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetAllPaged(t *testing.T) {
	files := make([]FileResponse, 3)
	for i := range files {
		files[i] = FileResponse{FileName: "f"}
	}
	h := NewHandler(&fakeService{getAllFn: func(ctx context.Context) ([]FileResponse, error) {
		return files, nil
	}})
	w := httptest.NewRecorder()

	newTestRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settlements?page=2&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []FileResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, 1)
}
